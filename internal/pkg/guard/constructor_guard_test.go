package guard_test

import (
	"errors"
	"sync"
	"testing"

	"printdesk/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command must be created via its constructor")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero_value_falls_back_to_default", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type unclaimCommand struct {
		orderID string
		guard   guard.ConstructorGuard
	}
	errUnclaimNotConstructed := errors.New("unclaim command must be created via its constructor")

	build := func(orderID string) (unclaimCommand, error) {
		if orderID == "" {
			return unclaimCommand{}, errors.New("order id is required")
		}
		return unclaimCommand{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := build("order_1")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errUnclaimNotConstructed))

	literal := unclaimCommand{orderID: "order_1"}
	require.ErrorIs(t, literal.guard.Validate(errUnclaimNotConstructed), errUnclaimNotConstructed)

	_, err = build("")
	require.Error(t, err)
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.NoError(t, g.Validate(nil))
			}
		}()
	}
	wg.Wait()
}
