package subscription_test

import (
	"testing"
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	at   = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	keys = subscription.Keys{P256dh: "BNcRd", Auth: "tBHI"}
)

func TestNewSubscription(t *testing.T) {
	t.Run("should bind an endpoint to the caller", func(t *testing.T) {
		s, err := subscription.NewSubscription("pablo", " https://push.example.com/abc ", keys, at)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		require.NoError(t, s.ID().Validate())
		assert.Equal(t, kernel.StaffID("pablo"), s.StaffID())
		assert.Equal(t, "https://push.example.com/abc", s.Endpoint())
		assert.Equal(t, keys, s.Keys())
		assert.Equal(t, at, s.CreatedAt())
	})

	t.Run("should reject non https endpoints", func(t *testing.T) {
		for _, endpoint := range []string{"http://push.example.com/abc", "push.example.com", "https://"} {
			_, err := subscription.NewSubscription("pablo", endpoint, keys, at)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid, endpoint)
		}
	})

	t.Run("should report every missing field", func(t *testing.T) {
		_, err := subscription.NewSubscription("", "", subscription.Keys{}, at)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"endpoint", "keys.p256dh", "keys.auth", "staffId"} {
			assert.Contains(t, err.Error(), field)
		}
	})
}

func TestSubscription_Validate(t *testing.T) {
	var s subscription.Subscription
	require.ErrorIs(t, s.Validate(), subscription.ErrSubscriptionIsNotConstructed)

	restored := subscription.RestoreSubscription(kernel.NewUUID(), "evan", "https://push.example.com/x", keys, at, at)
	require.NoError(t, restored.Validate())
}
