package kernel_test

import (
	"testing"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staff(t *testing.T, raw string) kernel.StaffID {
	t.Helper()
	id, err := kernel.NewStaffID(raw)
	require.NoError(t, err)
	return id
}

func TestNewStaffID(t *testing.T) {
	t.Run("folds case and trims", func(t *testing.T) {
		assert.Equal(t, kernel.StaffID("pablo"), staff(t, "  Pablo "))
		assert.Equal(t, staff(t, "EVAN"), staff(t, "evan"))
	})

	t.Run("rejects blank", func(t *testing.T) {
		_, err := kernel.NewStaffID("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestStaffSet_Construction(t *testing.T) {
	set := kernel.NewStaffSet("evan", "pablo", "evan", "")

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, []string{"evan", "pablo"}, set.Strings())
	assert.True(t, set.Contains("pablo"))
	assert.False(t, set.Contains("sam"))

	assert.Equal(t, []string{}, kernel.NewStaffSet().Strings())
	assert.True(t, kernel.NewStaffSet().IsEmpty())
}

func TestParseStaffSet(t *testing.T) {
	set := kernel.ParseStaffSet([]string{"Pablo", " evan", "", "PABLO"})

	assert.Equal(t, []string{"evan", "pablo"}, set.Strings())
}

func TestStaffSet_Algebra(t *testing.T) {
	previous := kernel.NewStaffSet("pablo")
	requested := kernel.NewStaffSet("pablo", "evan")

	t.Run("union keeps every member once", func(t *testing.T) {
		assert.Equal(t, []string{"evan", "pablo"}, previous.Union(requested).Strings())
	})

	t.Run("difference yields the newly added members", func(t *testing.T) {
		assert.Equal(t, []string{"evan"}, requested.Difference(previous).Strings())
		assert.True(t, previous.Difference(requested).IsEmpty())
	})

	t.Run("with and without do not mutate the receiver", func(t *testing.T) {
		grown := previous.With("sam")
		shrunk := grown.Without("pablo")

		assert.Equal(t, []string{"pablo"}, previous.Strings())
		assert.Equal(t, []string{"pablo", "sam"}, grown.Strings())
		assert.Equal(t, []string{"sam"}, shrunk.Strings())
	})

	t.Run("equality ignores insertion order", func(t *testing.T) {
		assert.True(t, kernel.NewStaffSet("b", "a").Equal(kernel.NewStaffSet("a", "b")))
		assert.False(t, kernel.NewStaffSet("a").Equal(kernel.NewStaffSet("a", "b")))
	})
}
