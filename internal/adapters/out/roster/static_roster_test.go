package roster_test

import (
	"testing"

	"printdesk/internal/adapters/out/roster"
	"printdesk/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStaticRoster(t *testing.T) {
	r, err := roster.NewStaticRoster([]string{"Pablo", " evan ", "PABLO", ""})

	require.NoError(t, err)
	assert.Equal(t, []string{"evan", "pablo"}, r.Members().Strings())
	assert.True(t, r.Members().Contains(kernel.StaffID("pablo")))

	_, err = roster.NewStaticRoster([]string{" ", ""})
	require.ErrorIs(t, err, roster.ErrEmptyRoster)
}
