package commands_test

import (
	"testing"

	"printdesk/internal/core/application/usecases/commands"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnclaimOrderCommandHandler_Handle(t *testing.T) {
	t.Run("should release the claim and drop the claimant", func(t *testing.T) {
		o := restore(order.RestoreParams{ClaimedBy: ptr("pablo"), AssignedStaff: []string{"pablo", "evan"}})
		factory, uow, repo := lockedOrder(o)
		repo.On("Update", mock.Anything, o).Return(nil).Once()
		uow.On("Commit", mock.Anything).Return(nil).Once()
		publisher := &recordingPublisher{}

		cmd, _ := commands.NewUnclaimOrderCommand("order_1", "pablo")
		snapshot, err := commands.NewUnclaimOrderCommandHandler(factory, roster, publisher, clock).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Nil(t, snapshot.ClaimedBy)
		assert.Equal(t, []string{"evan"}, snapshot.AssignedStaff)
		assert.Equal(t, []order.EventType{order.EventUnclaim}, publisher.types())
		uow.AssertExpectations(t)
	})

	t.Run("should succeed without writing when nobody holds the order", func(t *testing.T) {
		o := restore(order.RestoreParams{})
		factory, uow, _ := lockedOrder(o)
		publisher := &recordingPublisher{}

		cmd, _ := commands.NewUnclaimOrderCommand("order_1", "pablo")
		_, err := commands.NewUnclaimOrderCommandHandler(factory, roster, publisher, clock).Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.Empty(t, publisher.events)
		uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should forbid releasing another member's claim", func(t *testing.T) {
		o := restore(order.RestoreParams{ClaimedBy: ptr("pablo")})
		factory, _, _ := lockedOrder(o)

		cmd, _ := commands.NewUnclaimOrderCommand("order_1", "evan")
		_, err := commands.NewUnclaimOrderCommandHandler(factory, roster, &recordingPublisher{}, clock).Handle(t.Context(), cmd)

		var forbidden *errs.NotClaimantError
		require.ErrorAs(t, err, &forbidden)
		assert.Equal(t, "pablo", forbidden.ClaimedBy)
	})

	t.Run("should reject completed orders before the no-op check", func(t *testing.T) {
		o := restore(order.RestoreParams{Status: ptr("completed")})
		factory, _, _ := lockedOrder(o)

		cmd, _ := commands.NewUnclaimOrderCommand("order_1", "pablo")
		_, err := commands.NewUnclaimOrderCommandHandler(factory, roster, &recordingPublisher{}, clock).Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}
