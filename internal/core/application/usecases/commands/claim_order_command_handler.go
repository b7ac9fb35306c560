package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
)

// ClaimOrderCommandHandler claims orders under the row lock of the order store.
// Exactly one of several concurrent claimants for a free order succeeds; the
// others get *errs.ClaimConflictError naming the winner.
//
// On a successful claim it publishes claim, then status, with the same
// snapshot. Re-claiming an order one already holds publishes nothing.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	roster     ports.StaffRoster
	publisher  ports.EventPublisher
	clock      func() time.Time
}

// NewClaimOrderCommandHandler creates the handler. A nil clock means time.Now.
func NewClaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	roster ports.StaffRoster,
	publisher ports.EventPublisher,
	clock func() time.Time,
) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
	}
}

// Handle claims the order and returns its committed state.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, command ClaimOrderCommand) (order.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return order.Snapshot{}, err
	}
	if err := checkRoster(h.roster, command.Actor()); err != nil {
		return order.Snapshot{}, err
	}

	now := h.clock()
	o, changed, err := conditionalUpdate(ctx, h.uowFactory, "ClaimOrder", command.OrderID(),
		func(o *order.Order) (bool, error) {
			return o.Claim(command.Actor(), now)
		})
	if err != nil {
		return order.Snapshot{}, err
	}

	if changed {
		actor := command.Actor().String()
		h.publisher.Publish(ctx, order.NewEvent(order.EventClaim, o, actor, now))
		h.publisher.Publish(ctx, order.NewEvent(order.EventStatus, o, actor, now))
	}

	return o.Snapshot(), nil
}
