package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
)

// UnclaimOrderCommandHandler releases claims.
//
// Checks run in this order: a completed order is rejected, a free order is a
// successful no-op, and an order held by someone else is forbidden.
type UnclaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	roster     ports.StaffRoster
	publisher  ports.EventPublisher
	clock      func() time.Time
}

func NewUnclaimOrderCommandHandler(
	uowFactory OrderUoWFactory,
	roster ports.StaffRoster,
	publisher ports.EventPublisher,
	clock func() time.Time,
) UnclaimOrderCommandHandler {
	return UnclaimOrderCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
	}
}

// Handle releases the order and returns its committed state. An unclaim
// event is published only when a claim was actually released.
func (h UnclaimOrderCommandHandler) Handle(ctx context.Context, command UnclaimOrderCommand) (order.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return order.Snapshot{}, err
	}
	if err := checkRoster(h.roster, command.Actor()); err != nil {
		return order.Snapshot{}, err
	}

	now := h.clock()
	o, changed, err := conditionalUpdate(ctx, h.uowFactory, "UnclaimOrder", command.OrderID(),
		func(o *order.Order) (bool, error) {
			return o.Unclaim(command.Actor(), now)
		})
	if err != nil {
		return order.Snapshot{}, err
	}

	if changed {
		h.publisher.Publish(ctx, order.NewEvent(order.EventUnclaim, o, command.Actor().String(), now))
	}

	return o.Snapshot(), nil
}
