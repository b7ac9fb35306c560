package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
)

// UpdatePriceCommandHandler edits prices. Allowed in every status; publishes
// a price event to viewers only.
type UpdatePriceCommandHandler struct {
	uowFactory OrderUoWFactory
	roster     ports.StaffRoster
	publisher  ports.EventPublisher
	clock      func() time.Time
}

func NewUpdatePriceCommandHandler(
	uowFactory OrderUoWFactory,
	roster ports.StaffRoster,
	publisher ports.EventPublisher,
	clock func() time.Time,
) UpdatePriceCommandHandler {
	return UpdatePriceCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
	}
}

func (h UpdatePriceCommandHandler) Handle(ctx context.Context, command UpdatePriceCommand) (order.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return order.Snapshot{}, err
	}
	if err := checkRoster(h.roster, command.Actor()); err != nil {
		return order.Snapshot{}, err
	}

	now := h.clock()
	o, _, err := conditionalUpdate(ctx, h.uowFactory, "UpdatePrice", command.OrderID(),
		func(o *order.Order) (bool, error) {
			err := o.UpdatePrices(command.EstimatedPrice(), command.AssignedPrice(), command.Actor(), now)
			return err == nil, err
		})
	if err != nil {
		return order.Snapshot{}, err
	}

	h.publisher.Publish(ctx, order.NewEvent(order.EventPrice, o, command.Actor().String(), now))
	return o.Snapshot(), nil
}
