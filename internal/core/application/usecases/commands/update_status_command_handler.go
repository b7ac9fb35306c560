package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
)

// UpdateStatusCommandHandler applies workflow transitions. Every status may
// follow every other, completed included.
type UpdateStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	roster     ports.StaffRoster
	publisher  ports.EventPublisher
	clock      func() time.Time
}

func NewUpdateStatusCommandHandler(
	uowFactory OrderUoWFactory,
	roster ports.StaffRoster,
	publisher ports.EventPublisher,
	clock func() time.Time,
) UpdateStatusCommandHandler {
	return UpdateStatusCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
	}
}

func (h UpdateStatusCommandHandler) Handle(ctx context.Context, command UpdateStatusCommand) (order.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return order.Snapshot{}, err
	}
	if err := checkRoster(h.roster, command.Actor()); err != nil {
		return order.Snapshot{}, err
	}

	now := h.clock()
	o, _, err := conditionalUpdate(ctx, h.uowFactory, "UpdateStatus", command.OrderID(),
		func(o *order.Order) (bool, error) {
			if err := o.UpdateStatus(command.Status(), command.Actor(), now); err != nil {
				return false, err
			}
			return true, nil
		})
	if err != nil {
		return order.Snapshot{}, err
	}

	h.publisher.Publish(ctx, order.NewEvent(order.EventStatus, o, command.Actor().String(), now))
	return o.Snapshot(), nil
}
