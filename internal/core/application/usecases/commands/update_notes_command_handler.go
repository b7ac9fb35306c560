package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
)

// UpdateNotesCommandHandler edits staff notes in any status.
type UpdateNotesCommandHandler struct {
	uowFactory OrderUoWFactory
	roster     ports.StaffRoster
	publisher  ports.EventPublisher
	clock      func() time.Time
}

func NewUpdateNotesCommandHandler(
	uowFactory OrderUoWFactory,
	roster ports.StaffRoster,
	publisher ports.EventPublisher,
	clock func() time.Time,
) UpdateNotesCommandHandler {
	return UpdateNotesCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
	}
}

func (h UpdateNotesCommandHandler) Handle(ctx context.Context, command UpdateNotesCommand) (order.Snapshot, error) {
	if err := command.Validate(); err != nil {
		return order.Snapshot{}, err
	}
	if err := checkRoster(h.roster, command.Actor()); err != nil {
		return order.Snapshot{}, err
	}

	now := h.clock()
	o, _, err := conditionalUpdate(ctx, h.uowFactory, "UpdateNotes", command.OrderID(),
		func(o *order.Order) (bool, error) {
			o.UpdateStaffNotes(command.Notes(), command.Actor(), now)
			return true, nil
		})
	if err != nil {
		return order.Snapshot{}, err
	}

	h.publisher.Publish(ctx, order.NewEvent(order.EventNotes, o, command.Actor().String(), now))
	return o.Snapshot(), nil
}
