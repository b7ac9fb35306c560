package commands

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
)

// AssignStaffResult is the committed order plus the assignment diff.
type AssignStaffResult struct {
	Order    order.Snapshot
	Metadata order.StaffMetadata
}

// AssignStaffCommandHandler merges a requested staff list into an order.
//
// Business rules:
//   - every requested id must be on the roster; all offenders are reported at
//     once and nothing is written
//   - the current claimant is always kept, even when not requested
//   - completed orders are rejected
//
// A staff event carrying the previous and final sets is published; the
// notification side uses their difference to reach only new members.
type AssignStaffCommandHandler struct {
	uowFactory OrderUoWFactory
	roster     ports.StaffRoster
	publisher  ports.EventPublisher
	clock      func() time.Time
}

func NewAssignStaffCommandHandler(
	uowFactory OrderUoWFactory,
	roster ports.StaffRoster,
	publisher ports.EventPublisher,
	clock func() time.Time,
) AssignStaffCommandHandler {
	return AssignStaffCommandHandler{
		uowFactory: uowFactory,
		roster:     roster,
		publisher:  publisher,
		clock:      clockOrDefault(clock),
	}
}

func (h AssignStaffCommandHandler) Handle(ctx context.Context, command AssignStaffCommand) (AssignStaffResult, error) {
	if err := command.Validate(); err != nil {
		return AssignStaffResult{}, err
	}
	if err := checkRoster(h.roster, command.Requested().Members()...); err != nil {
		return AssignStaffResult{}, err
	}
	if err := checkRoster(h.roster, command.Actor()); err != nil {
		return AssignStaffResult{}, err
	}

	now := h.clock()
	var change order.StaffChange
	o, _, err := conditionalUpdate(ctx, h.uowFactory, "AssignStaff", command.OrderID(),
		func(o *order.Order) (bool, error) {
			var err error
			change, err = o.AssignStaff(command.Requested(), command.Actor(), now)
			return err == nil, err
		})
	if err != nil {
		return AssignStaffResult{}, err
	}

	event := order.NewEvent(order.EventStaff, o, command.Actor().String(), now).WithStaffChange(change)
	h.publisher.Publish(ctx, event)

	return AssignStaffResult{
		Order:    event.Order,
		Metadata: change.Metadata(),
	}, nil
}
