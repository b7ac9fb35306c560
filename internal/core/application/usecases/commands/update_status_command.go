package commands

import (
	"errors"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/pkg/guard"
)

var ErrUpdateStatusCommandIsNotConstructed = errors.New(
	"UpdateStatusCommand must be created via NewUpdateStatusCommand constructor",
)

// UpdateStatusCommand moves an order through the workflow. The raw status
// must be one of the five literals; legacy values are rejected here.
//
// Example:
//
//	cmd, err := NewUpdateStatusCommand("order_42", "pablo", "printing")
//	if err != nil {
//	    return err // errs.ErrValueIsInvalid for an unknown status
//	}
//	snapshot, err := handler.Handle(ctx, cmd)
type UpdateStatusCommand struct {
	orderRef
	status order.Status

	guard guard.ConstructorGuard
}

// NewUpdateStatusCommand parses status and reports every invalid argument
// at once.
func NewUpdateStatusCommand(orderID, staffID, status string) (UpdateStatusCommand, error) {
	cmd := UpdateStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	parsed, statusErr := order.ParseStatus(status)
	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(staffID),
		statusErr,
	); err != nil {
		return UpdateStatusCommand{}, err
	}
	cmd.status = parsed

	return cmd, nil
}

func (c UpdateStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateStatusCommandIsNotConstructed)
}

func (c UpdateStatusCommand) Status() order.Status {
	return c.status
}
