package commands

import (
	"errors"

	"printdesk/internal/pkg/guard"
)

var ErrUnclaimOrderCommandIsNotConstructed = errors.New(
	"UnclaimOrderCommand must be created via NewUnclaimOrderCommand constructor",
)

// UnclaimOrderCommand releases an order its issuer holds. Releasing an order
// nobody holds succeeds without a write; releasing someone else's claim fails
// with *errs.NotClaimantError.
//
// Example:
//
//	cmd, err := NewUnclaimOrderCommand("order_42", "pablo")
//	if err != nil {
//	    return err
//	}
//	snapshot, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrForbidden) {
//	    return echo.NewHTTPError(http.StatusForbidden, err.Error())
//	}
type UnclaimOrderCommand struct {
	orderRef

	guard guard.ConstructorGuard
}

// NewUnclaimOrderCommand validates the order id and canonicalises the staff id.
func NewUnclaimOrderCommand(orderID, staffID string) (UnclaimOrderCommand, error) {
	cmd := UnclaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(staffID),
	); err != nil {
		return UnclaimOrderCommand{}, err
	}

	return cmd, nil
}

func (c UnclaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrUnclaimOrderCommandIsNotConstructed)
}
