package commands

import (
	"errors"

	"printdesk/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand asks for exclusive ownership of an order on behalf of a
// staff member.
//
// Example:
//
//	cmd, err := NewClaimOrderCommand("order_42", "pablo")
//	if err != nil {
//	    return err
//	}
//	snapshot, err := handler.Handle(ctx, cmd)
//	var conflict *errs.ClaimConflictError
//	if errors.As(err, &conflict) {
//	    log.Printf("already claimed by %s", conflict.ClaimedBy)
//	}
type ClaimOrderCommand struct {
	orderRef

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand validates the order id and canonicalises the staff id.
func NewClaimOrderCommand(orderID, staffID string) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(staffID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}
