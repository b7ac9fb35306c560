package commands

import (
	"errors"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/pkg/guard"
)

var ErrAssignStaffCommandIsNotConstructed = errors.New(
	"AssignStaffCommand must be created via NewAssignStaffCommand constructor",
)

// AssignStaffCommand replaces the staff working on an order. The requested
// list may be empty; duplicates and spelling variants of one name collapse.
//
// Every requested member must be on the roster. The handler reports unknown
// names together in one *errs.InvalidMembersError.
//
// Example:
//
//	cmd, err := NewAssignStaffCommand("order_42", "pablo", []string{"Evan", "sam", "evan"})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cmd.Requested().Strings()) // [evan sam]
//
//	result, err := handler.Handle(ctx, cmd)
//	var unknown *errs.InvalidMembersError
//	if errors.As(err, &unknown) {
//	    log.Printf("not on the roster: %v", unknown.Members)
//	}
type AssignStaffCommand struct {
	orderRef
	requested kernel.StaffSet

	guard guard.ConstructorGuard
}

// NewAssignStaffCommand canonicalises the requested names and the issuer.
// Roster membership is checked later by the handler.
func NewAssignStaffCommand(orderID, staffID string, requested []string) (AssignStaffCommand, error) {
	cmd := AssignStaffCommand{
		requested: kernel.ParseStaffSet(requested),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(staffID),
	); err != nil {
		return AssignStaffCommand{}, err
	}

	return cmd, nil
}

func (c AssignStaffCommand) Validate() error {
	return c.guard.Validate(ErrAssignStaffCommandIsNotConstructed)
}

// Requested returns the canonical requested set.
func (c AssignStaffCommand) Requested() kernel.StaffSet {
	return c.requested
}
