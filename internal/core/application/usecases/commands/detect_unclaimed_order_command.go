package commands

import (
	"errors"

	"printdesk/internal/pkg/guard"
)

var ErrDetectUnclaimedOrderCommandIsNotConstructed = errors.New(
	"DetectUnclaimedOrderCommand must be created via NewDetectUnclaimedOrderCommand constructor",
)

// DetectUnclaimedOrderCommand triggers one watchdog scan.
// This is a parameterless command; the threshold belongs to the handler.
//
// Example:
//
//	snapshot, err := handler.Handle(ctx, NewDetectUnclaimedOrderCommand())
//	if errors.Is(err, ErrNoOverdueOrder) {
//	    return nil // nothing overdue this tick
//	}
type DetectUnclaimedOrderCommand struct {
	guard guard.ConstructorGuard
}

func NewDetectUnclaimedOrderCommand() DetectUnclaimedOrderCommand {
	return DetectUnclaimedOrderCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c DetectUnclaimedOrderCommand) Validate() error {
	return c.guard.Validate(ErrDetectUnclaimedOrderCommandIsNotConstructed)
}
