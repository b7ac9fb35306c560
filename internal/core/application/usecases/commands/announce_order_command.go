package commands

import (
	"errors"

	"printdesk/internal/pkg/guard"
)

var ErrAnnounceOrderCommandIsNotConstructed = errors.New(
	"AnnounceOrderCommand must be created via NewAnnounceOrderCommand constructor",
)

// AnnounceOrderCommand tells viewers and subscribers that intake stored a new
// order. It carries only the id; the handler reads the rest from the store.
type AnnounceOrderCommand struct {
	orderRef

	guard guard.ConstructorGuard
}

func NewAnnounceOrderCommand(orderID string) (AnnounceOrderCommand, error) {
	cmd := AnnounceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderID(orderID); err != nil {
		return AnnounceOrderCommand{}, err
	}

	return cmd, nil
}

func (c AnnounceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAnnounceOrderCommandIsNotConstructed)
}
