package commands

import (
	"errors"

	"printdesk/internal/pkg/errs"
	"printdesk/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrUpdatePriceCommandIsNotConstructed = errors.New(
	"UpdatePriceCommand must be created via NewUpdatePriceCommand constructor",
)

// UpdatePriceCommand sets the estimate, the agreed price, or both. A nil
// price is left as it is. At least one price is required and neither may be
// negative.
//
// Example:
//
//	estimate := decimal.RequireFromString("12.50")
//	cmd, err := NewUpdatePriceCommand("order_42", "pablo", &estimate, nil)
//	if err != nil {
//	    return err
//	}
//	snapshot, err := handler.Handle(ctx, cmd)
type UpdatePriceCommand struct {
	orderRef
	estimatedPrice *decimal.Decimal
	assignedPrice  *decimal.Decimal

	guard guard.ConstructorGuard
}

func NewUpdatePriceCommand(orderID, staffID string, estimatedPrice, assignedPrice *decimal.Decimal) (UpdatePriceCommand, error) {
	cmd := UpdatePriceCommand{
		estimatedPrice: estimatedPrice,
		assignedPrice:  assignedPrice,
		guard:          guard.NewConstructorGuard(),
	}

	var priceErr error
	if estimatedPrice == nil && assignedPrice == nil {
		priceErr = errs.NewValueIsRequiredError("estimatedPrice or assignedPrice")
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(staffID),
		priceErr,
	); err != nil {
		return UpdatePriceCommand{}, err
	}

	return cmd, nil
}

func (c UpdatePriceCommand) Validate() error {
	return c.guard.Validate(ErrUpdatePriceCommandIsNotConstructed)
}

func (c UpdatePriceCommand) EstimatedPrice() *decimal.Decimal {
	return c.estimatedPrice
}

func (c UpdatePriceCommand) AssignedPrice() *decimal.Decimal {
	return c.assignedPrice
}
