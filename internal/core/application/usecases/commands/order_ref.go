package commands

import (
	"strings"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/pkg/errs"
)

// orderRef is the part every order command shares: which order, and who is
// asking.
type orderRef struct {
	orderID string
	actor   kernel.StaffID
}

func (r *orderRef) setOrderID(orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	r.orderID = orderID
	return nil
}

func (r *orderRef) setActor(staffID string) error {
	actor, err := kernel.NewStaffID(staffID)
	if err != nil {
		return err
	}
	r.actor = actor
	return nil
}

// OrderID returns the target order.
func (r orderRef) OrderID() string {
	return r.orderID
}

// Actor returns the staff member issuing the command.
func (r orderRef) Actor() kernel.StaffID {
	return r.actor
}
