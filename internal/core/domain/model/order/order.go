package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not built by NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Customer is the intake-owned contact block. The core reads it for
// notification text and never edits it.
type Customer struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// Order is the print-job aggregate. It owns the claim/assignment rules and
// the status state machine.
//
// Invariants kept by every mutating method:
//   - a claimant, when present, is a member of the assigned staff
//   - a completed order cannot be claimed, released or reassigned
//   - the unclaimed-alert flag is cleared whenever ownership or assignment changes
//     and is only set by MarkUnclaimedNotified
type Order struct {
	id                string
	status            Status
	claimedBy         *kernel.StaffID
	assignedStaff     kernel.StaffSet
	estimatedPrice    *decimal.Decimal
	assignedPrice     *decimal.Decimal
	staffNotes        string
	customer          Customer
	updatedBy         *kernel.StaffID
	lastUpdated       *time.Time
	unclaimedNotified bool
	submittedAt       time.Time

	isConstructed bool
}

// NewOrder creates an unclaimed pending order, the state intake hands over.
func NewOrder(id string, customer Customer, submittedAt time.Time) (*Order, error) {
	o := &Order{
		status:        Pending,
		assignedStaff: kernel.NewStaffSet(),
		customer:      customer,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setSubmittedAt(submittedAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreParams carries a persisted row back into the domain.
type RestoreParams struct {
	ID                string
	Status            *string
	ClaimedBy         *string
	AssignedStaff     []string
	EstimatedPrice    *decimal.Decimal
	AssignedPrice     *decimal.Decimal
	StaffNotes        string
	Customer          Customer
	UpdatedBy         *string
	LastUpdated       *time.Time
	UnclaimedNotified bool
	SubmittedAt       time.Time
}

// RestoreOrder rebuilds an aggregate from storage. Legacy rows are repaired on
// the way in: the status is normalised and a claimant missing from the staff
// list is added back, so the next write persists a consistent row.
func RestoreOrder(p RestoreParams) (*Order, error) {
	o := &Order{
		status:            NormalizeStatus(p.Status),
		assignedStaff:     kernel.ParseStaffSet(p.AssignedStaff),
		estimatedPrice:    p.EstimatedPrice,
		assignedPrice:     p.AssignedPrice,
		staffNotes:        p.StaffNotes,
		customer:          p.Customer,
		lastUpdated:       p.LastUpdated,
		unclaimedNotified: p.UnclaimedNotified,
		isConstructed:     true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setSubmittedAt(p.SubmittedAt),
	); err != nil {
		return nil, err
	}

	if p.ClaimedBy != nil {
		if claimant, err := kernel.NewStaffID(*p.ClaimedBy); err == nil {
			o.claimedBy = &claimant
			o.assignedStaff = o.assignedStaff.With(claimant)
		}
	}
	if p.UpdatedBy != nil {
		if by, err := kernel.NewStaffID(*p.UpdatedBy); err == nil {
			o.updatedBy = &by
		}
	}

	return o, nil
}

// Validate ensures the order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() string { return o.id }
func (o *Order) Status() Status { return o.status }
func (o *Order) AssignedStaff() kernel.StaffSet { return o.assignedStaff }
func (o *Order) EstimatedPrice() *decimal.Decimal { return o.estimatedPrice }
func (o *Order) AssignedPrice() *decimal.Decimal { return o.assignedPrice }
func (o *Order) StaffNotes() string { return o.staffNotes }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) UpdatedBy() *kernel.StaffID { return o.updatedBy }
func (o *Order) LastUpdated() *time.Time { return o.lastUpdated }
func (o *Order) UnclaimedNotified() bool { return o.unclaimedNotified }
func (o *Order) SubmittedAt() time.Time { return o.submittedAt }

// ClaimedBy returns the current claimant, or nil when the order is free.
func (o *Order) ClaimedBy() *kernel.StaffID {
	return o.claimedBy
}

// Claim gives staff exclusive ownership of the order.
//
// It returns changed=false without error when staff already holds the claim.
// A completed order yields *errs.InvalidStateError; an order held by someone
// else yields *errs.ClaimConflictError naming the holder.
func (o *Order) Claim(staff kernel.StaffID, at time.Time) (bool, error) {
	if o.status.IsTerminal() {
		return false, errs.NewInvalidStateError(o.id, o.status.String(), "claim")
	}
	if o.claimedBy != nil {
		if *o.claimedBy == staff {
			return false, nil
		}
		return false, errs.NewClaimConflictError(o.id, o.claimedBy.String())
	}

	o.claimedBy = &staff
	o.assignedStaff = o.assignedStaff.With(staff)
	o.unclaimedNotified = false
	o.touch(staff, at)
	return true, nil
}

// Unclaim releases the order held by staff and drops staff from the
// assignment. Releasing a free order is a no-op (changed=false).
func (o *Order) Unclaim(staff kernel.StaffID, at time.Time) (bool, error) {
	if o.status.IsTerminal() {
		return false, errs.NewInvalidStateError(o.id, o.status.String(), "unclaim")
	}
	if o.claimedBy == nil {
		return false, nil
	}
	if *o.claimedBy != staff {
		return false, errs.NewNotClaimantError(o.id, o.claimedBy.String())
	}

	o.claimedBy = nil
	o.assignedStaff = o.assignedStaff.Without(staff)
	o.unclaimedNotified = false
	o.touch(staff, at)
	return true, nil
}

// AssignStaff replaces the assignment with requested, always keeping the
// current claimant. Roster membership is checked by the caller.
func (o *Order) AssignStaff(requested kernel.StaffSet, by kernel.StaffID, at time.Time) (StaffChange, error) {
	if o.status.IsTerminal() {
		return StaffChange{}, errs.NewInvalidStateError(o.id, o.status.String(), "assign staff to")
	}

	final := requested
	if o.claimedBy != nil {
		final = final.With(*o.claimedBy)
	}

	change := StaffChange{Previous: o.assignedStaff, Current: final}
	if !final.Equal(o.assignedStaff) {
		o.unclaimedNotified = false
	}
	o.assignedStaff = final
	o.touch(by, at)
	return change, nil
}

// UpdateStatus moves the order to status. Any valid status may follow any
// other, including leaving Completed.
func (o *Order) UpdateStatus(status Status, by kernel.StaffID, at time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	o.touch(by, at)
	return nil
}

// UpdatePrices sets the estimate and/or the agreed price. A nil argument
// leaves that price unchanged.
func (o *Order) UpdatePrices(estimated, assigned *decimal.Decimal, by kernel.StaffID, at time.Time) error {
	if estimated == nil && assigned == nil {
		return errs.NewValueIsRequiredError("price")
	}
	if err := errors.Join(
		validatePrice("estimatedPrice", estimated),
		validatePrice("assignedPrice", assigned),
	); err != nil {
		return err
	}

	if estimated != nil {
		v := estimated.Round(2)
		o.estimatedPrice = &v
	}
	if assigned != nil {
		v := assigned.Round(2)
		o.assignedPrice = &v
	}
	o.touch(by, at)
	return nil
}

// UpdateStaffNotes replaces the internal notes.
func (o *Order) UpdateStaffNotes(notes string, by kernel.StaffID, at time.Time) {
	o.staffNotes = strings.TrimSpace(notes)
	o.touch(by, at)
}

// QualifiesForUnclaimedAlert reports whether the watchdog should alert on
// this order given the cutoff (orders submitted before it are overdue).
func (o *Order) QualifiesForUnclaimedAlert(cutoff time.Time) bool {
	return o.claimedBy == nil &&
		!o.status.IsTerminal() &&
		!o.unclaimedNotified &&
		o.submittedAt.Before(cutoff)
}

// MarkUnclaimedNotified records that the unclaimed alert went out. It is the
// only way the flag becomes true.
func (o *Order) MarkUnclaimedNotified(cutoff time.Time) error {
	if !o.QualifiesForUnclaimedAlert(cutoff) {
		return errs.NewInvalidStateError(o.id, o.status.String(), "raise unclaimed alert for")
	}
	o.unclaimedNotified = true
	return nil
}

func (o *Order) touch(by kernel.StaffID, at time.Time) {
	stamp := at.UTC()
	o.updatedBy = &by
	o.lastUpdated = &stamp
}

func (o *Order) setID(id string) error {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return errs.NewValueIsRequiredError("orderId")
	}
	o.id = trimmed
	return nil
}

func (o *Order) setSubmittedAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("submittedAt")
	}
	o.submittedAt = at.UTC()
	return nil
}

func validatePrice(name string, price *decimal.Decimal) error {
	if price != nil && price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", price.String()))
	}
	return nil
}
