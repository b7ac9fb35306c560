package order

import (
	"time"

	"printdesk/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// EventType names an accepted change to an order.
type EventType string

const (
	EventClaim          EventType = "claim"
	EventUnclaim        EventType = "unclaim"
	EventStatus         EventType = "status"
	EventStaff          EventType = "staff"
	EventPrice          EventType = "price"
	EventNotes          EventType = "notes"
	EventNewOrder       EventType = "new_order"
	EventUnclaimedOrder EventType = "unclaimed_order"
)

// StaffChange describes an assignment edit.
type StaffChange struct {
	Previous kernel.StaffSet
	Current  kernel.StaffSet
}

// NewlyAssigned returns the members present after the edit but not before.
func (c StaffChange) NewlyAssigned() kernel.StaffSet {
	return c.Current.Difference(c.Previous)
}

// Metadata renders the change the way it travels to viewers and API callers.
func (c StaffChange) Metadata() StaffMetadata {
	return StaffMetadata{
		PreviousStaff: c.Previous.Strings(),
		NewStaff:      c.Current.Strings(),
	}
}

// StaffMetadata is the wire form of a StaffChange.
type StaffMetadata struct {
	PreviousStaff []string `json:"previousStaff"`
	NewStaff      []string `json:"newStaff"`
}

// Event is emitted after a mutation commits. Order is the committed state.
type Event struct {
	Type       EventType
	Order      Snapshot
	Staff      *StaffChange
	Actor      string
	OccurredAt time.Time
}

// NewEvent builds an event for a committed order.
func NewEvent(eventType EventType, o *Order, actor string, at time.Time) Event {
	return Event{
		Type:       eventType,
		Order:      o.Snapshot(),
		Actor:      actor,
		OccurredAt: at.UTC(),
	}
}

// WithStaffChange attaches assignment metadata to a staff event.
func (e Event) WithStaffChange(change StaffChange) Event {
	e.Staff = &change
	return e
}

// Snapshot is a read-only, serialisable copy of an order.
type Snapshot struct {
	ID                string           `json:"id"`
	Status            Status           `json:"status"`
	ClaimedBy         *string          `json:"claimedBy"`
	AssignedStaff     []string         `json:"assignedStaff"`
	EstimatedPrice    *decimal.Decimal `json:"estimatedPrice"`
	AssignedPrice     *decimal.Decimal `json:"assignedPrice"`
	StaffNotes        string           `json:"staffNotes"`
	CustomerName      string           `json:"customerName"`
	Email             string           `json:"email"`
	Phone             string           `json:"phone"`
	CustomerNotes     string           `json:"customerNotes"`
	UpdatedBy         *string          `json:"updatedBy"`
	LastUpdated       *time.Time       `json:"lastUpdated"`
	UnclaimedNotified bool             `json:"unclaimedNotified"`
	SubmittedAt       time.Time        `json:"submittedAt"`
}

// Snapshot copies the current state of o.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:                o.id,
		Status:            o.status,
		AssignedStaff:     o.assignedStaff.Strings(),
		EstimatedPrice:    copyDecimal(o.estimatedPrice),
		AssignedPrice:     copyDecimal(o.assignedPrice),
		StaffNotes:        o.staffNotes,
		CustomerName:      o.customer.Name,
		Email:             o.customer.Email,
		Phone:             o.customer.Phone,
		CustomerNotes:     o.customer.Notes,
		UnclaimedNotified: o.unclaimedNotified,
		SubmittedAt:       o.submittedAt,
	}
	if o.claimedBy != nil {
		v := o.claimedBy.String()
		s.ClaimedBy = &v
	}
	if o.updatedBy != nil {
		v := o.updatedBy.String()
		s.UpdatedBy = &v
	}
	if o.lastUpdated != nil {
		v := *o.lastUpdated
		s.LastUpdated = &v
	}
	return s
}

// ChangedAt is the last mutation time, or the submission time for untouched orders.
func (s Snapshot) ChangedAt() time.Time {
	if s.LastUpdated != nil {
		return *s.LastUpdated
	}
	return s.SubmittedAt
}

func copyDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}
