package order

import (
	"fmt"
	"strings"

	"printdesk/internal/pkg/errs"

	"golang.org/x/text/cases"
)

// Status is the workflow state of a print order.
//
// Every state can move to every other state through UpdateStatus:
//
//	pending <-> pre-print <-> printing <-> printing-pay-later <-> completed
//
// Completed is terminal for ownership only: while an order is completed it
// cannot be claimed, released or reassigned, but its status, prices and notes
// may still be edited.
type Status int

const (
	// Unknown is the zero value and never persisted.
	Unknown Status = iota
	Pending
	PrePrint
	Printing
	PrintingPayLater
	Completed
)

// legacySubmitted is written by the old intake form and reads as Pending.
const legacySubmitted = "submitted"

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Pending:          "pending",
		PrePrint:         "pre-print",
		Printing:         "printing",
		PrintingPayLater: "printing-pay-later",
		Completed:        "completed",
	}
}

// ParseStatus accepts exactly one of the five persisted literals, ignoring
// case and surrounding blanks. Anything else is a validation error; use
// NormalizeStatus on read paths instead.
func ParseStatus(raw string) (Status, error) {
	folded := cases.Fold().String(strings.TrimSpace(raw))
	for status, literal := range getStatusStrings() {
		if literal == folded {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not one of pending, pre-print, printing, printing-pay-later, completed", raw),
	)
}

// NormalizeStatus maps a stored value to a Status. Missing, blank, legacy
// "submitted" and unrecognised values all read as Pending.
func NormalizeStatus(raw *string) Status {
	if raw == nil {
		return Pending
	}
	if strings.EqualFold(strings.TrimSpace(*raw), legacySubmitted) {
		return Pending
	}
	status, err := ParseStatus(*raw)
	if err != nil {
		return Pending
	}
	return status
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the persisted literal, or "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether ownership of the order is frozen.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// MarshalText renders the persisted literal so snapshots serialise as strings.
func (s Status) MarshalText() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return []byte(s.String()), nil
}

// UnmarshalText accepts the persisted literals only.
func (s *Status) UnmarshalText(text []byte) error {
	parsed, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
