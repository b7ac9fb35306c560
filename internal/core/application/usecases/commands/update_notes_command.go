package commands

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"printdesk/internal/pkg/errs"
	"printdesk/internal/pkg/guard"
)

// maxStaffNotesLength caps the internal notes field, in characters.
const maxStaffNotesLength = 4000

var ErrUpdateNotesCommandIsNotConstructed = errors.New(
	"UpdateNotesCommand must be created via NewUpdateNotesCommand constructor",
)

// UpdateNotesCommand replaces the staff-only notes of an order. An empty
// string clears them.
type UpdateNotesCommand struct {
	orderRef
	notes string

	guard guard.ConstructorGuard
}

func NewUpdateNotesCommand(orderID, staffID, notes string) (UpdateNotesCommand, error) {
	cmd := UpdateNotesCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	var notesErr error
	if n := utf8.RuneCountInString(notes); n > maxStaffNotesLength {
		notesErr = errs.NewValueIsInvalidErrorWithCause("staffNotes",
			fmt.Errorf("%d characters exceeds the limit of %d", n, maxStaffNotesLength))
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(staffID),
		notesErr,
	); err != nil {
		return UpdateNotesCommand{}, err
	}

	return cmd, nil
}

func (c UpdateNotesCommand) Validate() error {
	return c.guard.Validate(ErrUpdateNotesCommandIsNotConstructed)
}

func (c UpdateNotesCommand) Notes() string {
	return c.notes
}
