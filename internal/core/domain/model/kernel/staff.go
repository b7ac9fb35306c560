package kernel

import (
	"slices"
	"strings"

	"printdesk/internal/pkg/errs"

	"golang.org/x/text/cases"
)

// StaffID is a staff member identifier in canonical (trimmed, case-folded) form.
// Two spellings of the same name ("Pablo", "pablo") compare equal once parsed.
type StaffID string

// NewStaffID canonicalises raw. It does not consult the roster; that is the
// coordinator's job.
func NewStaffID(raw string) (StaffID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", errs.NewValueIsRequiredError("staffId")
	}
	// cases.Caser is stateful, so each call gets its own.
	return StaffID(cases.Fold().String(trimmed)), nil
}

func (s StaffID) String() string {
	return string(s)
}

// StaffSet is an immutable set of staff identifiers. Members are kept sorted so
// snapshots and persisted arrays are deterministic; insertion order carries no
// meaning.
type StaffSet struct {
	members []StaffID
}

// NewStaffSet builds a set from ids, dropping duplicates and empty values.
func NewStaffSet(ids ...StaffID) StaffSet {
	members := make([]StaffID, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			members = append(members, id)
		}
	}
	slices.Sort(members)
	return StaffSet{members: slices.Compact(members)}
}

// ParseStaffSet canonicalises every raw value and builds a set from them.
// Blank entries are skipped, matching how the legacy delimited column was read.
func ParseStaffSet(raw []string) StaffSet {
	ids := make([]StaffID, 0, len(raw))
	for _, r := range raw {
		id, err := NewStaffID(r)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return NewStaffSet(ids...)
}

func (s StaffSet) Len() int {
	return len(s.members)
}

func (s StaffSet) IsEmpty() bool {
	return len(s.members) == 0
}

func (s StaffSet) Contains(id StaffID) bool {
	_, found := slices.BinarySearch(s.members, id)
	return found
}

// With returns a copy of s that also contains id.
func (s StaffSet) With(id StaffID) StaffSet {
	return NewStaffSet(append(slices.Clone(s.members), id)...)
}

// Without returns a copy of s without id.
func (s StaffSet) Without(id StaffID) StaffSet {
	out := make([]StaffID, 0, len(s.members))
	for _, m := range s.members {
		if m != id {
			out = append(out, m)
		}
	}
	return StaffSet{members: out}
}

// Union returns every member of s or other.
func (s StaffSet) Union(other StaffSet) StaffSet {
	return NewStaffSet(append(slices.Clone(s.members), other.members...)...)
}

// Difference returns the members of s that are not in other.
func (s StaffSet) Difference(other StaffSet) StaffSet {
	out := make([]StaffID, 0, len(s.members))
	for _, m := range s.members {
		if !other.Contains(m) {
			out = append(out, m)
		}
	}
	return StaffSet{members: out}
}

func (s StaffSet) Equal(other StaffSet) bool {
	return slices.Equal(s.members, other.members)
}

// Members returns the sorted members. The slice is a copy.
func (s StaffSet) Members() []StaffID {
	return slices.Clone(s.members)
}

// Strings returns the sorted members as plain strings, never nil.
func (s StaffSet) Strings() []string {
	out := make([]string, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, string(m))
	}
	return out
}
