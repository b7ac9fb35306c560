// Package roster provides the configured staff list.
package roster

import (
	"errors"

	"printdesk/internal/core/domain/model/kernel"
)

var ErrEmptyRoster = errors.New("staff roster is empty")

// StaticRoster implements ports.StaffRoster with a list fixed at startup.
type StaticRoster struct {
	members kernel.StaffSet
}

// NewStaticRoster canonicalises raw. Blank entries and duplicates (in any
// case) are dropped.
func NewStaticRoster(raw []string) (*StaticRoster, error) {
	members := kernel.ParseStaffSet(raw)
	if members.IsEmpty() {
		return nil, ErrEmptyRoster
	}
	return &StaticRoster{members: members}, nil
}

func (r *StaticRoster) Members() kernel.StaffSet {
	return r.members
}
