package ports

import "printdesk/internal/core/domain/model/kernel"

// StaffRoster is the fixed list of people allowed to own orders.
type StaffRoster interface {
	// Members returns every valid staff id in canonical form.
	Members() kernel.StaffSet
}
