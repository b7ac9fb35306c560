package queries

import (
	"errors"
	"time"

	"printdesk/internal/pkg/guard"
)

var (
	ErrGetOrdersSinceQueryIsNotConstructed = errors.New(
		"GetOrdersSinceQuery must be created via NewGetOrdersSinceQuery constructor",
	)
)

// MaxOrdersPerPage caps one listing.
const MaxOrdersPerPage = 500

// GetOrdersSinceQuery lists orders changed after a point in time, oldest
// change first, one page at a time. A nil since lists the most recently
// changed orders, newest first, up to MaxOrdersPerPage.
//
// Example:
//
//	query := NewGetOrdersSinceQuery(&lastSeen)
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, o := range orders {
//	    fmt.Printf("%s %s\n", o.ID, o.Status)
//	    lastSeen = o.ChangedAt()
//	}
type GetOrdersSinceQuery struct {
	since *time.Time

	guard guard.ConstructorGuard
}

func NewGetOrdersSinceQuery(since *time.Time) GetOrdersSinceQuery {
	q := GetOrdersSinceQuery{guard: guard.NewConstructorGuard()}
	if since != nil {
		at := since.UTC()
		q.since = &at
	}
	return q
}

func (q GetOrdersSinceQuery) Since() *time.Time {
	return q.since
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersSinceQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersSinceQueryIsNotConstructed)
}
