// Package ports defines the contracts between the printdesk core and its
// adapters: persistence, the staff roster, event publication and push
// delivery.
package ports

import (
	"context"
	"time"

	"printdesk/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Every method runs inside the transaction of the unit of work that produced
// the repository.
type OrderRepository interface {
	// Add persists a new order. Intake owns creation; the core uses Add for
	// seeding and tests.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get reads an order without locking it.
	// Returns *errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id string) (*order.Order, error)

	// GetForUpdate reads an order and holds its row lock until the transaction
	// ends. Concurrent callers for the same id serialise here, which is what
	// makes claim exclusive.
	GetForUpdate(ctx context.Context, id string) (*order.Order, error)

	// GetNewestUnclaimedForUpdate locks the most recently submitted order that
	// is free, not completed, not yet alerted and submitted before cutoff.
	// Rows locked by another transaction are skipped.
	//
	// Returns *errs.ObjectNotFoundError when nothing qualifies.
	GetNewestUnclaimedForUpdate(ctx context.Context, cutoff time.Time) (*order.Order, error)
}
