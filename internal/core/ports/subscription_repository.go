package ports

import (
	"context"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/subscription"
)

// SubscriptionRepository stores push subscriptions.
type SubscriptionRepository interface {
	// Upsert stores s, replacing the staff binding and keys of an existing
	// subscription with the same endpoint. The stored record is returned; its
	// id is the original one when the endpoint was already known.
	Upsert(ctx context.Context, s *subscription.Subscription) (*subscription.Subscription, error)

	ListAll(ctx context.Context) ([]*subscription.Subscription, error)

	// ListByStaff returns the subscriptions bound to any member of staff.
	ListByStaff(ctx context.Context, staff kernel.StaffSet) ([]*subscription.Subscription, error)

	// Delete removes a subscription. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id kernel.UUID) error
}
