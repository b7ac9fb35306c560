package ports

import (
	"context"

	"printdesk/internal/core/domain/model/order"
)

// EventPublisher receives every committed order event. Publication is
// best-effort: implementations log their own failures and never block the
// caller on slow consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event order.Event)
}
