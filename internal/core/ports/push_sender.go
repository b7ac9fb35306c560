package ports

import (
	"context"

	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/core/domain/services"
)

// DeliveryOutcome classifies a push attempt.
type DeliveryOutcome int

const (
	DeliveryOk DeliveryOutcome = iota
	// DeliveryTransientFailure may succeed on a later event; the subscription is kept.
	DeliveryTransientFailure
	// DeliveryPermanentFailure means the endpoint is gone; the subscription must be deleted.
	DeliveryPermanentFailure
)

func (o DeliveryOutcome) String() string {
	switch o {
	case DeliveryOk:
		return "ok"
	case DeliveryTransientFailure:
		return "transient_failure"
	case DeliveryPermanentFailure:
		return "permanent_failure"
	default:
		return "unknown"
	}
}

// DeliveryResult is what a PushSender reports for one subscription.
type DeliveryResult struct {
	Outcome    DeliveryOutcome
	StatusCode int
	Err        error
}

// PushSender delivers one message to one subscription within its own timeout.
type PushSender interface {
	Send(ctx context.Context, s *subscription.Subscription, msg services.Message) DeliveryResult
}
