// Package notifications delivers push notifications for committed order
// events on a background worker.
package notifications

import (
	"context"
	"log/slog"
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/domain/model/subscription"
	"printdesk/internal/core/domain/services"
	"printdesk/internal/core/ports"
	"printdesk/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
)

const (
	// DefaultQueueSize is used when NewDispatcher is given a non-positive size.
	DefaultQueueSize = 256
	// DefaultStoreTimeout bounds each subscription store call.
	DefaultStoreTimeout = 5 * time.Second
)

// Dispatcher implements ports.EventPublisher. Publish only enqueues; Run
// drains the queue and delivers to each recipient in turn. When the queue is
// full the event is dropped and logged.
//
// Delivery outcomes:
//   - permanent failure (endpoint gone): the subscription is deleted
//   - transient failure: logged, the subscription is kept
//
// Every subscription store call runs under its own store timeout, so a hung
// database cannot stall the worker.
type Dispatcher struct {
	targeting     services.NotificationTargeting
	subscriptions ports.SubscriptionRepository
	sender        ports.PushSender
	queue         chan queued
	storeTimeout  time.Duration
	logger        *slog.Logger
}

// Option customises a Dispatcher.
type Option func(d *Dispatcher)

// WithStoreTimeout overrides DefaultStoreTimeout. Non-positive values are ignored.
func WithStoreTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.storeTimeout = timeout
		}
	}
}

type queued struct {
	ctx   context.Context
	event order.Event
}

func NewDispatcher(
	targeting services.NotificationTargeting,
	subscriptions ports.SubscriptionRepository,
	sender ports.PushSender,
	logger *slog.Logger,
	queueSize int,
	opts ...Option,
) *Dispatcher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		targeting:     targeting,
		subscriptions: subscriptions,
		sender:        sender,
		queue:         make(chan queued, queueSize),
		storeTimeout:  DefaultStoreTimeout,
		logger:        logger.With("component", "notification_dispatcher"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Publish queues e for delivery. Events nobody should hear about are
// discarded here.
func (d *Dispatcher) Publish(ctx context.Context, e order.Event) {
	if d.targeting.Audience(e).IsEmpty() {
		return
	}

	select {
	case d.queue <- queued{ctx: context.WithoutCancel(ctx), event: e}:
	default:
		d.logger.WarnContext(ctx, "Notification queue full, dropping event",
			"event", e.Type, "order_id", e.Order.ID)
	}
}

// Run delivers queued events until ctx is done.
func (d *Dispatcher) Run(ctx context.Context) error {
	d.logger.InfoContext(ctx, "Notification dispatcher started")
	for {
		select {
		case <-ctx.Done():
			d.logger.InfoContext(context.Background(), "Notification dispatcher stopped")
			return nil
		case item := <-d.queue:
			d.Deliver(item.ctx, item.event)
		}
	}
}

// Deliver sends e to its recipients synchronously. Failures are logged.
func (d *Dispatcher) Deliver(ctx context.Context, e order.Event) {
	ctx, span := tracing.StartApplication(ctx, "DeliverNotification",
		attribute.String("event.type", string(e.Type)),
		attribute.String("order.id", e.Order.ID),
	)
	defer span.End()

	recipients, err := d.recipients(ctx, e)
	if err != nil {
		tracing.Fail(span, err)
		d.logger.ErrorContext(ctx, "Failed to load push subscriptions", "event", e.Type, "error", err)
		return
	}
	span.SetAttributes(attribute.Int("notification.recipients", len(recipients)))
	if len(recipients) == 0 {
		return
	}

	msg := d.targeting.Message(e)
	for _, s := range recipients {
		d.deliverOne(ctx, e, s, msg)
	}
}

func (d *Dispatcher) recipients(ctx context.Context, e order.Event) ([]*subscription.Subscription, error) {
	audience := d.targeting.Audience(e)

	ctx, cancel := context.WithTimeout(ctx, d.storeTimeout)
	defer cancel()

	var (
		subs []*subscription.Subscription
		err  error
	)
	switch audience.Kind {
	case services.AudienceEveryone:
		subs, err = d.subscriptions.ListAll(ctx)
	case services.AudienceStaff:
		subs, err = d.subscriptions.ListByStaff(ctx, audience.Staff)
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d.targeting.Recipients(e, subs), nil
}

func (d *Dispatcher) deliverOne(ctx context.Context, e order.Event, s *subscription.Subscription, msg services.Message) {
	result := d.sender.Send(ctx, s, msg)
	log := d.logger.With(
		"event", e.Type,
		"order_id", e.Order.ID,
		"staff_id", s.StaffID().String(),
		"subscription_id", s.ID().String(),
		"status_code", result.StatusCode,
	)

	switch result.Outcome {
	case ports.DeliveryOk:
		log.DebugContext(ctx, "Push delivered")
	case ports.DeliveryPermanentFailure:
		log.InfoContext(ctx, "Push endpoint gone, removing subscription", "error", result.Err)
		if err := d.deleteSubscription(ctx, s.ID()); err != nil {
			log.ErrorContext(ctx, "Failed to remove subscription", "error", err)
		}
	default:
		log.WarnContext(ctx, "Push delivery failed", "outcome", result.Outcome.String(), "error", result.Err)
	}
}

func (d *Dispatcher) deleteSubscription(ctx context.Context, id kernel.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, d.storeTimeout)
	defer cancel()
	return d.subscriptions.Delete(ctx, id)
}
