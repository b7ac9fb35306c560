// Package kafka exports committed order events to external collaborators.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
)

// OrderChangedMessage is the value of every record on the order-changed topic.
type OrderChangedMessage struct {
	EventType  order.EventType      `json:"eventType"`
	OrderID    string               `json:"orderId"`
	Actor      string               `json:"actor,omitempty"`
	OccurredAt time.Time            `json:"occurredAt"`
	Order      order.Snapshot       `json:"order"`
	Metadata   *order.StaffMetadata `json:"metadata,omitempty"`
}

// NewOrderChangedMessage converts a domain event into its wire form.
func NewOrderChangedMessage(e order.Event) OrderChangedMessage {
	msg := OrderChangedMessage{
		EventType:  e.Type,
		OrderID:    e.Order.ID,
		Actor:      e.Actor,
		OccurredAt: e.OccurredAt,
		Order:      e.Order,
	}
	if e.Staff != nil {
		meta := e.Staff.Metadata()
		msg.Metadata = &meta
	}
	return msg
}

// recordProducer is the part of *kgo.Client the producer uses.
type recordProducer interface {
	TryProduce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

// OrderChangedProducer implements ports.EventPublisher. Records are keyed by
// order id so one order's events stay on one partition, in commit order.
// Delivery is best-effort: a full client buffer or a broker error is logged.
type OrderChangedProducer struct {
	client recordProducer
	topic  string
	logger *slog.Logger
}

// NewOrderChangedProducer wraps a client created with NewProducerClient.
func NewOrderChangedProducer(client recordProducer, topic string, logger *slog.Logger) *OrderChangedProducer {
	return &OrderChangedProducer{
		client: client,
		topic:  topic,
		logger: logger.With("component", "order_changed_producer"),
	}
}

// NewProducerClient connects to brokers.
func NewProducerClient(brokers []string, clientID string) (*kgo.Client, error) {
	return kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ClientID(clientID),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RecordDeliveryTimeout(30*time.Second),
		kgo.MaxBufferedRecords(10_000),
		kgo.AllowAutoTopicCreation(),
	)
}

func (p *OrderChangedProducer) Publish(ctx context.Context, e order.Event) {
	ctx, span := tracing.StartInfrastructure(ctx, "PublishOrderChanged", tracing.SubLayerBroker)
	defer span.End()
	span.SetAttributes(
		attribute.String("kafka.topic", p.topic),
		attribute.String("order.id", e.Order.ID),
		attribute.String("event.type", string(e.Type)),
	)

	value, err := json.Marshal(NewOrderChangedMessage(e))
	if err != nil {
		tracing.Fail(span, err)
		p.logger.ErrorContext(ctx, "Failed to encode order event", "order_id", e.Order.ID, "error", err)
		return
	}

	record := &kgo.Record{
		Topic:   p.topic,
		Key:     []byte(e.Order.ID),
		Value:   value,
		Headers: tracing.KafkaHeaders(ctx),
	}

	// The promise runs after the request context is gone.
	logger := p.logger.With("order_id", e.Order.ID, "event", e.Type)
	p.client.TryProduce(context.WithoutCancel(ctx), record, func(_ *kgo.Record, err error) {
		if err != nil {
			logger.Warn("Order event not exported", "error", err)
		}
	})
}
