// Package kafka consumes intake's order-submitted topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"printdesk/internal/core/application/usecases/commands"
	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/pkg/tracing"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OrderSubmittedMessage is what intake publishes once an order row exists.
type OrderSubmittedMessage struct {
	OrderID string `json:"orderId"`
}

// OrderAnnouncer is satisfied by commands.AnnounceOrderCommandHandler.
type OrderAnnouncer interface {
	Handle(ctx context.Context, command commands.AnnounceOrderCommand) (order.Snapshot, error)
}

// OrderSubmittedConsumer turns order-submitted records into new_order events.
// A record that cannot be processed is logged and skipped; the topic is a
// notification feed, not a work queue.
type OrderSubmittedConsumer struct {
	client    *kgo.Client
	announcer OrderAnnouncer
	logger    *slog.Logger
}

// NewOrderSubmittedConsumer joins group and subscribes to topic.
func NewOrderSubmittedConsumer(
	brokers []string,
	group, topic string,
	announcer OrderAnnouncer,
	logger *slog.Logger,
) (*OrderSubmittedConsumer, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topic),
		kgo.BlockRebalanceOnPoll(),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}

	return &OrderSubmittedConsumer{
		client:    client,
		announcer: announcer,
		logger:    logger.With("component", "order_submitted_consumer", "topic", topic),
	}, nil
}

// Run polls until ctx is done or the client is closed.
func (c *OrderSubmittedConsumer) Run(ctx context.Context) error {
	c.logger.InfoContext(ctx, "Order submitted consumer started")
	defer c.logger.InfoContext(context.Background(), "Order submitted consumer stopped")

	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}

		fetches.EachError(func(topic string, partition int32, err error) {
			c.logger.ErrorContext(ctx, "Fetch failed", "partition", partition, "error", err)
		})
		fetches.EachRecord(func(record *kgo.Record) {
			if err := c.HandleRecord(ctx, record); err != nil {
				c.logger.WarnContext(ctx, "Order announcement skipped",
					"partition", record.Partition, "offset", record.Offset, "error", err)
			}
		})
		c.client.AllowRebalance()
	}
}

// HandleRecord announces the order named by record.
func (c *OrderSubmittedConsumer) HandleRecord(ctx context.Context, record *kgo.Record) error {
	return handleRecord(ctx, c.announcer, record)
}

func handleRecord(ctx context.Context, announcer OrderAnnouncer, record *kgo.Record) error {
	ctx, span := tracing.StartInfrastructure(ctx, "ConsumeOrderSubmitted", tracing.SubLayerBroker,
		trace.WithLinks(tracing.KafkaLinks(ctx, record.Headers)...),
		trace.WithSpanKind(trace.SpanKindConsumer),
	)
	defer span.End()

	var msg OrderSubmittedMessage
	if err := json.Unmarshal(record.Value, &msg); err != nil {
		tracing.Fail(span, err)
		return fmt.Errorf("decode order submitted: %w", err)
	}
	if msg.OrderID == "" && len(record.Key) > 0 {
		msg.OrderID = string(record.Key)
	}
	span.SetAttributes(attribute.String("order.id", msg.OrderID))

	cmd, err := commands.NewAnnounceOrderCommand(msg.OrderID)
	if err != nil {
		tracing.Fail(span, err)
		return err
	}

	if _, err = announcer.Handle(ctx, cmd); err != nil {
		tracing.Fail(span, err)
		return errors.Join(fmt.Errorf("announce order %s", msg.OrderID), err)
	}
	return nil
}

// Close leaves the group and closes the client.
func (c *OrderSubmittedConsumer) Close() {
	c.client.Close()
}
