package kafka_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"printdesk/internal/adapters/out/kafka"
	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type fakeClient struct {
	records []*kgo.Record
	err     error
}

func (f *fakeClient) TryProduce(_ context.Context, r *kgo.Record, promise func(*kgo.Record, error)) {
	f.records = append(f.records, r)
	promise(r, f.err)
}

var at = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func staffEvent(t *testing.T) order.Event {
	t.Helper()
	o, err := order.NewOrder("order_9", order.Customer{Name: "Ada"}, at.Add(-time.Hour))
	require.NoError(t, err)
	_, err = o.Claim("pablo", at)
	require.NoError(t, err)
	change, err := o.AssignStaff(kernel.NewStaffSet("evan"), "pablo", at)
	require.NoError(t, err)
	return order.NewEvent(order.EventStaff, o, "pablo", at).WithStaffChange(change)
}

func TestOrderChangedProducer_Publish(t *testing.T) {
	client := &fakeClient{}
	producer := kafka.NewOrderChangedProducer(client, "order.changed", slog.New(slog.NewTextHandler(io.Discard, nil)))

	producer.Publish(context.Background(), staffEvent(t))

	require.Len(t, client.records, 1)
	record := client.records[0]
	assert.Equal(t, "order.changed", record.Topic)
	assert.Equal(t, "order_9", string(record.Key))

	var msg map[string]any
	require.NoError(t, json.Unmarshal(record.Value, &msg))
	assert.Equal(t, "staff", msg["eventType"])
	assert.Equal(t, "order_9", msg["orderId"])
	assert.Equal(t, "pablo", msg["actor"])
	assert.Equal(t, "pablo", msg["order"].(map[string]any)["claimedBy"])
	assert.Equal(t, []any{"evan", "pablo"}, msg["metadata"].(map[string]any)["newStaff"])
}

func TestOrderChangedProducer_BrokerErrorIsSwallowed(t *testing.T) {
	client := &fakeClient{err: errors.New("buffer full")}
	producer := kafka.NewOrderChangedProducer(client, "order.changed", slog.New(slog.NewTextHandler(io.Discard, nil)))

	assert.NotPanics(t, func() {
		producer.Publish(context.Background(), staffEvent(t))
	})
	assert.Len(t, client.records, 1)
}
