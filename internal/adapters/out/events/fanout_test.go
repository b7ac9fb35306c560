package events_test

import (
	"context"
	"testing"

	"printdesk/internal/adapters/out/events"
	"printdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	name string
	log  *[]string
}

func (r recorder) Publish(_ context.Context, e order.Event) {
	*r.log = append(*r.log, r.name+":"+string(e.Type))
}

func TestFanOut_PublishesInOrder(t *testing.T) {
	var log []string
	fan := events.NewFanOut(recorder{"hub", &log}, nil, recorder{"push", &log}, recorder{"kafka", &log})

	fan.Publish(context.Background(), order.Event{Type: order.EventClaim})
	fan.Publish(context.Background(), order.Event{Type: order.EventStatus})

	assert.Equal(t, []string{
		"hub:claim", "push:claim", "kafka:claim",
		"hub:status", "push:status", "kafka:status",
	}, log)
}
