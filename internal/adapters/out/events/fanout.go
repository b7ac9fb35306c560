// Package events routes committed order events to every consumer.
package events

import (
	"context"

	"printdesk/internal/core/domain/model/order"
	"printdesk/internal/core/ports"
)

// FanOut hands each event to its publishers in order. The composition root
// lists the live hub first, then the push dispatcher, then the export
// producer, so viewers hear about a change before anything slower runs.
type FanOut struct {
	publishers []ports.EventPublisher
}

func NewFanOut(publishers ...ports.EventPublisher) *FanOut {
	out := make([]ports.EventPublisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	return &FanOut{publishers: out}
}

func (f *FanOut) Publish(ctx context.Context, e order.Event) {
	for _, p := range f.publishers {
		p.Publish(ctx, e)
	}
}
