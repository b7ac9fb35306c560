package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"printdesk/internal/core/domain/model/kernel"
)

// StreamOptions tune one SSE connection.
type StreamOptions struct {
	// WriteTimeout bounds each frame write.
	WriteTimeout time.Duration
	// PingInterval is how long the connection may stay idle before a ping
	// frame is written.
	PingInterval time.Duration
}

var DefaultStreamOptions = StreamOptions{WriteTimeout: 5 * time.Second, PingInterval: 30 * time.Second}

// Stream registers a viewer for staff and writes its frames to w until ctx
// ends, the hub drops the viewer, or a write fails. The caller must not write
// to w afterwards.
func (h *Hub) Stream(ctx context.Context, w http.ResponseWriter, staff kernel.StaffID, opts StreamOptions) error {
	if opts.WriteTimeout <= 0 {
		opts.WriteTimeout = DefaultStreamOptions.WriteTimeout
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = DefaultStreamOptions.PingInterval
	}

	rc := http.NewResponseController(w)
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		return fmt.Errorf("sse: flush headers: %w", err)
	}

	v := h.Subscribe(staff)
	defer h.Unsubscribe(v)

	ping := time.NewTicker(opts.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-v.Done():
			return nil
		case f := <-v.Frames():
			if err := writeFrame(rc, w, f, opts.WriteTimeout); err != nil {
				return err
			}
			v.Written(f.Message.Sequence, h.clock())
			ping.Reset(opts.PingInterval)
		case <-ping.C:
			f := Frame{
				Event:   EventPing,
				Message: Message{Type: EventPing, Timestamp: h.clock().UTC(), Sequence: v.LastSequence()},
			}
			if err := writeFrame(rc, w, f, opts.WriteTimeout); err != nil {
				return err
			}
			v.Written(f.Message.Sequence, h.clock())
		}
	}
}

func writeFrame(rc *http.ResponseController, w http.ResponseWriter, f Frame, timeout time.Duration) error {
	data, err := json.Marshal(f.Message)
	if err != nil {
		return fmt.Errorf("sse: encode %s: %w", f.Event, err)
	}

	if err = rc.SetWriteDeadline(time.Now().Add(timeout)); err != nil && !errors.Is(err, http.ErrNotSupported) {
		return err
	}
	if _, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", f.Message.Sequence, f.Event, data); err != nil {
		return fmt.Errorf("sse: write %s: %w", f.Event, err)
	}
	return rc.Flush()
}
