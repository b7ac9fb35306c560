// Package live fans committed order events out to connected viewers over
// server-sent events.
//
// Every frame carries a sequence number drawn from one hub-wide counter.
// Sequences are assigned and frames enqueued under the same lock, so every
// viewer receives frames in the same relative order. Each viewer has a
// bounded queue drained by exactly one writer; a viewer whose queue is full
// is dropped instead of slowing the others down.
package live

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"
)

// SSE event names.
const (
	EventConnect        = "connect"
	EventHeartbeat      = "heartbeat"
	EventPing           = "ping"
	EventOrderUpdate    = "orderUpdate"
	EventUnclaimedOrder = "unclaimed_order"
)

// Message is the JSON body of one frame.
type Message struct {
	Type      string               `json:"type"`
	Order     *order.Snapshot      `json:"order,omitempty"`
	Metadata  *order.StaffMetadata `json:"metadata,omitempty"`
	Timestamp time.Time            `json:"timestamp"`
	Sequence  uint64               `json:"sequence"`
}

// Frame is a Message together with its SSE event name.
type Frame struct {
	Event   string
	Message Message
}

type Config struct {
	// QueueSize bounds the frames waiting for one viewer.
	QueueSize int
	// StaleAfter is how long a viewer may go without a successful write
	// before Heartbeat prunes it.
	StaleAfter time.Duration
}

// DefaultConfig is used for zero fields of Config.
var DefaultConfig = Config{QueueSize: 64, StaleAfter: 45 * time.Second}

// Hub is the registry of connected viewers.
type Hub struct {
	cfg    Config
	clock  func() time.Time
	logger *slog.Logger

	mu       sync.Mutex
	sequence uint64
	viewers  map[kernel.UUID]*Viewer
}

// NewHub creates an empty hub. A nil clock means time.Now.
func NewHub(cfg Config, clock func() time.Time, logger *slog.Logger) *Hub {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig.QueueSize
	}
	if cfg.StaleAfter <= 0 {
		cfg.StaleAfter = DefaultConfig.StaleAfter
	}
	if clock == nil {
		clock = time.Now
	}
	return &Hub{
		cfg:     cfg,
		clock:   clock,
		logger:  logger.With("component", "live_hub"),
		viewers: make(map[kernel.UUID]*Viewer),
	}
}

// Viewer is one registered connection.
type Viewer struct {
	id     kernel.UUID
	staff  kernel.StaffID
	frames chan Frame
	done   chan struct{}
	once   sync.Once

	lastSeen     atomic.Int64
	lastSequence atomic.Uint64
}

func (v *Viewer) ID() kernel.UUID { return v.id }
func (v *Viewer) Staff() kernel.StaffID { return v.staff }
func (v *Viewer) Frames() <-chan Frame { return v.frames }
func (v *Viewer) Done() <-chan struct{} { return v.done }
func (v *Viewer) LastSequence() uint64 { return v.lastSequence.Load() }
func (v *Viewer) LastSeen() time.Time { return time.Unix(0, v.lastSeen.Load()) }
func (v *Viewer) markSeen(at time.Time) { v.lastSeen.Store(at.UnixNano()) }
func (v *Viewer) close() { v.once.Do(func() { close(v.done) }) }

// Written records a successful write of the frame with sequence seq.
func (v *Viewer) Written(seq uint64, at time.Time) {
	v.markSeen(at)
	if seq > v.lastSequence.Load() {
		v.lastSequence.Store(seq)
	}
}

// Subscribe registers a viewer for staff and queues its connect frame.
func (h *Hub) Subscribe(staff kernel.StaffID) *Viewer {
	v := &Viewer{
		id:     kernel.NewUUID(),
		staff:  staff,
		frames: make(chan Frame, h.cfg.QueueSize),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	now := h.clock().UTC()
	v.markSeen(now)
	h.viewers[v.id] = v
	h.sequence++
	v.frames <- Frame{
		Event:   EventConnect,
		Message: Message{Type: EventConnect, Timestamp: now, Sequence: h.sequence},
	}

	h.logger.Debug("Viewer connected", "viewer_id", v.id.String(), "staff_id", staff.String(), "viewers", len(h.viewers))
	return v
}

// Unsubscribe removes v and stops its writer. It is safe to call more than once.
func (h *Hub) Unsubscribe(v *Viewer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(v, "closed")
}

func (h *Hub) removeLocked(v *Viewer, reason string) {
	if _, ok := h.viewers[v.id]; !ok {
		return
	}
	delete(h.viewers, v.id)
	v.close()
	h.logger.Debug("Viewer removed", "viewer_id", v.id.String(), "reason", reason, "viewers", len(h.viewers))
}

// Broadcast assigns the next sequence and queues the frame for every viewer.
func (h *Hub) Broadcast(event string, msg Message) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.sequence++
	msg.Sequence = h.sequence
	if msg.Timestamp.IsZero() {
		msg.Timestamp = h.clock().UTC()
	}
	frame := Frame{Event: event, Message: msg}

	for _, v := range h.viewers {
		select {
		case v.frames <- frame:
		default:
			h.removeLocked(v, "queue full")
		}
	}
	return h.sequence
}

// Publish implements ports.EventPublisher.
func (h *Hub) Publish(_ context.Context, e order.Event) {
	snapshot := e.Order
	msg := Message{Type: string(e.Type), Order: &snapshot, Timestamp: e.OccurredAt}
	if e.Staff != nil {
		meta := e.Staff.Metadata()
		msg.Metadata = &meta
	}

	event := EventOrderUpdate
	if e.Type == order.EventUnclaimedOrder {
		event = EventUnclaimedOrder
	}
	h.Broadcast(event, msg)
}

// Heartbeat prunes viewers that have not been written to within StaleAfter,
// then queues a heartbeat for the rest. It returns the number pruned.
func (h *Hub) Heartbeat() int {
	h.mu.Lock()
	now := h.clock()
	cutoff := now.Add(-h.cfg.StaleAfter)
	pruned := 0
	for _, v := range h.viewers {
		if v.LastSeen().Before(cutoff) {
			h.removeLocked(v, "stale")
			pruned++
		}
	}
	h.mu.Unlock()

	h.Broadcast(EventHeartbeat, Message{Type: EventHeartbeat, Timestamp: now.UTC()})
	return pruned
}

// Len returns the number of registered viewers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.viewers)
}

// Sequence returns the last sequence handed out.
func (h *Hub) Sequence() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.sequence
}

// Close removes every viewer.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, v := range h.viewers {
		h.removeLocked(v, "shutdown")
	}
}
