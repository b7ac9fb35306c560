package live_test

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"printdesk/internal/adapters/out/live"
	"printdesk/internal/core/domain/model/kernel"
	"printdesk/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newHub(cfg live.Config, clock *fakeClock) *live.Hub {
	return live.NewHub(cfg, clock.Now, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func drain(v *live.Viewer) []live.Frame {
	var out []live.Frame
	for {
		select {
		case f := <-v.Frames():
			out = append(out, f)
		default:
			return out
		}
	}
}

func sequences(frames []live.Frame) []uint64 {
	out := make([]uint64, 0, len(frames))
	for _, f := range frames {
		out = append(out, f.Message.Sequence)
	}
	return out
}

func testEvent(t *testing.T, eventType order.EventType) order.Event {
	t.Helper()
	o, err := order.NewOrder("order_1", order.Customer{Name: "Ada"}, start)
	require.NoError(t, err)
	return order.NewEvent(eventType, o, "pablo", start)
}

func TestHub_SequenceIsSharedAndOrdered(t *testing.T) {
	hub := newHub(live.Config{QueueSize: 16}, &fakeClock{now: start})
	a := hub.Subscribe("pablo")
	b := hub.Subscribe("evan")

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			hub.Broadcast(live.EventOrderUpdate, live.Message{Type: "status"})
		}()
	}
	wg.Wait()

	framesA := drain(a)
	framesB := drain(b)

	// a sees its own connect (1), b's connect is 2 and goes to b only.
	assert.Equal(t, uint64(1), framesA[0].Message.Sequence)
	assert.Equal(t, live.EventConnect, framesA[0].Event)
	assert.Equal(t, []uint64{3, 4, 5, 6, 7}, sequences(framesA[1:]))
	assert.Equal(t, []uint64{2, 3, 4, 5, 6, 7}, sequences(framesB))
	assert.Equal(t, uint64(7), hub.Sequence())
}

func TestHub_FullQueueDropsOnlyThatViewer(t *testing.T) {
	hub := newHub(live.Config{QueueSize: 2}, &fakeClock{now: start})
	slow := hub.Subscribe("pablo")
	fast := hub.Subscribe("evan")

	hub.Broadcast(live.EventOrderUpdate, live.Message{Type: "claim"})
	drain(fast)
	hub.Broadcast(live.EventOrderUpdate, live.Message{Type: "status"})

	select {
	case <-slow.Done():
	default:
		t.Fatal("slow viewer should have been dropped")
	}
	assert.Equal(t, 1, hub.Len())

	frames := drain(fast)
	require.Len(t, frames, 1)
	assert.Equal(t, "status", frames[0].Message.Type)
}

func TestHub_Publish(t *testing.T) {
	hub := newHub(live.Config{}, &fakeClock{now: start})
	v := hub.Subscribe("pablo")
	drain(v)

	o, err := order.NewOrder("order_1", order.Customer{}, start)
	require.NoError(t, err)
	_, err = o.Claim("pablo", start)
	require.NoError(t, err)
	change, err := o.AssignStaff(kernel.NewStaffSet("evan"), "pablo", start)
	require.NoError(t, err)

	hub.Publish(context.Background(), order.NewEvent(order.EventStaff, o, "pablo", start).WithStaffChange(change))
	hub.Publish(context.Background(), testEvent(t, order.EventUnclaimedOrder))

	frames := drain(v)
	require.Len(t, frames, 2)

	assert.Equal(t, live.EventOrderUpdate, frames[0].Event)
	assert.Equal(t, "staff", frames[0].Message.Type)
	require.NotNil(t, frames[0].Message.Metadata)
	assert.Equal(t, []string{"pablo"}, frames[0].Message.Metadata.PreviousStaff)
	assert.Equal(t, []string{"evan", "pablo"}, frames[0].Message.Metadata.NewStaff)
	assert.Equal(t, "order_1", frames[0].Message.Order.ID)

	assert.Equal(t, live.EventUnclaimedOrder, frames[1].Event)
	assert.Nil(t, frames[1].Message.Metadata)
}

func TestHub_HeartbeatPrunesStaleViewers(t *testing.T) {
	clock := &fakeClock{now: start}
	hub := newHub(live.Config{StaleAfter: 30 * time.Second}, clock)
	stale := hub.Subscribe("pablo")
	fresh := hub.Subscribe("evan")

	clock.Advance(20 * time.Second)
	fresh.Written(2, clock.Now())
	clock.Advance(20 * time.Second)

	pruned := hub.Heartbeat()

	assert.Equal(t, 1, pruned)
	assert.Equal(t, 1, hub.Len())
	<-stale.Done()

	frames := drain(fresh)
	require.NotEmpty(t, frames)
	assert.Equal(t, live.EventHeartbeat, frames[len(frames)-1].Event)
}

func TestHub_UnsubscribeTwice(t *testing.T) {
	hub := newHub(live.Config{}, &fakeClock{now: start})
	v := hub.Subscribe("pablo")

	hub.Unsubscribe(v)
	hub.Unsubscribe(v)

	assert.Equal(t, 0, hub.Len())
	<-v.Done()

	// later broadcasts skip it
	hub.Broadcast(live.EventHeartbeat, live.Message{Type: live.EventHeartbeat})
	assert.Len(t, drain(v), 1) // only the connect frame
}

type sseEvent struct {
	id    string
	event string
	data  string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()
	var e sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			return e
		case strings.HasPrefix(line, "id: "):
			e.id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			e.event = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			e.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestHub_Stream(t *testing.T) {
	hub := newHub(live.Config{}, &fakeClock{now: start})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = hub.Stream(r.Context(), w, "pablo", live.StreamOptions{PingInterval: time.Hour})
	}))
	defer server.Close()

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	connect := readEvent(t, reader)
	assert.Equal(t, live.EventConnect, connect.event)
	assert.Equal(t, "1", connect.id)

	hub.Publish(context.Background(), testEvent(t, order.EventClaim))
	update := readEvent(t, reader)
	assert.Equal(t, live.EventOrderUpdate, update.event)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(update.data), &body))
	assert.Equal(t, "claim", body["type"])
	assert.EqualValues(t, 2, body["sequence"])
	assert.Equal(t, "order_1", body["order"].(map[string]any)["id"])
	assert.NotContains(t, body, "metadata")

	resp.Body.Close()
	assert.Eventually(t, func() bool {
		hub.Heartbeat()
		return hub.Len() == 0
	}, 2*time.Second, 10*time.Millisecond)
}
