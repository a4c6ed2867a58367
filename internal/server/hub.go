package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vibetune/internal/tasks"
)

var (
	_ tasks.Sink = (*Hub)(nil)
	_ Handler    = (*Hub)(nil)
)

// Hub fans visualizer events out to event-stream subscribers.
//
// It is the visualizer's sink: delivery never blocks the runner. A subscriber whose buffer is full is dropped
// rather than skipped, so every connected client sees every event of a run, in order.
type Hub struct {
	logger *log.Logger
	buffer int

	mu          sync.Mutex
	subscribers map[chan tasks.Event]struct{}
	closed      bool
}

// NewHub creates a hub giving each subscriber a buffer of the given size.
func NewHub(buffer int, logger *log.Logger) *Hub {
	if buffer <= 0 {
		buffer = 256
	}
	return &Hub{logger: logger, buffer: buffer, subscribers: map[chan tasks.Event]struct{}{}}
}

// Subscribe registers a subscriber. The returned channel is closed by unsubscribe, by [Hub.Close], or when the
// subscriber falls behind.
func (h *Hub) Subscribe() (<-chan tasks.Event, func()) {
	ch := make(chan tasks.Event, h.buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subscribers[ch] = struct{}{}
	return ch, func() { h.drop(ch) }
}

// Subscribers is the number of connected subscribers.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

func (h *Hub) OnStep(s tasks.Step)         { h.publish(s) }
func (h *Hub) OnProgress(p tasks.Progress) { h.publish(p) }
func (h *Hub) OnDone(r tasks.Result)       { h.publish(r) }

func (h *Hub) publish(e tasks.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- e:
		default:
			h.logger.Warn("subscriber fell behind, disconnecting")
			delete(h.subscribers, ch)
			close(ch)
		}
	}
}

func (h *Hub) drop(ch chan tasks.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Close disconnects every subscriber and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// Routes returns the event stream route.
func (h *Hub) Routes() []string { return []string{"/events"} }

// ServeHTTP streams events as server-sent events until the client goes away or the hub closes.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rc := http.NewResponseController(w)
	events, unsubscribe := h.Subscribe()
	defer unsubscribe()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if err := rc.Flush(); err != nil {
		h.logger.Error("streaming unsupported", "error", err)
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := writeEvent(w, e); err != nil {
				h.logger.Warn("event write failed", "error", err)
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// resultPayload carries the fault message, which the result's own JSON form omits.
type resultPayload struct {
	tasks.Result
	Error string `json:"error,omitempty"`
}

func writeEvent(w http.ResponseWriter, e tasks.Event) error {
	var (
		name    string
		payload any = e
	)
	switch e := e.(type) {
	case tasks.Step:
		name = "step"
	case tasks.Progress:
		name = "progress"
	case tasks.Result:
		name = "result"
		payload = resultPayload{Result: e, Error: e.Message()}
	default:
		return fmt.Errorf("unknown event %T", e)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", name, b)
	return err
}
