package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

const subscriberBuffer = 16

// BroadcastHook fans out widget events (ticks, role and tab switches) to
// in-process subscribers. Slow subscribers drop events instead of blocking
// the ticker.
type BroadcastHook struct {
	mu     sync.RWMutex
	subs   map[int]subscriber
	next   int
	closed bool
}

type subscriber struct {
	ch      chan WidgetEvent
	viewer  string
	reasons map[string]struct{}
}

// wants filters by viewer and reason. Events without a viewer (ticks) reach
// everyone; subscribers without a viewer see every viewer's events.
func (s subscriber) wants(event WidgetEvent) bool {
	if s.viewer != "" && event.Viewer != "" && event.Viewer != s.viewer {
		return false
	}
	if len(s.reasons) == 0 {
		return true
	}
	_, ok := s.reasons[event.Reason]
	return ok
}

// NewBroadcastHook creates a broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{subs: make(map[int]subscriber)}
}

// WidgetUpdated satisfies the RefreshHook interface and broadcasts events.
func (h *BroadcastHook) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, sub := range h.subs {
		if !sub.wants(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
		}
	}
	return nil
}

// Subscribe returns a channel of every viewer's widget events and a cancel
// func. When reasons are given only matching events are delivered.
func (h *BroadcastHook) Subscribe(reasons ...string) (<-chan WidgetEvent, func()) {
	return h.SubscribeViewer("", reasons...)
}

// SubscribeViewer is Subscribe limited to one viewer's events plus the shared
// tick stream.
func (h *BroadcastHook) SubscribeViewer(viewer string, reasons ...string) (<-chan WidgetEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan WidgetEvent, subscriberBuffer)
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	id := h.next
	h.next++
	sub := subscriber{ch: ch, viewer: viewer}
	if len(reasons) > 0 {
		sub.reasons = make(map[string]struct{}, len(reasons))
		for _, reason := range reasons {
			sub.reasons[reason] = struct{}{}
		}
	}
	h.subs[id] = sub
	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub.ch)
		}
	}
	return ch, cancel
}

// Subscribers reports the number of live subscriptions.
func (h *BroadcastHook) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Close ends every subscription. Later subscriptions receive a closed channel.
func (h *BroadcastHook) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for id, sub := range h.subs {
		delete(h.subs, id)
		close(sub.ch)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams widget events as JSON.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.SubscribeViewer(viewerFromQuery(r), reasonsFromQuery(r)...)
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE provides a Server-Sent Events endpoint; each frame is named after the event reason.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	events, cancel := h.SubscribeViewer(viewerFromQuery(r), reasonsFromQuery(r)...)
	defer cancel()

	flusher, _ := w.(http.Flusher)
	if flusher != nil {
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := writeSSE(w, event); err != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}

func writeSSE(w http.ResponseWriter, event WidgetEvent) error {
	raw, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Reason, raw)
	return err
}

func viewerFromQuery(r *http.Request) string {
	return ViewerID(ViewerContext{UserID: strings.TrimSpace(r.URL.Query().Get("viewer"))})
}

func reasonsFromQuery(r *http.Request) []string {
	return r.URL.Query()["reason"]
}
