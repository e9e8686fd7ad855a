package realtime

import "sync"

// Feed topics. Redis channel names derive from these via EventsChannel.
const (
	TopicOrders = "orders"
	TopicMenu   = "menu"
)

// Event is one change-feed frame: a topic plus its freshly marshaled
// snapshot payload.
type Event struct {
	Topic   string
	Payload []byte
}

const subscriberBuffer = 8

// Hub fans change-feed events out to connected listeners. Subscribers that
// fall behind drop frames; every frame is a full snapshot, so the next one
// catches them up.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]map[string]struct{}
}

// NewHub builds an empty hub.
func NewHub() *Hub {
	return &Hub{subs: map[chan Event]map[string]struct{}{}}
}

// Subscribe registers a listener for the given topics, or every topic when
// none are named. The cancel func must be called when the listener goes away.
func (h *Hub) Subscribe(topics ...string) (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)
	var filter map[string]struct{}
	if len(topics) > 0 {
		filter = make(map[string]struct{}, len(topics))
		for _, topic := range topics {
			filter[topic] = struct{}{}
		}
	}

	h.mu.Lock()
	h.subs[ch] = filter
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[ch]; !ok {
			return
		}
		delete(h.subs, ch)
		close(ch)
	}
	return ch, cancel
}

// Broadcast delivers an event to every matching subscriber without blocking.
func (h *Hub) Broadcast(event Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch, filter := range h.subs {
		if filter != nil {
			if _, ok := filter[event.Topic]; !ok {
				continue
			}
		}
		select {
		case ch <- event:
		default:
		}
	}
}

// Subscribers returns the number of connected listeners.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
