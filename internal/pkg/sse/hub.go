package sse

import (
	"sync"
)

// Event is one server-sent event destined for a recipient's open streams.
type Event struct {
	RecipientID string
	Event       string
	Data        interface{}
}

// Hub manages SSE subscribers and event broadcasting. Delivery is best
// effort: slow subscribers drop events rather than block publishers.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a recipient stream and returns the event channel and
// a cleanup function.
func (h *Hub) Subscribe(recipientID string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, 10)

	if h.subscribers[recipientID] == nil {
		h.subscribers[recipientID] = make(map[chan Event]struct{})
	}
	h.subscribers[recipientID][ch] = struct{}{}

	cleanup := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.subscribers[recipientID], ch)
		close(ch)
		if len(h.subscribers[recipientID]) == 0 {
			delete(h.subscribers, recipientID)
		}
	}

	return ch, cleanup
}

// Publish sends an event to all open streams of one recipient.
func (h *Hub) Publish(recipientID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[recipientID]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// subscriber buffer full, drop
			}
		}
	}
}
