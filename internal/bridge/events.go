package bridge

import (
	"sync"

	"quillpad/internal/logger"
)

// Event is a named action published by the window/menu host to the UI
// layer, e.g. {"event": "menu", "action": "open"}.
type Event struct {
	Event  string `json:"event"`
	Action string `json:"action"`
}

// Hub fans menu-action events out to every subscriber. Slow subscribers
// drop events instead of blocking the menu.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	log         logger.Logger
}

func NewHub(log logger.Logger) *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		log:         log,
	}
}

// Subscribe returns a buffered channel receiving future events. The caller
// must Unsubscribe when done; the hub closes the channel then.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, 16)
	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subscribers[ch]; ok {
		delete(h.subscribers, ch)
		close(ch)
	}
}

// PublishMenuAction broadcasts a named menu action (open, save, undo, redo).
func (h *Hub) PublishMenuAction(action string) {
	event := Event{Event: "menu", Action: action}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.log.Debug("Events", "menu action published", map[string]interface{}{
		"action":      action,
		"subscribers": len(h.subscribers),
	})

	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full; drop rather than stall the menu.
		}
	}
}

// Shutdown closes every subscriber channel.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		delete(h.subscribers, ch)
		close(ch)
	}
}
