package dispatch

import (
	"sync"

	"github.com/joseporiolcarne/backtraderalerts/internal/types"
)

// History is the manager's own append-only log of dispatched events. Nothing
// outside the manager mutates it; readers get copies.
type History struct {
	mu     sync.RWMutex
	events []types.SignalEvent
}

func NewHistory() *History {
	return &History{}
}

// Append records an event. Events are never updated or removed.
func (h *History) Append(event types.SignalEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.events = append(h.events, event)
}

// Events returns a copy of the log in dispatch order.
func (h *History) Events() []types.SignalEvent {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]types.SignalEvent, len(h.events))
	copy(out, h.events)

	return out
}

// Len returns the number of recorded events.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.events)
}
