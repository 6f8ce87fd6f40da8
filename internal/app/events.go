package app

import (
	"sync"
	"time"

	"github.com/ayusman/handglow/internal/gesture"
	"github.com/ayusman/handglow/internal/spatial"
)

// Event types published to subscribers.
const (
	EventFrame   = "frame"
	EventGesture = "gesture"
	EventCleared = "cleared"
)

// Event is one pipeline notification.
type Event struct {
	Type         string                `json:"type"`
	Time         time.Time             `json:"time"`
	Observations []gesture.Observation `json:"observations,omitempty"`
	// Hands holds camera-space landmark positions in metres, one slice
	// per observation.
	Hands     [][]spatial.Point `json:"hands,omitempty"`
	Active    gesture.Label     `json:"active,omitempty"`
	Effect    string            `json:"effect,omitempty"`
	Intensity float64           `json:"intensity"`
}

type hub struct {
	mu     sync.Mutex
	subs   map[chan Event]struct{}
	closed bool
}

func newHub() *hub {
	return &hub{subs: make(map[chan Event]struct{})}
}

func (h *hub) subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(ch)
		return ch, func() {}
	}
	h.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			if _, ok := h.subs[ch]; ok {
				delete(h.subs, ch)
				close(ch)
			}
		})
	}
}

func (h *hub) publish(e Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

func (h *hub) len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *hub) close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		close(ch)
	}
	h.subs = make(map[chan Event]struct{})
	h.closed = true
}
