package events

import (
	"github.com/lixenwraith/platanus-dice/clock"
)

// Handler processes specific event types
// Components implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously from Publish
	HandleEvent(event GameEvent)

	// EventTypes returns the event types this handler processes
	// The bus uses this for registration
	EventTypes() []EventType
}

// HandlerFunc adapts a function to Handler for the listed types
type HandlerFunc struct {
	Types []EventType
	Fn    func(GameEvent)
}

func (h HandlerFunc) HandleEvent(event GameEvent) { h.Fn(event) }
func (h HandlerFunc) EventTypes() []EventType     { return h.Types }

// Bus dispatches events to registered handlers
//
// Architecture:
//   - Single-threaded, synchronous dispatch on the publisher's goroutine
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//   - Events published from inside a handler are queued and dispatched after the current one
type Bus struct {
	handlers   map[EventType][]Handler
	clock      clock.TimeProvider
	pending    []GameEvent
	publishing bool
}

// NewBus creates a bus stamping events with the given time source
func NewBus(tp clock.TimeProvider) *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
		clock:    tp,
	}
}

// Register adds a handler for its declared event types
func (b *Bus) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		b.handlers[t] = append(b.handlers[t], handler)
	}
}

// Publish stamps and dispatches an event
func (b *Bus) Publish(t EventType, payload any) {
	b.pending = append(b.pending, GameEvent{Type: t, Payload: payload, Timestamp: b.clock.Now()})
	if b.publishing {
		return
	}

	b.publishing = true
	defer func() { b.publishing = false }()

	for len(b.pending) > 0 {
		ev := b.pending[0]
		b.pending = b.pending[1:]
		for _, h := range b.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HandlerCount returns the number of handlers registered for the given type
func (b *Bus) HandlerCount(t EventType) int {
	return len(b.handlers[t])
}
