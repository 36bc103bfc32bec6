package event

import (
	"log"
	"runtime/debug"
	"sync"
)

// Handler is a function that handles an event.
type Handler func(Event)

// wildcard is the subscription key for handlers that receive every event.
const wildcard = "*"

// entry is one registered handler.
type entry struct {
	id      uint64
	handler Handler
}

// Bus delivers the session's events to whoever is listening: the CLI waits
// on it for the end of a cycle, the TUI folds events into its view. Delivery
// is synchronous; Publish returns once every handler has run.
type Bus struct {
	mu      sync.RWMutex
	nextID  uint64
	byType  map[string][]entry
	idIndex map[uint64]string // subscription id -> event type
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		byType:  make(map[string][]entry),
		idIndex: make(map[uint64]string),
	}
}

// Subscribe registers a handler for one event type and returns an id for
// Unsubscribe.
func (b *Bus) Subscribe(eventType string, handler Handler) uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.byType[eventType] = append(b.byType[eventType], entry{id: b.nextID, handler: handler})
	b.idIndex[b.nextID] = eventType
	return b.nextID
}

// SubscribeAll registers a handler for every event type.
func (b *Bus) SubscribeAll(handler Handler) uint64 {
	return b.Subscribe(wildcard, handler)
}

// Unsubscribe removes a subscription. It reports whether the id was still
// registered, and is safe to call from inside a handler.
func (b *Bus) Unsubscribe(id uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	eventType, ok := b.idIndex[id]
	if !ok {
		return false
	}
	delete(b.idIndex, id)

	entries := b.byType[eventType]
	for i, e := range entries {
		if e.id == id {
			b.byType[eventType] = append(entries[:i], entries[i+1:]...)
			break
		}
	}
	return true
}

// Publish delivers the event to its type's handlers in registration order,
// then to the wildcard handlers. A panicking handler is logged and skipped
// so it cannot starve the others.
func (b *Bus) Publish(ev Event) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.byType[ev.EventType()])+len(b.byType[wildcard]))
	for _, e := range b.byType[ev.EventType()] {
		handlers = append(handlers, e.handler)
	}
	for _, e := range b.byType[wildcard] {
		handlers = append(handlers, e.handler)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		b.safeCall(h, ev)
	}
}

func (b *Bus) safeCall(handler Handler, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: event handler panicked for event %s: %v\n%s",
				ev.EventType(), r, debug.Stack())
		}
	}()
	handler(ev)
}
