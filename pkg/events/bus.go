// Package events provides an in-process publish/subscribe channel used
// for cross-panel communication. Panels never share mutable state;
// they exchange immutable events instead.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Well-known event types.
const (
	TypeSkillSelected  = "skill.selected"
	TypeAgentSelected  = "agent.selected"
	TypeFileTreeChange = "filetree.changed"
)

// Event is a single published notification.
type Event struct {
	ID        string
	Type      string
	Source    string
	Timestamp time.Time
	Payload   any
}

// Handler receives published events.
type Handler func(Event)

type subscription struct {
	id      string
	handler Handler
}

// Bus is a synchronous publish/subscribe event channel. Every
// subscriber registered at emit time receives the event exactly once,
// in registration order. Registration order has no bearing on
// correctness for subscribers.
type Bus struct {
	mu   sync.Mutex
	subs map[string][]subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subs: make(map[string][]subscription),
	}
}

// On registers a handler for the given event type and returns an
// unsubscribe function. Calling the returned function more than once is
// harmless.
func (b *Bus) On(eventType string, h Handler) func() {
	id := uuid.NewString()

	b.mu.Lock()
	b.subs[eventType] = append(b.subs[eventType], subscription{id: id, handler: h})
	b.mu.Unlock()

	return func() {
		b.off(eventType, id)
	}
}

func (b *Bus) off(eventType, id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[eventType]
	for i, s := range subs {
		if s.id == id {
			b.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Emit publishes an event to all current subscribers of its type and
// returns the fully populated event. Delivery is synchronous and
// fire-and-forget; there is no return value from handlers.
func (b *Bus) Emit(eventType, source string, payload any) Event {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    source,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	b.mu.Lock()
	subs := make([]subscription, len(b.subs[eventType]))
	copy(subs, b.subs[eventType])
	b.mu.Unlock()

	for _, s := range subs {
		s.handler(event)
	}

	return event
}

// SubscriberCount returns the number of handlers registered for a type.
func (b *Bus) SubscriberCount(eventType string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[eventType])
}
