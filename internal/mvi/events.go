package mvi

import (
	"context"
	"sync"
)

// EventFlow is a read-only, observable view of one-shot reducer events.
type EventFlow[E any] interface {
	// Latest returns the most recently emitted event, or the zero value
	// if nothing was emitted yet. It never blocks.
	Latest() E
	// Subscribe returns a channel of events emitted after the call.
	// At most one undelivered event is buffered; a newer event replaces it.
	// The channel is closed when ctx is done.
	Subscribe(ctx context.Context) <-chan E
}

// EventChannel carries transient events from a reducer to its subscribers.
//
// The zero value of E stands for "no event" and is delivered like any other
// value, overwriting a pending event.
type EventChannel[E any] struct {
	// mu guards latest and orders it with deliveries.
	mu sync.RWMutex
	// latest caches the last emitted event.
	latest E
	// subs delivers events to subscribers.
	subs fanout[E]
}

var _ EventFlow[string] = (*EventChannel[string])(nil)

// NewEventChannel creates an empty event channel.
func NewEventChannel[E any]() *EventChannel[E] {
	return new(EventChannel[E])
}

// Emit delivers event to every current subscriber. It never blocks.
func (c *EventChannel[E]) Emit(event E) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.latest = event
	c.subs.publish(event)
}

// Latest implements EventFlow.
func (c *EventChannel[E]) Latest() E {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.latest
}

// Subscribe implements EventFlow.
func (c *EventChannel[E]) Subscribe(ctx context.Context) <-chan E {
	return c.subscribeObserved(ctx, nil)
}

func (c *EventChannel[E]) subscribeObserved(ctx context.Context, observe func(E)) <-chan E {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.subs.add(ctx, nil, observe)
}

// Subscribers returns the number of attached subscribers.
func (c *EventChannel[E]) Subscribers() int {
	return c.subs.len()
}
