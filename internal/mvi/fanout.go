package mvi

import (
	"context"
	"sync"
)

// mailbox is a single-slot buffer that always holds the newest value.
type mailbox[T any] chan T

// offer stores v, discarding an unread older value.
// The caller must be the only sender: fanout holds its lock, forward owns its mailbox.
func (m mailbox[T]) offer(v T) {
	select {
	case m <- v:
		return
	default:
	}

	select {
	case <-m:
	default:
	}

	select {
	case m <- v:
	default:
	}
}

// subscriber is an attached mailbox with an optional observer.
type subscriber[T any] struct {
	box mailbox[T]
	// observe sees every value right before it is offered to box.
	observe func(T)
}

// deliver reports v to the observer and offers it to the mailbox.
func (s subscriber[T]) deliver(v T) {
	if s.observe != nil {
		s.observe(v)
	}

	s.box.offer(v)
}

// fanout delivers published values to every live subscriber mailbox.
type fanout[T any] struct {
	// mu guards subs and serializes offers.
	mu sync.Mutex
	// subs holds every attached subscriber keyed by id.
	subs map[uint64]subscriber[T]
	// next is the id handed to the next subscriber.
	next uint64
}

// add attaches a new subscriber, optionally seeding its mailbox.
// observe may be nil; it runs under the fanout lock and must not call back into the flow.
// The mailbox is detached and closed once ctx is done.
func (f *fanout[T]) add(ctx context.Context, seed *T, observe func(T)) <-chan T {
	sub := subscriber[T]{
		box:     make(mailbox[T], 1),
		observe: observe,
	}

	f.mu.Lock()

	if f.subs == nil {
		f.subs = make(map[uint64]subscriber[T])
	}

	id := f.next
	f.next++
	f.subs[id] = sub

	if seed != nil {
		sub.deliver(*seed)
	}

	f.mu.Unlock()

	context.AfterFunc(ctx, func() {
		f.remove(id)
	})

	return sub.box
}

// publish offers v to all subscribers.
func (f *fanout[T]) publish(v T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, sub := range f.subs {
		sub.deliver(v)
	}
}

// remove detaches and closes the subscriber mailbox with the given id.
func (f *fanout[T]) remove(id uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub, ok := f.subs[id]
	if !ok {
		return
	}

	delete(f.subs, id)
	close(sub.box)
}

// len returns the number of attached subscribers.
func (f *fanout[T]) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.subs)
}

// observable is implemented by flows that can report each value at the moment
// it reaches a subscriber mailbox.
type observable[T any] interface {
	subscribeObserved(ctx context.Context, observe func(T)) <-chan T
}

// subscribable is the part of StateFlow and EventFlow that observers need.
type subscribable[T any] interface {
	Subscribe(ctx context.Context) <-chan T
}

// subscribeObserved subscribes to src and calls observe with every value the
// subscriber is handed. Observable flows report values synchronously and keep
// their own mailbox semantics. Other flows are forwarded through a single-slot
// mailbox so no extra value is ever queued.
func subscribeObserved[T any](ctx context.Context, src subscribable[T], observe func(T)) <-chan T {
	if o, ok := src.(observable[T]); ok {
		return o.subscribeObserved(ctx, observe)
	}

	return forward(ctx, src.Subscribe(ctx), observe)
}

// forward copies src into a single-slot mailbox, calling observe on each value.
// The returned channel is closed when src closes or ctx is done.
func forward[T any](ctx context.Context, src <-chan T, observe func(T)) <-chan T {
	out := make(mailbox[T], 1)

	go func() {
		defer close(out)

		for v := range src {
			if ctx.Err() != nil {
				return
			}

			if observe != nil {
				observe(v)
			}

			out.offer(v)
		}
	}()

	return out
}
