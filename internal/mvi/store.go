package mvi

import (
	"context"
	"sync"
)

// StateFlow is a read-only, observable view of reducer state.
type StateFlow[S any] interface {
	// Value returns the current state without blocking.
	Value() S
	// Subscribe returns a channel that first yields the current state and then
	// every later change. A slow reader only sees the newest value.
	// The channel is closed when ctx is done.
	Subscribe(ctx context.Context) <-chan S
}

// StateStore holds the current state of a reducer and notifies subscribers on change.
type StateStore[S comparable] struct {
	// mu guards current and orders notifications with writes.
	mu sync.RWMutex
	// current is the latest written state.
	current S
	// subs delivers changes to subscribers.
	subs fanout[S]
}

var _ StateFlow[int] = (*StateStore[int])(nil)

// NewStateStore creates a store holding initial.
func NewStateStore[S comparable](initial S) *StateStore[S] {
	return &StateStore[S]{
		current: initial,
	}
}

// Value returns the current state.
func (s *StateStore[S]) Value() S {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.current
}

// Write replaces the current state with next unless they are equal.
// It reports whether the state changed and subscribers were notified.
func (s *StateStore[S]) Write(next S) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next == s.current {
		return false
	}

	s.current = next
	s.subs.publish(next)

	return true
}

// Subscribe implements StateFlow.
func (s *StateStore[S]) Subscribe(ctx context.Context) <-chan S {
	return s.subscribeObserved(ctx, nil)
}

func (s *StateStore[S]) subscribeObserved(ctx context.Context, observe func(S)) <-chan S {
	s.mu.RLock()
	defer s.mu.RUnlock()

	current := s.current

	return s.subs.add(ctx, &current, observe)
}

// Subscribers returns the number of attached subscribers.
func (s *StateStore[S]) Subscribers() int {
	return s.subs.len()
}
