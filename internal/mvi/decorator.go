package mvi

import (
	"github.com/google/uuid"
)

// Decorator delegates every Reducer operation to the reducer it wraps.
// Concrete decorators embed it and override only what they intercept, so
// the wrapped store, channel and scope stay shared across the chain.
type Decorator[S comparable, E, A any] struct {
	inner Reducer[S, E, A]
}

var _ Reducer[int, string, string] = (*Decorator[int, string, string])(nil)

// NewDecorator wraps inner.
func NewDecorator[S comparable, E, A any](inner Reducer[S, E, A]) *Decorator[S, E, A] {
	return &Decorator[S, E, A]{
		inner: inner,
	}
}

// Inner returns the wrapped reducer.
func (d *Decorator[S, E, A]) Inner() Reducer[S, E, A] {
	return d.inner
}

// ID implements Reducer.
func (d *Decorator[S, E, A]) ID() uuid.UUID {
	return d.inner.ID()
}

// Dispatch implements Reducer.
func (d *Decorator[S, E, A]) Dispatch(action A) {
	d.inner.Dispatch(action)
}

// DispatchFailure implements Reducer.
func (d *Decorator[S, E, A]) DispatchFailure(err error) {
	d.inner.DispatchFailure(err)
}

// UpdateState implements Reducer.
func (d *Decorator[S, E, A]) UpdateState(next S) {
	d.inner.UpdateState(next)
}

// EmitEvent implements Reducer.
func (d *Decorator[S, E, A]) EmitEvent(event E) {
	d.inner.EmitEvent(event)
}

// State implements Reducer.
func (d *Decorator[S, E, A]) State() StateFlow[S] {
	return d.inner.State()
}

// Events implements Reducer.
func (d *Decorator[S, E, A]) Events() EventFlow[E] {
	return d.inner.Events()
}

// Store implements Reducer.
func (d *Decorator[S, E, A]) Store() *StateStore[S] {
	return d.inner.Store()
}

// Channel implements Reducer.
func (d *Decorator[S, E, A]) Channel() *EventChannel[E] {
	return d.inner.Channel()
}

// Scope implements Reducer.
func (d *Decorator[S, E, A]) Scope() *Scope {
	return d.inner.Scope()
}

// Close implements Reducer.
func (d *Decorator[S, E, A]) Close() error {
	return d.inner.Close()
}

// Chain wraps base the way an owning screen does: logging outside, failure
// containment inside, so the log shows already-contained behavior.
// Contained background failures re-enter through the logging layer.
// A nil scope reuses the scope of base.
func Chain[S comparable, E, A any](base Reducer[S, E, A], name string, scope *Scope) Reducer[S, E, A] {
	safe := NewSafeAsync[S, E, A](base, scope)
	logged := NewLogging[S, E, A](safe, name)
	safe.ReportTo(logged)

	return logged
}
