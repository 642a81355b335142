package mvi

import (
	"errors"
)

// SafeAsync routes failures of background work into DispatchFailure instead
// of letting them tear down the scope.
type SafeAsync[S comparable, E, A any] struct {
	*Decorator[S, E, A]

	// scope is the failure-handling scope handed out to background work.
	scope *Scope
	// report receives background failures; DispatchFailure of the decorator by default.
	report FailureHandler
}

var _ Reducer[int, string, string] = (*SafeAsync[int, string, string])(nil)

// NewSafeAsync wraps inner. Background work started through the returned
// reducer runs in scope (inner's scope when nil) with a failure handler that
// calls DispatchFailure on this decorator, or on the reducer set with ReportTo.
func NewSafeAsync[S comparable, E, A any](inner Reducer[S, E, A], scope *Scope) *SafeAsync[S, E, A] {
	if scope == nil {
		scope = inner.Scope()
	}

	d := &SafeAsync[S, E, A]{
		Decorator: NewDecorator(inner),
	}
	d.report = d.DispatchFailure
	d.scope = scope.WithFailureHandler(func(err error) {
		d.report(err)
	})

	return d
}

// ReportTo sends background failures to outer instead, typically the outermost
// decorator of a chain, so every decorator above sees them as inputs.
// It must be called before any background work starts.
func (d *SafeAsync[S, E, A]) ReportTo(outer Reducer[S, E, A]) {
	d.report = outer.DispatchFailure
}

// Scope implements Reducer.
func (d *SafeAsync[S, E, A]) Scope() *Scope {
	return d.scope
}

// Close implements Reducer. It ends the decorator's scope as well as the inner one.
func (d *SafeAsync[S, E, A]) Close() error {
	d.scope.Cancel()

	return errors.Join(d.scope.Wait(), d.inner.Close())
}
