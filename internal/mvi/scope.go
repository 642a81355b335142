package mvi

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

var (
	// ErrPanic wraps a value recovered from a panicking background job.
	ErrPanic = errors.New("background job panicked")
	// ErrScopeClosed is reported when work is started on a finished scope.
	ErrScopeClosed = errors.New("scope is closed")
)

// FailureHandler receives failures of background jobs.
type FailureHandler func(err error)

// Scope is the execution context of a reducer's background work.
//
// A failing job in a scope without a FailureHandler cancels the whole scope,
// the same way an unhandled failure tears down its owner. Scopes derived with
// WithFailureHandler share the lifetime of their parent but hand failures to
// the handler and keep running.
type Scope struct {
	// ctx is cancelled when the scope ends.
	ctx context.Context
	// cancel ends the scope.
	cancel context.CancelFunc
	// group tracks running jobs and records the first uncaught failure.
	group *errgroup.Group
	// handler receives job failures when set.
	handler FailureHandler
}

// NewScope creates a scope bound to parent.
func NewScope(parent context.Context) *Scope {
	base, cancel := context.WithCancel(parent)
	group, ctx := errgroup.WithContext(base)

	return &Scope{
		ctx:    ctx,
		cancel: cancel,
		group:  group,
	}
}

// WithFailureHandler returns a scope sharing s's lifetime whose job failures go to handler.
func (s *Scope) WithFailureHandler(handler FailureHandler) *Scope {
	derived := *s
	derived.handler = handler

	return &derived
}

// Context returns the context that is cancelled when the scope ends.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Alive reports whether the scope still accepts work.
func (s *Scope) Alive() bool {
	return s.ctx.Err() == nil
}

// Err returns why the scope ended, or nil while it is alive.
// A scope torn down by an uncaught failure reports that failure.
func (s *Scope) Err() error {
	if s.Alive() {
		return nil
	}

	return context.Cause(s.ctx)
}

// Go runs job in the background.
// Panics are recovered and treated as failures wrapping ErrPanic.
// Returning the scope's own cancellation is not a failure.
func (s *Scope) Go(job func(ctx context.Context) error) error {
	if !s.Alive() {
		return ErrScopeClosed
	}

	s.group.Go(func() error {
		err := s.failure(runJob(s.ctx, job))
		if err == nil || s.handler == nil {
			return err
		}

		return s.failure(runJob(s.ctx, func(context.Context) error {
			s.handler(err)

			return nil
		}))
	})

	return nil
}

// Cancel ends the scope and every job observing its context.
func (s *Scope) Cancel() {
	s.cancel()
}

// Wait blocks until all jobs have returned and reports the first uncaught failure.
// The scope cannot be reused afterwards.
func (s *Scope) Wait() error {
	return s.group.Wait()
}

// failure filters out errors caused by the end of the scope, whether it was
// cancelled or its parent hit a deadline.
func (s *Scope) failure(err error) error {
	if err == nil {
		return nil
	}

	if ctxErr := s.ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
		return nil
	}

	return err
}

// runJob invokes job and converts a panic into an error.
func runJob(ctx context.Context, job func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()

	return job(ctx)
}
