package mvi

import (
	"context"

	"github.com/oshokin/mvi-reducer/internal/logger"
)

// Logging logs every input of the wrapped reducer and every state and event
// handed to its subscribers. Subscribers read the same single-slot mailboxes
// as without logging, so values, their order and conflation stay unchanged.
//
// Entries go to the logger carried by the scope context of the wrapped
// reducer, tagged with the reducer name and instance id.
type Logging[S comparable, E, A any] struct {
	*Decorator[S, E, A]

	// ctx carries the tagged logger.
	ctx context.Context
}

var _ Reducer[int, string, string] = (*Logging[int, string, string])(nil)

// NewLogging wraps inner and logs its initial state.
func NewLogging[S comparable, E, A any](inner Reducer[S, E, A], name string) *Logging[S, E, A] {
	ctx := logger.WithKV(inner.Scope().Context(), "reducer", name, "reducer_id", inner.ID().String())

	d := &Logging[S, E, A]{
		Decorator: NewDecorator(inner),
		ctx:       ctx,
	}

	logger.DebugKV(ctx, "Initial state", "state", inner.State().Value())

	return d
}

// Dispatch implements Reducer.
func (d *Logging[S, E, A]) Dispatch(action A) {
	logger.DebugKV(d.ctx, "UI -> dispatch action", "action", action)
	d.inner.Dispatch(action)
}

// DispatchFailure implements Reducer.
func (d *Logging[S, E, A]) DispatchFailure(err error) {
	logger.WarnKV(d.ctx, "Dispatch failure", "error", err)
	d.inner.DispatchFailure(err)
}

// UpdateState implements Reducer.
func (d *Logging[S, E, A]) UpdateState(next S) {
	logger.DebugKV(d.ctx, "Domain -> update state", "state", next)
	d.inner.UpdateState(next)
}

// EmitEvent implements Reducer.
func (d *Logging[S, E, A]) EmitEvent(event E) {
	logger.DebugKV(d.ctx, "Domain -> emit event", "event", event)
	d.inner.EmitEvent(event)
}

// State implements Reducer.
func (d *Logging[S, E, A]) State() StateFlow[S] {
	return &loggedState[S]{
		StateFlow: d.inner.State(),
		ctx:       d.ctx,
	}
}

// Events implements Reducer.
func (d *Logging[S, E, A]) Events() EventFlow[E] {
	return &loggedEvents[E]{
		EventFlow: d.inner.Events(),
		ctx:       d.ctx,
	}
}

// loggedState logs every state handed to a subscriber.
type loggedState[S any] struct {
	StateFlow[S]

	ctx context.Context
}

// Subscribe implements StateFlow.
func (f *loggedState[S]) Subscribe(ctx context.Context) <-chan S {
	return f.subscribeObserved(ctx, nil)
}

func (f *loggedState[S]) subscribeObserved(ctx context.Context, observe func(S)) <-chan S {
	return subscribeObserved[S](ctx, f.StateFlow, logEach(ctx, observe, func(state S) {
		logger.DebugKV(f.ctx, "State", "state", state)
	}))
}

// loggedEvents logs every event handed to a subscriber.
type loggedEvents[E any] struct {
	EventFlow[E]

	ctx context.Context
}

// Subscribe implements EventFlow.
func (f *loggedEvents[E]) Subscribe(ctx context.Context) <-chan E {
	return f.subscribeObserved(ctx, nil)
}

func (f *loggedEvents[E]) subscribeObserved(ctx context.Context, observe func(E)) <-chan E {
	return subscribeObserved[E](ctx, f.EventFlow, logEach(ctx, observe, func(event E) {
		logger.DebugKV(f.ctx, "Event", "event", event)
	}))
}

// logEach runs log and then next for every value while the subscription ctx is alive.
func logEach[T any](ctx context.Context, next, log func(T)) func(T) {
	return func(v T) {
		if ctx.Err() != nil {
			return
		}

		log(v)

		if next != nil {
			next(v)
		}
	}
}
