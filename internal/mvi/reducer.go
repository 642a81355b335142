package mvi

import (
	"context"

	"github.com/google/uuid"
)

// Reducer is the contract shared by the base engine and every decorator.
type Reducer[S comparable, E, A any] interface {
	// ID identifies the underlying engine instance.
	ID() uuid.UUID

	// Dispatch applies a UI action.
	Dispatch(action A)
	// DispatchFailure applies a failure raised by domain work.
	DispatchFailure(err error)

	// UpdateState writes a state produced by the domain, bypassing the hooks.
	UpdateState(next S)
	// EmitEvent emits an event produced by the domain, bypassing the hooks.
	EmitEvent(event E)

	// State returns the observable state.
	State() StateFlow[S]
	// Events returns the observable events.
	Events() EventFlow[E]

	// Store returns the underlying store shared by the whole chain.
	Store() *StateStore[S]
	// Channel returns the underlying event channel shared by the whole chain.
	Channel() *EventChannel[E]
	// Scope returns the execution context for background work.
	Scope() *Scope

	// Close cancels the scope and waits for background work to finish.
	Close() error
}

// Hooks are the pure mapping functions a concrete reducer supplies.
// They run synchronously inside Dispatch and DispatchFailure.
type Hooks[S, E, A any] interface {
	// ReduceState computes the next state for action.
	ReduceState(action A, current S) S
	// ReduceEvent computes the event for action, or the zero value for none.
	ReduceEvent(action A) E
	// FailureEvent computes the user-visible event for a failure.
	FailureEvent(err error) E
}

// FailureStateReducer is implemented by hooks that change state on failure.
// Hooks without it leave the state unchanged.
type FailureStateReducer[S any] interface {
	FailureState(err error, current S) S
}

// HookFuncs adapts plain functions to Hooks. Nil functions keep the state
// unchanged and produce no event.
type HookFuncs[S, E, A any] struct {
	State       func(action A, current S) S
	Event       func(action A) E
	Failure     func(err error) E
	FailedState func(err error, current S) S
}

var (
	_ Hooks[int, string, string]   = HookFuncs[int, string, string]{}
	_ FailureStateReducer[int]     = HookFuncs[int, string, string]{}
	_ Reducer[int, string, string] = (*Engine[int, string, string])(nil)
)

// ReduceState implements Hooks.
func (h HookFuncs[S, E, A]) ReduceState(action A, current S) S {
	if h.State == nil {
		return current
	}

	return h.State(action, current)
}

// ReduceEvent implements Hooks.
func (h HookFuncs[S, E, A]) ReduceEvent(action A) E {
	if h.Event == nil {
		var none E

		return none
	}

	return h.Event(action)
}

// FailureEvent implements Hooks.
func (h HookFuncs[S, E, A]) FailureEvent(err error) E {
	if h.Failure == nil {
		var none E

		return none
	}

	return h.Failure(err)
}

// FailureState implements FailureStateReducer.
func (h HookFuncs[S, E, A]) FailureState(err error, current S) S {
	if h.FailedState == nil {
		return current
	}

	return h.FailedState(err, current)
}

// Option configures an Engine.
type Option func(*engineOptions)

// engineOptions collects Engine settings.
type engineOptions struct {
	// scope runs background work; a fresh one is created when nil.
	scope *Scope
}

// WithScope makes the engine use scope instead of creating its own.
func WithScope(scope *Scope) Option {
	return func(o *engineOptions) {
		if scope != nil {
			o.scope = scope
		}
	}
}

// Engine is the base Reducer. It owns exactly one StateStore and one
// EventChannel and delegates the computation to Hooks.
type Engine[S comparable, E, A any] struct {
	// id identifies the instance in logs.
	id uuid.UUID
	// initial is the state the engine started with.
	initial S
	// hooks compute state and events.
	hooks Hooks[S, E, A]
	// store holds the current state.
	store *StateStore[S]
	// events carries one-shot events.
	events *EventChannel[E]
	// scope runs background work and gates side effects after cancellation.
	scope *Scope
}

// NewEngine creates an engine starting at initial.
// Without WithScope the engine gets a fresh scope independent of the caller.
func NewEngine[S comparable, E, A any](initial S, hooks Hooks[S, E, A], opts ...Option) *Engine[S, E, A] {
	var options engineOptions
	for _, opt := range opts {
		opt(&options)
	}

	if options.scope == nil {
		options.scope = NewScope(context.Background())
	}

	return &Engine[S, E, A]{
		id:      uuid.New(),
		initial: initial,
		hooks:   hooks,
		store:   NewStateStore(initial),
		events:  NewEventChannel[E](),
		scope:   options.scope,
	}
}

// ID implements Reducer.
func (e *Engine[S, E, A]) ID() uuid.UUID {
	return e.id
}

// Initial returns the state the engine was created with.
func (e *Engine[S, E, A]) Initial() S {
	return e.initial
}

// Dispatch implements Reducer. Both hooks see the state as it was before the call.
func (e *Engine[S, E, A]) Dispatch(action A) {
	if !e.scope.Alive() {
		return
	}

	current := e.store.Value()

	e.UpdateState(e.hooks.ReduceState(action, current))
	e.EmitEvent(e.hooks.ReduceEvent(action))
}

// DispatchFailure implements Reducer.
func (e *Engine[S, E, A]) DispatchFailure(err error) {
	if !e.scope.Alive() {
		return
	}

	current := e.store.Value()

	next := current
	if reducer, ok := e.hooks.(FailureStateReducer[S]); ok {
		next = reducer.FailureState(err, current)
	}

	e.UpdateState(next)
	e.EmitEvent(e.hooks.FailureEvent(err))
}

// UpdateState implements Reducer.
func (e *Engine[S, E, A]) UpdateState(next S) {
	if !e.scope.Alive() {
		return
	}

	e.store.Write(next)
}

// EmitEvent implements Reducer.
func (e *Engine[S, E, A]) EmitEvent(event E) {
	if !e.scope.Alive() {
		return
	}

	e.events.Emit(event)
}

// State implements Reducer.
func (e *Engine[S, E, A]) State() StateFlow[S] {
	return e.store
}

// Events implements Reducer.
func (e *Engine[S, E, A]) Events() EventFlow[E] {
	return e.events
}

// Store implements Reducer.
func (e *Engine[S, E, A]) Store() *StateStore[S] {
	return e.store
}

// Channel implements Reducer.
func (e *Engine[S, E, A]) Channel() *EventChannel[E] {
	return e.events
}

// Scope implements Reducer.
func (e *Engine[S, E, A]) Scope() *Scope {
	return e.scope
}

// Close implements Reducer.
func (e *Engine[S, E, A]) Close() error {
	e.scope.Cancel()

	return e.scope.Wait()
}
