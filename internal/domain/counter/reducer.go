package counter

import (
	"github.com/oshokin/mvi-reducer/internal/mvi"
)

// ClickMessage is the toast shown for every click.
const ClickMessage = "You pressed the button!"

// Reducer supplies the counter hooks and owns the background index source.
type Reducer struct {
	// indexes is the domain sequence bound by Start.
	indexes mvi.Sequence[int]
}

var (
	_ mvi.Hooks[State, Event, Action] = (*Reducer)(nil)
	_ mvi.FailureStateReducer[State]  = (*Reducer)(nil)
)

// NewReducer creates the counter reducer. A nil indexes sequence disables background updates.
func NewReducer(indexes mvi.Sequence[int]) *Reducer {
	return &Reducer{
		indexes: indexes,
	}
}

// ReduceState implements mvi.Hooks.
func (r *Reducer) ReduceState(action Action, current State) State {
	switch action.(type) {
	case Click:
		current.Clicks++
	case Reset:
		current.Clicks = 0
		current.Index = 0
	}

	return current
}

// ReduceEvent implements mvi.Hooks.
//
//nolint:ireturn // Event is a closed variant set.
func (r *Reducer) ReduceEvent(action Action) Event {
	switch action.(type) {
	case Click:
		return Toast{Message: ClickMessage}
	default:
		return nil
	}
}

// FailureEvent implements mvi.Hooks.
//
//nolint:ireturn // Event is a closed variant set.
func (r *Reducer) FailureEvent(err error) Event {
	return Dialog{Message: err.Error()}
}

// FailureState implements mvi.FailureStateReducer.
func (r *Reducer) FailureState(_ error, current State) State {
	current.Failures++

	return current
}

// Start binds the index sequence to reducer, usually the decorated chain,
// so every index lands in the state and failures reach DispatchFailure.
func (r *Reducer) Start(reducer mvi.Reducer[State, Event, Action]) error {
	if r.indexes == nil {
		return nil
	}

	return mvi.Consume(reducer, r.indexes, func(index int) {
		next := reducer.Store().Value()
		next.Index = index
		reducer.UpdateState(next)
	})
}
