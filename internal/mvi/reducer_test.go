package mvi

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestEngine_IncrementThreeTimes dispatches three increments and expects one event per dispatch.
func TestEngine_IncrementThreeTimes(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := NewEngine(counterState{}, counterHooks())
	defer func() { require.NoError(t, engine.Close()) }()

	events := engine.Events().Subscribe(ctx)

	for n := 0; n < 3; n++ {
		engine.Dispatch(actionInc)
		require.Equal(t, eventIncremented, receive(t, events))
	}

	requireSilent(t, events)
	require.Equal(t, counterState{Count: 3}, engine.State().Value())
	require.Equal(t, counterState{}, engine.Initial())
}

// TestEngine_UnchangedStateDoesNotNotify verifies the equality gate while the event is still emitted.
func TestEngine_UnchangedStateDoesNotNotify(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := NewEngine(counterState{Count: 5}, counterHooks())
	states := engine.State().Subscribe(ctx)
	events := engine.Events().Subscribe(ctx)

	require.Equal(t, counterState{Count: 5}, receive(t, states))

	notifications := 0

	for n := 0; n < 10; n++ {
		engine.Dispatch(actionNoop)
		require.Empty(t, receive(t, events))

		select {
		case <-states:
			notifications++
		default:
		}
	}

	requireSilent(t, states)
	require.Zero(t, notifications)
}

// TestEngine_DispatchFailure checks the failure hooks and the default identity state.
func TestEngine_DispatchFailure(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hooks := counterHooks()
	withState := NewEngine(counterState{}, hooks)
	events := withState.Events().Subscribe(ctx)

	withState.DispatchFailure(errDomain)
	require.Equal(t, "failure: "+errDomain.Error(), receive(t, events))
	require.Equal(t, counterState{Failures: 1}, withState.State().Value())

	hooks.FailedState = nil
	identity := NewEngine(counterState{Count: 2}, hooks)
	states := identity.State().Subscribe(ctx)
	receive(t, states)

	identity.DispatchFailure(errDomain)
	requireSilent(t, states)
	require.Equal(t, "failure: "+errDomain.Error(), identity.Events().Latest())
}

// TestEngine_DomainEntryPoints verifies direct state and event updates bypass the hooks.
func TestEngine_DomainEntryPoints(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	engine := NewEngine(counterState{}, counterHooks())
	states := engine.State().Subscribe(ctx)
	events := engine.Events().Subscribe(ctx)
	receive(t, states)

	engine.UpdateState(counterState{Count: 40})
	require.Equal(t, counterState{Count: 40}, receive(t, states))

	engine.UpdateState(counterState{Count: 40})
	requireSilent(t, states)

	engine.EmitEvent("domain")
	require.Equal(t, "domain", receive(t, events))
}

// TestEngine_ClosedEngineIgnoresInput ensures no side effects complete after the scope is cancelled.
func TestEngine_ClosedEngineIgnoresInput(t *testing.T) {
	t.Parallel()

	engine := NewEngine(counterState{}, counterHooks())
	require.NoError(t, engine.Close())

	engine.Dispatch(actionInc)
	engine.DispatchFailure(errDomain)
	engine.UpdateState(counterState{Count: 9})
	engine.EmitEvent("ignored")

	require.Equal(t, counterState{}, engine.State().Value())
	require.Empty(t, engine.Events().Latest())
}

// TestEngine_WithScope verifies that a supplied scope is used and bounds the engine lifetime.
func TestEngine_WithScope(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	scope := NewScope(parent)

	engine := NewEngine(counterState{}, counterHooks(), WithScope(scope), WithScope(nil))
	require.Same(t, scope, engine.Scope())

	cancel()
	engine.Dispatch(actionInc)
	require.Equal(t, counterState{}, engine.State().Value())
}

// TestEngine_HookPanicReachesCaller checks that computation errors are not swallowed.
func TestEngine_HookPanicReachesCaller(t *testing.T) {
	t.Parallel()

	engine := NewEngine(0, HookFuncs[int, string, string]{
		State: func(string, int) int {
			panic("bad reducer")
		},
	})

	require.PanicsWithValue(t, "bad reducer", func() {
		engine.Dispatch(actionInc)
	})
	require.True(t, engine.Scope().Alive())
}

// TestEngine_ConcurrentDispatchRace documents that concurrent read-compute-write may lose an update
// but never leaves a torn state behind.
func TestEngine_ConcurrentDispatchRace(t *testing.T) {
	t.Parallel()

	hooks := counterHooks()
	increment := hooks.State
	hooks.State = func(action string, current counterState) counterState {
		time.Sleep(20 * time.Millisecond)

		return increment(action, current)
	}

	for n := 0; n < 5; n++ {
		engine := NewEngine(counterState{}, hooks)

		var wg sync.WaitGroup
		for n := 0; n < 2; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				engine.Dispatch(actionInc)
			}()
		}

		wg.Wait()

		final := engine.State().Value()
		require.Contains(t, []counterState{{Count: 1}, {Count: 2}}, final)
		require.NoError(t, engine.Close())
	}
}
