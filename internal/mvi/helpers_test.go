package mvi

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	actionInc  = "inc"
	actionDec  = "dec"
	actionNoop = "noop"

	eventIncremented = "incremented"
	eventDecremented = "decremented"

	waitTimeout = time.Second
	quietPeriod = 50 * time.Millisecond
)

var errDomain = errors.New("domain failure")

// counterState is the state used by the engine tests.
type counterState struct {
	Count    int
	Failures int
}

// counterHooks returns pure hooks for counterState.
func counterHooks() HookFuncs[counterState, string, string] {
	return HookFuncs[counterState, string, string]{
		State: func(action string, current counterState) counterState {
			switch action {
			case actionInc:
				current.Count++
			case actionDec:
				current.Count--
			}

			return current
		},
		Event: func(action string) string {
			switch action {
			case actionInc:
				return eventIncremented
			case actionDec:
				return eventDecremented
			default:
				return ""
			}
		},
		Failure: func(err error) string {
			return "failure: " + err.Error()
		},
		FailedState: func(_ error, current counterState) counterState {
			current.Failures++

			return current
		},
	}
}

// receive waits for the next value on ch.
func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v, ok := <-ch:
		require.True(t, ok, "channel closed")

		return v
	case <-time.After(waitTimeout):
		require.FailNow(t, "timed out waiting for a value")
	}

	var zero T

	return zero
}

// requireSilent asserts that ch yields nothing for a short period.
func requireSilent[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	select {
	case v, ok := <-ch:
		if ok {
			require.FailNowf(t, "unexpected value", "%v", v)
		}
	case <-time.After(quietPeriod):
	}
}

// requireClosed asserts that ch gets closed, discarding buffered values.
func requireClosed[T any](t *testing.T, ch <-chan T) {
	t.Helper()

	deadline := time.After(waitTimeout)

	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			require.FailNow(t, "channel was not closed")
		}
	}
}

// drain collects values from ch until it stays quiet for a short period or gets closed.
func drain[T any](ch <-chan T) []T {
	var values []T

	for {
		select {
		case v, ok := <-ch:
			if !ok {
				return values
			}

			values = append(values, v)
		case <-time.After(quietPeriod):
			return values
		}
	}
}
