package mvi

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestScope_UncaughtFailureEndsScope verifies that a failing job without a handler cancels the scope.
func TestScope_UncaughtFailureEndsScope(t *testing.T) {
	t.Parallel()

	scope := NewScope(context.Background())
	blocked := make(chan error, 1)

	require.NoError(t, scope.Go(func(ctx context.Context) error {
		<-ctx.Done()
		blocked <- ctx.Err()

		return ctx.Err()
	}))
	require.NoError(t, scope.Go(func(context.Context) error {
		return errDomain
	}))

	require.ErrorIs(t, receive(t, blocked), context.Canceled)
	require.False(t, scope.Alive())
	require.ErrorIs(t, scope.Err(), errDomain)
	require.ErrorIs(t, scope.Wait(), errDomain)
	require.ErrorIs(t, scope.Go(func(context.Context) error { return nil }), ErrScopeClosed)
}

// TestScope_PanicBecomesFailure checks that a panic is recovered and reported as ErrPanic.
func TestScope_PanicBecomesFailure(t *testing.T) {
	t.Parallel()

	scope := NewScope(context.Background())
	require.NoError(t, scope.Go(func(context.Context) error {
		panic("boom")
	}))

	err := scope.Wait()
	require.ErrorIs(t, err, ErrPanic)
	require.Contains(t, err.Error(), "boom")
}

// TestScope_HandlerKeepsScopeAlive ensures handled failures do not cancel the scope.
func TestScope_HandlerKeepsScopeAlive(t *testing.T) {
	t.Parallel()

	root := NewScope(context.Background())
	failures := make(chan error, 2)
	safe := root.WithFailureHandler(func(err error) {
		failures <- err
	})

	require.NoError(t, safe.Go(func(context.Context) error {
		return errDomain
	}))
	require.NoError(t, safe.Go(func(context.Context) error {
		panic("boom")
	}))

	got := []error{receive(t, failures), receive(t, failures)}
	require.True(t, errors.Is(got[0], errDomain) || errors.Is(got[1], errDomain))
	require.True(t, errors.Is(got[0], ErrPanic) || errors.Is(got[1], ErrPanic))

	require.True(t, root.Alive())
	require.True(t, safe.Alive())
	require.Same(t, root.Context(), safe.Context())

	root.Cancel()
	require.NoError(t, root.Wait())
	require.False(t, safe.Alive())
}

// TestScope_PanickingHandlerEndsScope verifies that a handler failure is not swallowed.
func TestScope_PanickingHandlerEndsScope(t *testing.T) {
	t.Parallel()

	scope := NewScope(context.Background()).WithFailureHandler(func(error) {
		panic("handler")
	})

	require.NoError(t, scope.Go(func(context.Context) error {
		return errDomain
	}))
	require.ErrorIs(t, scope.Wait(), ErrPanic)
	require.False(t, scope.Alive())
}

// TestScope_CancelIsNotFailure checks that jobs stopped by Cancel do not report errors.
func TestScope_CancelIsNotFailure(t *testing.T) {
	t.Parallel()

	scope := NewScope(context.Background())
	started := make(chan struct{})

	require.NoError(t, scope.Go(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()

		return ctx.Err()
	}))

	<-started
	scope.Cancel()

	require.NoError(t, scope.Wait())
	require.ErrorIs(t, scope.Err(), context.Canceled)
}

// TestScope_ParentCancellation ensures the scope ends with its parent context.
func TestScope_ParentCancellation(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithCancel(context.Background())
	scope := NewScope(parent)
	require.True(t, scope.Alive())
	require.NoError(t, scope.Err())

	cancel()
	require.False(t, scope.Alive())
}

// TestScope_ParentDeadlineIsNotFailure checks that jobs returning the deadline of an expired
// parent context do not count as uncaught failures.
func TestScope_ParentDeadlineIsNotFailure(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	scope := NewScope(parent)

	require.NoError(t, scope.Go(func(ctx context.Context) error {
		<-ctx.Done()

		return ctx.Err()
	}))

	require.NoError(t, scope.Wait())
	require.False(t, scope.Alive())
	require.ErrorIs(t, scope.Err(), context.DeadlineExceeded)
}
