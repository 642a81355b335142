package mvi

import (
	"context"
	"errors"
)

// Sequence is an asynchronous stream produced by a domain collaborator.
// It calls emit for each element and returns nil on completion or the
// failure that ended it. It must stop when ctx is done.
type Sequence[T any] func(ctx context.Context, emit func(T)) error

// ConsumeOption configures Consume.
type ConsumeOption func(*consumeOptions)

// consumeOptions holds the termination callbacks of a subscription.
type consumeOptions struct {
	onError    func(err error)
	onComplete func()
}

// OnError replaces the default failure callback (DispatchFailure).
func OnError(fn func(err error)) ConsumeOption {
	return func(o *consumeOptions) {
		if fn != nil {
			o.onError = fn
		}
	}
}

// OnComplete sets a callback for normal completion.
func OnComplete(fn func()) ConsumeOption {
	return func(o *consumeOptions) {
		if fn != nil {
			o.onComplete = fn
		}
	}
}

// Consume subscribes once to seq inside r's scope and calls onNext for every
// element. A sequence failure goes to DispatchFailure unless OnError says
// otherwise; cancellation of the scope is not a failure. There is no retry.
// Panics raised by seq or onNext escape to the scope, where SafeAsync turns
// them into DispatchFailure as well.
func Consume[S comparable, E, A, T any](
	r Reducer[S, E, A],
	seq Sequence[T],
	onNext func(T),
	opts ...ConsumeOption,
) error {
	options := consumeOptions{
		onError:    r.DispatchFailure,
		onComplete: func() {},
	}

	for _, opt := range opts {
		opt(&options)
	}

	return r.Scope().Go(func(ctx context.Context) error {
		err := seq(ctx, func(v T) {
			if ctx.Err() == nil {
				onNext(v)
			}
		})

		switch {
		case err == nil:
			options.onComplete()
		case ctx.Err() != nil && errors.Is(err, ctx.Err()):
			// Stopped together with the scope.
		default:
			options.onError(err)
		}

		return nil
	})
}
