package ticker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oshokin/mvi-reducer/internal/mvi"
)

// Options configures the index sequence.
type Options struct {
	// Interval is the delay after each emitted index.
	Interval time.Duration
	// Count is the number of indexes to emit; zero or less means endless.
	Count int
	// FailAt makes the sequence fail instead of emitting this index; zero disables it.
	FailAt int
}

const (
	// DefaultInterval is the delay used when Options.Interval is not positive.
	DefaultInterval = time.Second
	// DefaultCount emits indexes 0 through 10000.
	DefaultCount = 10_001
)

// ErrInjected is returned when the sequence reaches Options.FailAt.
var ErrInjected = errors.New("injected index failure")

// Indexes returns the index sequence described by opts.
func Indexes(opts Options) mvi.Sequence[int] {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	return func(ctx context.Context, emit func(int)) error {
		timer := time.NewTimer(interval)
		defer timer.Stop()

		for i := 0; opts.Count <= 0 || i < opts.Count; i++ {
			if opts.FailAt > 0 && i == opts.FailAt {
				return fmt.Errorf("%w at index %d", ErrInjected, i)
			}

			emit(i)

			timer.Reset(interval)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}

		return nil
	}
}
