package counter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/oshokin/mvi-reducer/internal/config"
	domain "github.com/oshokin/mvi-reducer/internal/domain/counter"
	"github.com/oshokin/mvi-reducer/internal/logger"
	"github.com/oshokin/mvi-reducer/internal/mvi"
	"github.com/oshokin/mvi-reducer/internal/usecase/ticker"
)

// Options controls the counter screen process.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// In is where commands are read from; defaults to stdin.
	In io.Reader
	// Out is where the screen is rendered; defaults to stdout.
	Out io.Writer
}

// reducerName tags the trace entries of the counter reducer.
const reducerName = "counter"

// Run builds the counter screen and blocks until ctx is cancelled, the user
// quits, or the reducer scope ends.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "mvi-counter")

	settings, err := config.LoadOrDefault(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	level, _ := logger.ParseLogLevel(settings.LogLevel)
	logger.SetLevel(level)

	screen, hooks := build(ctx, settings)

	// Background work goes through the chain so its failures are contained.
	if err := hooks.Start(screen); err != nil {
		return fmt.Errorf("start index source: %w", err)
	}

	logger.InfoKV(
		ctx,
		"Counter screen started",
		"title", settings.Title,
		"tick_interval", settings.TickInterval,
		"reducer_id", screen.ID().String(),
	)

	in, out := opts.In, opts.Out
	if in == nil {
		in = os.Stdin
	}

	if out == nil {
		out = os.Stdout
	}

	r := newRenderer(screen, out)
	runErr := r.run(ctx, readLines(ctx, in))

	closeErr := screen.Close()
	if closeErr != nil {
		logger.ErrorKV(ctx, "Reducer stopped with an uncaught failure", "error", closeErr)
	}

	logger.Info(ctx, "Counter screen stopped")

	return errors.Join(runErr, closeErr)
}

// build wires the screen reducer chain: Logging(SafeAsync(Engine)).
// The scope context carries the trace logger at its own level.
func build(
	ctx context.Context,
	settings *config.Config,
) (mvi.Reducer[domain.State, domain.Event, domain.Action], *domain.Reducer) {
	traceLevel, _ := logger.ParseLogLevel(settings.TraceLevel)
	traceCtx := logger.WithOptions(logger.WithName(ctx, "reducer"), logger.WithLevel(traceLevel))

	scope := mvi.NewScope(traceCtx)

	hooks := domain.NewReducer(ticker.Indexes(ticker.Options{
		Interval: settings.TickInterval,
		Count:    settings.TickCount,
		FailAt:   settings.FailAt,
	}))

	engine := mvi.NewEngine[domain.State, domain.Event, domain.Action](
		domain.InitialState(settings.Title),
		hooks,
		mvi.WithScope(scope),
	)

	return mvi.Chain[domain.State, domain.Event, domain.Action](engine, reducerName, nil), hooks
}
