package counter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	domain "github.com/oshokin/mvi-reducer/internal/domain/counter"
	"github.com/oshokin/mvi-reducer/internal/logger"
	"github.com/oshokin/mvi-reducer/internal/mvi"
)

// helpText lists the commands understood by the renderer.
const helpText = "commands: click (c), reset (r), state (s), event (e), quit (q)"

// renderer prints state and events of the screen and turns input lines into actions.
type renderer struct {
	// screen is the decorated reducer chain.
	screen mvi.Reducer[domain.State, domain.Event, domain.Action]
	// out receives the rendered screen.
	out io.Writer
}

// newRenderer creates a renderer for screen writing to out.
func newRenderer(screen mvi.Reducer[domain.State, domain.Event, domain.Action], out io.Writer) *renderer {
	return &renderer{
		screen: screen,
		out:    out,
	}
}

// run renders until ctx is done, lines is exhausted, the user quits or the scope ends.
// It returns an error only when the scope ended because of an uncaught failure.
func (r *renderer) run(ctx context.Context, lines <-chan string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scope := r.screen.Scope()
	states := r.screen.State().Subscribe(ctx)
	events := r.screen.Events().Subscribe(ctx)

	r.printf("%s\n", helpText)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-scope.Context().Done():
			if err := scope.Err(); !errors.Is(err, context.Canceled) {
				return fmt.Errorf("reducer scope ended: %w", err)
			}

			return nil
		case state, ok := <-states:
			if !ok {
				return nil
			}

			r.renderState(state)
		case event, ok := <-events:
			if !ok {
				return nil
			}

			r.renderEvent(event)
		case line, ok := <-lines:
			if !ok || !r.handle(ctx, line) {
				return nil
			}
		}
	}
}

// handle executes one command line and reports whether rendering should continue.
func (r *renderer) handle(ctx context.Context, line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
	case "c", "click":
		r.screen.Dispatch(domain.Click{})
	case "r", "reset":
		r.screen.Dispatch(domain.Reset{})
	case "s", "state":
		r.renderState(r.screen.State().Value())
	case "e", "event":
		r.renderEvent(r.screen.Events().Latest())
	case "q", "quit", "exit":
		return false
	default:
		logger.DebugKV(ctx, "Unknown command", "line", line)
		r.printf("%s\n", helpText)
	}

	return true
}

// renderState prints one state line.
func (r *renderer) renderState(state domain.State) {
	r.printf("%s | index: %d | clicks: %d | failures: %d\n", state.Title, state.Index, state.Clicks, state.Failures)
}

// renderEvent prints an event; a nil event prints nothing.
func (r *renderer) renderEvent(event domain.Event) {
	if event == nil {
		return
	}

	r.printf(">> %s\n", event)
}

// printf writes to the output, ignoring write errors of the terminal.
func (r *renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// readLines streams lines from in until EOF or ctx is done.
// A reader blocked in Read is left behind when ctx ends first.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			logger.WarnKV(ctx, "Input closed with error", "error", err)
		}
	}()

	return lines
}
