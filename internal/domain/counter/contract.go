package counter

import "fmt"

// State is what the counter screen renders.
type State struct {
	// Title is the screen caption.
	Title string
	// Index is the latest value of the background index sequence.
	Index int
	// Clicks counts button presses since the last reset.
	Clicks int
	// Failures counts contained background failures.
	Failures int
}

// InitialState returns the state a new screen starts with.
func InitialState(title string) State {
	return State{
		Title: title,
	}
}

// Action is a user intent on the counter screen.
type Action interface {
	isAction()
}

// Click is a press of the screen button.
type Click struct{}

// Reset clears the click counter and the index.
type Reset struct{}

func (Click) isAction() {}
func (Reset) isAction() {}

// String implements fmt.Stringer.
func (Click) String() string { return "click" }

// String implements fmt.Stringer.
func (Reset) String() string { return "reset" }

// Event is a one-shot directive for the screen. A nil Event means none.
type Event interface {
	isEvent()
	fmt.Stringer
}

// Toast asks the screen to show a short message.
type Toast struct {
	Message string
}

// Dialog asks the screen to show a message that needs attention.
type Dialog struct {
	Message string
}

func (Toast) isEvent()  {}
func (Dialog) isEvent() {}

// String implements fmt.Stringer.
func (t Toast) String() string { return "toast: " + t.Message }

// String implements fmt.Stringer.
func (d Dialog) String() string { return "dialog: " + d.Message }
