// Package counter contains the demo screen reducer: its state, actions and
// events, the pure hooks that map them, and the binding of the background
// index sequence.
package counter
