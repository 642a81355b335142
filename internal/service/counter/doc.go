// Package counter runs the counter screen: it owns the reducer scope, builds
// the decorated reducer chain explicitly, binds the background index source
// and drives a line-oriented terminal renderer until the context ends.
package counter
