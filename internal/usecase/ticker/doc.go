// Package ticker is the domain collaborator that produces the background
// index sequence consumed by the counter reducer.
//
// The sequence emits 0, 1, 2, ... with a fixed delay after each element and
// can be told to fail at a given index to exercise failure containment.
package ticker
