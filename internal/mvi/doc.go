// Package mvi implements the reducer engine used by UI clients to decouple
// user and domain actions from rendering.
//
// The building blocks are:
//   - StateStore: a hot, equality-gated holder of the current state;
//   - EventChannel: a zero-replay, drop-oldest channel for one-shot events;
//   - Scope: the execution context that owns background work;
//   - Engine: the base reducer that turns actions and failures into state
//     and event transitions through pure hooks;
//   - Logging and SafeAsync: decorators that wrap any Reducer behind the same
//     contract and share the wrapped store and channel;
//   - Consume: the bridge that feeds an asynchronous domain sequence into the
//     reducer and funnels its failures into DispatchFailure.
//
// Writes to the store are individually atomic, but the read-compute-write
// performed by Dispatch is not. Concurrent dispatches may race and the last
// write wins.
package mvi
