// Package engine runs the debugger state as a single-writer controller.
//
// The Controller owns the current snapshot and is the only thing that
// advances it. Every action goes through Dispatch, which applies it with the
// registry, stamps it with the logical clock, journals it and notifies
// subscribers. Dispatch calls are serialised, so no two Apply calls ever
// interleave.
//
// ARCHITECTURE:
//
// Single-Writer Event Loop:
// Producers that are not the dispatch loop (async work, transports) submit
// actions with Enqueue. Run dequeues them in FIFO order and dispatches one at
// a time. This gives:
//   - a total order over actions that the journal records
//   - replay that reproduces the same snapshot
//   - no locking anywhere in the reducers
//
// Async Work:
// Track models a request as a start action and a settle action. The start is
// enqueued before the work begins; the settle (done or error) is enqueued
// when it ends. The request ledger in the snapshot is the only record of
// in-flight work.
//
// CRITICAL PATTERNS:
//
// Logical Clock:
// Codec-known actions are stamped with a monotonic seq from Clock.Next().
// NEVER use wall-clock timestamps for ordering.
//
// Publication:
// The current snapshot is published through an atomic pointer. Readers on
// other goroutines always see a fully composed snapshot.
package engine
