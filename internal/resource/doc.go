// Package resource provides the indexed resource container used by state
// slices whose entities arrive asynchronously and are addressed by an opaque
// identifier (threads, source actors, breakpoints, sources).
//
// A Container is persistent: every mutating operation returns a new container
// and leaves the receiver untouched. Operations that change nothing return
// the receiver itself, so callers can detect "no change" with a pointer
// comparison.
//
// INVARIANTS:
//   - every key in the order has exactly one entry and vice versa
//   - inserting an existing key replaces its entry in place; the order is kept
//   - removal deletes a key from the order and the entries in one step
//
// The zero-length string is never a valid key. Passing one is a programmer
// error and panics with *KeyError; reducers validate keys with Valid before
// they reach the container.
package resource
