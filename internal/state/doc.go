// Package state composes the debugger's slices into one snapshot.
//
// A Registry is the root composer: it owns an ordered, statically enumerated
// list of slices and turns (snapshot, action) into the next snapshot by
// calling every slice's reducer with that slice's own sub-state.
//
// INVARIANTS:
//   - the snapshot field set is the Snapshot struct; no slice appears or
//     disappears at runtime
//   - Apply calls every reducer exactly once, in registration order
//   - Apply returns its input snapshot when no sub-state pointer changed
//   - a reducer error aborts the whole Apply; no partial snapshot escapes
//
// Snapshots are never mutated after Apply returns them. Sub-states are
// shared between successive snapshots whenever their reducer returned the
// same pointer.
package state
