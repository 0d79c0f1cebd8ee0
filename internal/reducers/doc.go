// Package reducers holds the debugger's domain slices.
//
// Each slice is a pair of functions: Initial<Name>State builds the empty
// sub-state and Reduce<Name> folds one action into it. Reducers are pure:
// they never mutate their input, never read another slice, and return their
// input pointer unchanged when the action does not concern them. That last
// rule is what lets the root composer detect change with a pointer compare,
// so every branch below that would produce an equal value returns the input.
//
// Slices that deliberately react to actions owned by other areas:
//   - sourceActors and pause drop a thread's entries on DetachThread
//   - ast, fileSearch, projectTextSearch, quickOpen, sourceTree and preview
//     reset on Navigate
//   - preview resets on Resumed
//
// Payload keys are validated before they reach a resource container; a
// malformed key is reported as an error wrapping ErrInvalidKey.
package reducers
