// Package harness runs scripted debugger sessions against the real
// controller and checks what every dispatch did to the snapshot.
//
// # Scenario Format
//
// Scenarios are YAML or CUE files. Both are validated against the
// #Scenario definition in schema.cue before they run:
//
//	name: attach_thread
//	description: "A source actor registers on an attached thread"
//	steps:
//	  - dispatch: ATTACH_THREAD
//	    payload: { thread: { actor: t1, name: Main Thread, kind: mainThread } }
//	    changed: [threads]
//	  - dispatch: LOAD_SOURCE_TEXT
//	    payload: { source_id: s1 }
//	    request: load_s1
//	    status: start
//	  - dispatch: "@@INIT"
//	    unchanged: true
//	assertions:
//	  - type: keys
//	    slice: threads
//	    keys: [t1]
//	  - type: ledger
//	    ids: [load_s1]
//	golden: [threads]
//
// A step names an action type and its payload. Types the codec does not
// know are dispatched as unknown actions. A step with request and status
// is one phase of an async request; the harness swaps the request name
// for a generated id.
//
// # Assertion Types
//
//   - keys: key order of a container, or the elements of a list
//   - entry: one container entry or object field, subset-matched
//   - value: any value, subset-matched
//   - ledger: the in-flight request ids, in start order
//
// # Deterministic Testing
//
// Every run uses a fresh in-memory journal, testutil.DeterministicClock
// and testutil.SequentialIDs, so traces and golden files are identical
// across runs. After the last step the journal is replayed and must reach
// the same digest as the live snapshot.
package harness
