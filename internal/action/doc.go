// Package action defines the closed set of actions folded into debugger state.
//
// Every action kind is a struct in this package implementing Action. The
// interface is sealed with an unexported method so no other package can add
// kinds; reducers switch over the concrete types.
//
// Actions are plain values. They carry only the facts an event produced and
// never reference state. Asynchronous work is described by pairs of actions
// sharing a request id: one with Status "start" and one with "done" or
// "error" (see Async).
//
// The JSON codec (Encode, Decode) is used by the journal and the CLI. Every
// kind is registered there under its Type.
package action
