package action

import "fmt"

// Type names an action kind. It is the tag of the tagged union.
type Type string

// Action is implemented by every action kind in this package.
type Action interface {
	Type() Type
	isAction()
}

// Unknown is an action with a tag no reducer recognises.
// Decoders produce it for opaque input when asked to be lenient.
type Unknown struct {
	Name string `json:"name"`
}

func (u Unknown) Type() Type { return Type(u.Name) }
func (Unknown) isAction()    {}

// UnknownTypeError is returned when decoding an unregistered action type.
type UnknownTypeError struct {
	Type Type
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown action type %q", e.Type)
}

// Status is the phase of an asynchronous request.
type Status string

const (
	StatusStart Status = "start"
	StatusDone  Status = "done"
	StatusError Status = "error"
)

// Async is embedded in actions that describe one phase of a request.
// Its JSON fields are flattened into the enclosing action.
type Async struct {
	RequestID string `json:"request_id,omitempty"`
	Status    Status `json:"status,omitempty"`
	Error     string `json:"error,omitempty"`
}

// AsyncState returns the request phase carried by the action.
func (a Async) AsyncState() Async { return a }

// Settled reports whether the phase ends the request.
func (a Async) Settled() bool {
	return a.Status == StatusDone || a.Status == StatusError
}

// AsyncAction is an action that participates in the request ledger.
type AsyncAction interface {
	Action
	AsyncState() Async
	WithAsync(Async) AsyncAction
}
