package state

import (
	"errors"
	"fmt"

	"github.com/roach88/dbgstate/internal/action"
)

// ErrRegistration is matched by every *RegistrationError.
var ErrRegistration = errors.New("slice registration failed")

// RegistrationError reports a slice list that cannot be composed.
type RegistrationError struct {
	// Slice is the offending slice name, empty when the name itself is missing.
	Slice string

	// Index is the slice's position in the registration list.
	Index int

	Reason string
}

func (e *RegistrationError) Error() string {
	if e.Slice == "" {
		return fmt.Sprintf("%s: slice #%d: %s", ErrRegistration, e.Index, e.Reason)
	}
	return fmt.Sprintf("%s: slice %q: %s", ErrRegistration, e.Slice, e.Reason)
}

// Is makes errors.Is(err, ErrRegistration) hold.
func (e *RegistrationError) Is(target error) bool {
	return target == ErrRegistration
}

// ReduceError reports a reducer that failed while applying an action.
type ReduceError struct {
	Slice  string
	Action action.Type
	Err    error
}

func (e *ReduceError) Error() string {
	return fmt.Sprintf("reduce %s in slice %q: %v", e.Action, e.Slice, e.Err)
}

func (e *ReduceError) Unwrap() error {
	return e.Err
}

// IsReduceError reports whether err wraps a *ReduceError.
func IsReduceError(err error) bool {
	var re *ReduceError
	return errors.As(err, &re)
}
