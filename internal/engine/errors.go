package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/dbgstate/internal/action"
)

// RuntimeError represents an error detected while dispatching or replaying.
//
// Runtime errors include:
//   - Reduce failure: a slice reducer rejected the action
//   - Journal failure: the applied action could not be recorded
//   - Encode failure: the action has no canonical encoding
//   - Decode failure: a journal record does not decode to an action
//   - Digest mismatch: replay reached a different snapshot than recorded
//   - Queue closed: an action was submitted after Stop
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Seq is the journal position involved, when there is one.
	Seq int64

	// Action is the type of the action involved, when there is one.
	Action action.Type

	// Err is the underlying cause.
	Err error
}

// RuntimeErrorCode categorizes runtime errors.
type RuntimeErrorCode string

const (
	// ErrCodeReduceFailed indicates a reducer returned an error.
	ErrCodeReduceFailed RuntimeErrorCode = "REDUCE_FAILED"

	// ErrCodeJournalFailed indicates the journal append failed.
	ErrCodeJournalFailed RuntimeErrorCode = "JOURNAL_FAILED"

	// ErrCodeEncodeFailed indicates an action has no canonical encoding.
	ErrCodeEncodeFailed RuntimeErrorCode = "ENCODE_FAILED"

	// ErrCodeDecodeFailed indicates a journal record could not be decoded.
	ErrCodeDecodeFailed RuntimeErrorCode = "DECODE_FAILED"

	// ErrCodeDigestMismatch indicates replay diverged from the recorded digest.
	ErrCodeDigestMismatch RuntimeErrorCode = "DIGEST_MISMATCH"

	// ErrCodeQueueClosed indicates the controller has been stopped.
	ErrCodeQueueClosed RuntimeErrorCode = "QUEUE_CLOSED"
)

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Action != "" && e.Seq != 0 {
		msg = fmt.Sprintf("%s (action=%s, seq=%d)", msg, e.Action, e.Seq)
	} else if e.Action != "" {
		msg = fmt.Sprintf("%s (action=%s)", msg, e.Action)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// CodeOf returns the RuntimeErrorCode of err, or "" if err is not a
// RuntimeError. Uses errors.As to handle wrapped errors.
func CodeOf(err error) RuntimeErrorCode {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Code
	}
	return ""
}

// IsReduceError returns true if a reducer rejected the action.
func IsReduceError(err error) bool {
	return CodeOf(err) == ErrCodeReduceFailed
}

// IsDigestMismatch returns true if replay diverged from the journal.
func IsDigestMismatch(err error) bool {
	return CodeOf(err) == ErrCodeDigestMismatch
}

func newReduceError(a action.Action, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeReduceFailed,
		Message: "action rejected",
		Action:  a.Type(),
		Err:     err,
	}
}

func newEncodeError(a action.Action, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeEncodeFailed,
		Message: "action has no canonical encoding",
		Action:  a.Type(),
		Err:     err,
	}
}

func newJournalError(seq int64, a action.Action, err error) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeJournalFailed,
		Message: "journal append failed",
		Seq:     seq,
		Action:  a.Type(),
		Err:     err,
	}
}

// NewDigestMismatch creates a RuntimeError for a replay digest mismatch.
func NewDigestMismatch(seq int64, typ action.Type, want, got string) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeDigestMismatch,
		Message: fmt.Sprintf("snapshot digest %s, journal recorded %s", short(got), short(want)),
		Seq:     seq,
		Action:  typ,
	}
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}
