package harness

import "github.com/roach88/dbgstate/internal/state"

// TraceEvent records one scenario step as the controller saw it.
type TraceEvent struct {
	Step    int      `json:"step"`
	Type    string   `json:"type"`
	Seq     int64    `json:"seq"`
	Changed []string `json:"changed"`
	Error   string   `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in step order.
	Trace []TraceEvent `json:"trace"`

	Errors []string `json:"errors,omitempty"`

	// Digest is the digest of the final snapshot.
	Digest string `json:"digest"`

	// Requests maps the scenario's request aliases to generated ids.
	Requests map[string]string `json:"requests,omitempty"`

	// Snapshot is the final snapshot.
	Snapshot *state.Snapshot `json:"-"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:     true,
		Trace:    []TraceEvent{},
		Errors:   []string{},
		Requests: map[string]string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

func (r *Result) addTrace(ev TraceEvent) {
	if ev.Changed == nil {
		ev.Changed = []string{}
	}
	r.Trace = append(r.Trace, ev)
}
