package reducers

import (
	"fmt"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// PendingBreakpoint is a breakpoint remembered by URL so it can be re-set
// when a page reloads and its sources get new ids.
type PendingBreakpoint struct {
	URL       string `json:"url"`
	Line      int    `json:"line"`
	Column    int    `json:"column,omitempty"`
	Disabled  bool   `json:"disabled,omitempty"`
	Condition string `json:"condition,omitempty"`
	LogValue  string `json:"log_value,omitempty"`
}

// PendingBreakpointsState holds pending breakpoints keyed by PendingKey.
type PendingBreakpointsState = resource.Container[string, PendingBreakpoint]

// PendingKey is the URL-based key of a breakpoint location.
func PendingKey(url string, loc action.Location) string {
	return fmt.Sprintf("%s:%d:%d", url, loc.Line, loc.Column)
}

func InitialPendingBreakpointsState() *PendingBreakpointsState {
	return resource.Empty[string, PendingBreakpoint]()
}

// ReducePendingBreakpoints mirrors breakpoint changes for sources that have
// a URL. Breakpoints in anonymous sources cannot outlive a reload and are
// not tracked.
func ReducePendingBreakpoints(s *PendingBreakpointsState, a action.Action) (*PendingBreakpointsState, error) {
	switch a := a.(type) {
	case action.SetBreakpoint:
		bp := a.Breakpoint
		if bp.SourceURL == "" || !bp.Location.Valid() {
			return s, nil
		}
		return s.Insert(PendingKey(bp.SourceURL, bp.Location), PendingBreakpoint{
			URL:       bp.SourceURL,
			Line:      bp.Location.Line,
			Column:    bp.Location.Column,
			Disabled:  bp.Disabled,
			Condition: bp.Condition,
			LogValue:  bp.LogValue,
		}), nil

	case action.RemoveBreakpoint:
		if a.SourceURL == "" {
			return s, nil
		}
		return s.Remove(PendingKey(a.SourceURL, a.Location)), nil

	case action.DisableBreakpoint:
		if a.SourceURL == "" {
			return s, nil
		}
		key := PendingKey(a.SourceURL, a.Location)
		if pbp, ok := s.Get(key); !ok || pbp.Disabled == a.Disabled {
			return s, nil
		}
		return s.Update(key, func(pbp PendingBreakpoint) PendingBreakpoint {
			pbp.Disabled = a.Disabled
			return pbp
		}), nil
	}
	return s, nil
}
