package reducers

import (
	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// BreakpointsState holds breakpoints keyed by action.Location.Key.
type BreakpointsState = resource.Container[string, action.Breakpoint]

func InitialBreakpointsState() *BreakpointsState {
	return resource.Empty[string, action.Breakpoint]()
}

func ReduceBreakpoints(s *BreakpointsState, a action.Action) (*BreakpointsState, error) {
	switch a := a.(type) {
	case action.SetBreakpoint:
		loc := a.Breakpoint.Location
		if !loc.Valid() {
			return s, invalidKey("breakpoints", "location", loc.Key())
		}
		return s.Insert(loc.Key(), a.Breakpoint), nil

	case action.RemoveBreakpoint:
		if !a.Location.Valid() {
			return s, invalidKey("breakpoints", "location", a.Location.Key())
		}
		return s.Remove(a.Location.Key()), nil

	case action.DisableBreakpoint:
		if !a.Location.Valid() {
			return s, invalidKey("breakpoints", "location", a.Location.Key())
		}
		key := a.Location.Key()
		if bp, ok := s.Get(key); !ok || bp.Disabled == a.Disabled {
			return s, nil
		}
		return s.Update(key, func(bp action.Breakpoint) action.Breakpoint {
			bp.Disabled = a.Disabled
			return bp
		}), nil
	}
	return s, nil
}
