// Package objinspect is the object inspector's state module.
//
// It is maintained apart from the debugger's own slices and exposes its
// pair of functions under its own names, InitialOIState and Reducer.
package objinspect

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// Object is the loaded view of one inspected object actor.
type Object struct {
	Loading    bool              `json:"loading,omitempty"`
	Properties []action.Property `json:"properties"`
	Error      string            `json:"error,omitempty"`
}

// State holds expanded tree paths and the properties loaded per actor.
type State struct {
	ExpandedPaths []string                            `json:"expanded_paths"`
	Objects       *resource.Container[string, Object] `json:"objects"`
}

func InitialOIState() *State {
	return &State{
		ExpandedPaths: []string{},
		Objects:       resource.Empty[string, Object](),
	}
}

func (s *State) isInitial() bool {
	return len(s.ExpandedPaths) == 0 && s.Objects.Len() == 0
}

// Reducer folds inspector actions into s. Inspected objects only live while
// the debuggee is paused, so Resumed and Navigate drop everything.
func Reducer(s *State, a action.Action) (*State, error) {
	switch a := a.(type) {
	case action.ExpandNode:
		if a.Path == "" || slices.Contains(s.ExpandedPaths, a.Path) {
			return s, nil
		}
		next := *s
		next.ExpandedPaths = append(slices.Clip(s.ExpandedPaths), a.Path)
		return &next, nil

	case action.CollapseNode:
		i := slices.Index(s.ExpandedPaths, a.Path)
		if i < 0 {
			return s, nil
		}
		next := *s
		next.ExpandedPaths = slices.Delete(slices.Clone(s.ExpandedPaths), i, i+1)
		return &next, nil

	case action.LoadProperties:
		if !resource.Valid(a.Actor) {
			return s, &KeyError{Actor: a.Actor}
		}
		var obj Object
		switch a.Status {
		case action.StatusStart:
			obj = Object{Loading: true}
		case action.StatusError:
			obj = Object{Error: a.Error}
		default:
			obj = Object{Properties: slices.Clone(a.Properties)}
		}
		next := *s
		next.Objects = s.Objects.Insert(a.Actor, obj)
		return &next, nil

	case action.Resumed, action.Navigate:
		if s.isInitial() {
			return s, nil
		}
		return InitialOIState(), nil
	}
	return s, nil
}

// KeyError reports an inspector action without an object actor.
type KeyError struct {
	Actor string
}

func (e *KeyError) Error() string {
	return "objinspect: missing object actor"
}
