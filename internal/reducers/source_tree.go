package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
)

// SourceTreeState is the sources panel tree. ProjectRoot is a user
// setting and survives navigation.
type SourceTreeState struct {
	Expanded    []string `json:"expanded"`
	FocusedItem string   `json:"focused_item,omitempty"`
	ProjectRoot string   `json:"project_root,omitempty"`
}

func InitialSourceTreeState() *SourceTreeState {
	return &SourceTreeState{Expanded: []string{}}
}

func ReduceSourceTree(s *SourceTreeState, a action.Action) (*SourceTreeState, error) {
	switch a := a.(type) {
	case action.SetExpandedState:
		expanded := dedupe(a.Expanded)
		if expanded == nil {
			expanded = []string{}
		}
		if slices.Equal(expanded, s.Expanded) {
			return s, nil
		}
		next := *s
		next.Expanded = expanded
		return &next, nil

	case action.SetFocusedItem:
		if s.FocusedItem == a.Item {
			return s, nil
		}
		next := *s
		next.FocusedItem = a.Item
		return &next, nil

	case action.SetProjectRoot:
		if s.ProjectRoot == a.Root {
			return s, nil
		}
		next := *s
		next.ProjectRoot = a.Root
		return &next, nil

	case action.Navigate:
		if len(s.Expanded) == 0 && s.FocusedItem == "" {
			return s, nil
		}
		return &SourceTreeState{Expanded: []string{}, ProjectRoot: s.ProjectRoot}, nil
	}
	return s, nil
}
