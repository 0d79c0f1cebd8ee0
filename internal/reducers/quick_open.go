package reducers

import "github.com/roach88/dbgstate/internal/action"

type QuickOpenState struct {
	Enabled bool   `json:"enabled"`
	Query   string `json:"query"`
}

func InitialQuickOpenState() *QuickOpenState {
	return &QuickOpenState{}
}

func ReduceQuickOpen(s *QuickOpenState, a action.Action) (*QuickOpenState, error) {
	var next QuickOpenState
	switch a := a.(type) {
	case action.OpenQuickOpen:
		next = QuickOpenState{Enabled: true, Query: a.Query}
	case action.SetQuickOpenQuery:
		next = QuickOpenState{Enabled: s.Enabled, Query: a.Query}
	case action.CloseQuickOpen, action.Navigate:
		next = QuickOpenState{}
	default:
		return s, nil
	}
	if next == *s {
		return s, nil
	}
	return &next, nil
}
