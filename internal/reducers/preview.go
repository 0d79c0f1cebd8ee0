package reducers

import "github.com/roach88/dbgstate/internal/action"

// Preview is the value shown when hovering an expression while paused.
type Preview struct {
	Expression string          `json:"expression"`
	Result     string          `json:"result"`
	Location   action.Location `json:"location"`
}

type PreviewState struct {
	Preview *Preview `json:"preview"`
}

func InitialPreviewState() *PreviewState {
	return &PreviewState{}
}

// ReducePreview clears the preview when execution resumes or the page
// navigates, since the previewed value is no longer live.
func ReducePreview(s *PreviewState, a action.Action) (*PreviewState, error) {
	switch a := a.(type) {
	case action.SetPreview:
		if a.Expression == "" {
			return s, invalidPayload("preview", "empty expression")
		}
		p := Preview{Expression: a.Expression, Result: a.Result, Location: a.Location}
		if s.Preview != nil && *s.Preview == p {
			return s, nil
		}
		return &PreviewState{Preview: &p}, nil

	case action.ClearPreview, action.Resumed, action.Navigate:
		if s.Preview == nil {
			return s, nil
		}
		return InitialPreviewState(), nil
	}
	return s, nil
}
