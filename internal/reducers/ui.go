package reducers

import "github.com/roach88/dbgstate/internal/action"

// Primary pane tabs.
const (
	PaneTabSources = "sources"
	PaneTabOutline = "outline"
	PaneTabProject = "project"
)

// LineRange is an inclusive range of highlighted lines.
type LineRange struct {
	SourceID action.SourceID `json:"source_id"`
	Start    int             `json:"start"`
	End      int             `json:"end"`
}

type UIState struct {
	StartPanelCollapsed bool       `json:"start_panel_collapsed"`
	EndPanelCollapsed   bool       `json:"end_panel_collapsed"`
	PrimaryPaneTab      string     `json:"primary_pane_tab"`
	HighlightedLines    *LineRange `json:"highlighted_lines"`
}

func InitialUIState() *UIState {
	return &UIState{PrimaryPaneTab: PaneTabSources}
}

func ReduceUI(s *UIState, a action.Action) (*UIState, error) {
	switch a := a.(type) {
	case action.TogglePane:
		next := *s
		switch a.Position {
		case action.PaneStart:
			next.StartPanelCollapsed = a.Collapsed
		case action.PaneEnd:
			next.EndPanelCollapsed = a.Collapsed
		default:
			return s, invalidPayload("ui", "unknown pane position %q", a.Position)
		}
		if next == *s {
			return s, nil
		}
		return &next, nil

	case action.SetPrimaryPaneTab:
		switch a.Tab {
		case PaneTabSources, PaneTabOutline, PaneTabProject:
		default:
			return s, invalidPayload("ui", "unknown primary pane tab %q", a.Tab)
		}
		if s.PrimaryPaneTab == a.Tab {
			return s, nil
		}
		next := *s
		next.PrimaryPaneTab = a.Tab
		return &next, nil

	case action.HighlightLines:
		if a.SourceID == "" || a.Start <= 0 || a.End < a.Start {
			return s, invalidPayload("ui", "bad line range %d-%d in %q", a.Start, a.End, a.SourceID)
		}
		r := LineRange{SourceID: a.SourceID, Start: a.Start, End: a.End}
		if s.HighlightedLines != nil && *s.HighlightedLines == r {
			return s, nil
		}
		next := *s
		next.HighlightedLines = &r
		return &next, nil

	case action.ClearHighlightLines:
		if s.HighlightedLines == nil {
			return s, nil
		}
		next := *s
		next.HighlightedLines = nil
		return &next, nil
	}
	return s, nil
}
