package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
)

// Tab is an open editor tab. Tabs are identified by URL so they survive
// reloads that reissue source ids.
type Tab struct {
	URL      string          `json:"url"`
	SourceID action.SourceID `json:"source_id,omitempty"`
}

// TabsState lists open tabs, most recently opened first.
type TabsState struct {
	Tabs []Tab `json:"tabs"`
}

func InitialTabsState() *TabsState {
	return &TabsState{Tabs: []Tab{}}
}

func (s *TabsState) index(url string) int {
	return slices.IndexFunc(s.Tabs, func(t Tab) bool { return t.URL == url })
}

func (s *TabsState) open(tab Tab) *TabsState {
	if s.index(tab.URL) >= 0 {
		return s
	}
	tabs := make([]Tab, 0, len(s.Tabs)+1)
	tabs = append(tabs, tab)
	return &TabsState{Tabs: append(tabs, s.Tabs...)}
}

func ReduceTabs(s *TabsState, a action.Action) (*TabsState, error) {
	switch a := a.(type) {
	case action.AddTab:
		if a.URL == "" {
			return s, invalidKey("tabs", "url", a.URL)
		}
		return s.open(Tab{URL: a.URL, SourceID: a.SourceID}), nil

	case action.SelectLocation:
		if a.URL == "" {
			return s, nil
		}
		return s.open(Tab{URL: a.URL, SourceID: a.Location.SourceID}), nil

	case action.CloseTab:
		i := s.index(a.URL)
		if i < 0 {
			return s, nil
		}
		return &TabsState{Tabs: slices.Delete(slices.Clone(s.Tabs), i, i+1)}, nil

	case action.MoveTab:
		from := s.index(a.URL)
		if from < 0 {
			return s, nil
		}
		to := min(max(a.Index, 0), len(s.Tabs)-1)
		if to == from {
			return s, nil
		}
		tab := s.Tabs[from]
		tabs := slices.Delete(slices.Clone(s.Tabs), from, from+1)
		return &TabsState{Tabs: slices.Insert(tabs, to, tab)}, nil
	}
	return s, nil
}
