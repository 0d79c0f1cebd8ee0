package reducers

import (
	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// Source text load states.
const (
	TextLoading = "loading"
	TextLoaded  = "loaded"
	TextError   = "error"
)

// SourceText is the fetched content of a source, or the state of its fetch.
type SourceText struct {
	State       string `json:"state"`
	Value       string `json:"value,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Error       string `json:"error,omitempty"`
}

type SourcesState struct {
	Sources          *resource.Container[action.SourceID, action.Source] `json:"sources"`
	Texts            *resource.Container[action.SourceID, SourceText]    `json:"texts"`
	SelectedLocation *action.Location                                    `json:"selected_location"`
}

func InitialSourcesState() *SourcesState {
	return &SourcesState{
		Sources: resource.Empty[action.SourceID, action.Source](),
		Texts:   resource.Empty[action.SourceID, SourceText](),
	}
}

func ReduceSources(s *SourcesState, a action.Action) (*SourcesState, error) {
	switch a := a.(type) {
	case action.AddSources:
		if len(a.Sources) == 0 {
			return s, nil
		}
		entries := make([]resource.Entry[action.SourceID, action.Source], 0, len(a.Sources))
		for _, src := range a.Sources {
			if !resource.Valid(src.ID) {
				return s, invalidKey("sources", "source id", src.ID)
			}
			entries = append(entries, resource.Entry[action.SourceID, action.Source]{Key: src.ID, Value: src})
		}
		next := *s
		next.Sources = s.Sources.Merge(entries...)
		return &next, nil

	case action.SelectLocation:
		if !a.Location.Valid() {
			return s, invalidPayload("sources", "select location %q", a.Location.Key())
		}
		if s.SelectedLocation != nil && *s.SelectedLocation == a.Location {
			return s, nil
		}
		loc := a.Location
		next := *s
		next.SelectedLocation = &loc
		return &next, nil

	case action.LoadSourceText:
		if !resource.Valid(a.SourceID) {
			return s, invalidKey("sources", "source id", a.SourceID)
		}
		var text SourceText
		switch a.Status {
		case action.StatusStart:
			text = SourceText{State: TextLoading}
		case action.StatusDone:
			text = SourceText{State: TextLoaded, Value: a.Text, ContentType: a.ContentType}
		case action.StatusError:
			text = SourceText{State: TextError, Error: a.Error}
		default:
			return s, invalidPayload("sources", "load source text: unknown status %q", a.Status)
		}
		if cur, ok := s.Texts.Get(a.SourceID); ok && cur == text {
			return s, nil
		}
		next := *s
		next.Texts = s.Texts.Insert(a.SourceID, text)
		return &next, nil
	}
	return s, nil
}
