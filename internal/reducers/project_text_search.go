package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// SearchResult holds the matches project search found in one source.
type SearchResult struct {
	Path    string         `json:"path"`
	Matches []action.Match `json:"matches"`
}

type ProjectTextSearchState struct {
	Query   string                                             `json:"query"`
	Status  string                                             `json:"status"`
	Results *resource.Container[action.SourceID, SearchResult] `json:"results"`
}

func InitialProjectTextSearchState() *ProjectTextSearchState {
	return &ProjectTextSearchState{
		Status:  action.SearchInitial,
		Results: resource.Empty[action.SourceID, SearchResult](),
	}
}

func (s *ProjectTextSearchState) isInitial() bool {
	return s.Query == "" && s.Status == action.SearchInitial && s.Results.Len() == 0
}

func ReduceProjectTextSearch(s *ProjectTextSearchState, a action.Action) (*ProjectTextSearchState, error) {
	switch a := a.(type) {
	case action.AddSearchQuery:
		if s.Query == a.Query {
			return s, nil
		}
		next := *s
		next.Query = a.Query
		return &next, nil

	case action.AddSearchResult:
		if !resource.Valid(a.SourceID) {
			return s, invalidKey("projectTextSearch", "source id", a.SourceID)
		}
		if len(a.Matches) == 0 {
			return s, nil
		}
		next := *s
		next.Results = s.Results.Insert(a.SourceID, SearchResult{Path: a.Path, Matches: slices.Clone(a.Matches)})
		return &next, nil

	case action.UpdateSearchStatus:
		switch a.Status {
		case action.SearchInitial, action.SearchFetching, action.SearchDone, action.SearchCanceled:
		default:
			return s, invalidPayload("projectTextSearch", "unknown search status %q", a.Status)
		}
		if s.Status == a.Status {
			return s, nil
		}
		next := *s
		next.Status = a.Status
		return &next, nil

	case action.ClearSearch, action.Navigate:
		if s.isInitial() {
			return s, nil
		}
		return InitialProjectTextSearchState(), nil
	}
	return s, nil
}
