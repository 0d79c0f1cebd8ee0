package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
)

type FileSearchModifiers struct {
	CaseSensitive bool `json:"case_sensitive"`
	WholeWord     bool `json:"whole_word"`
	RegexMatch    bool `json:"regex_match"`
}

type FileSearchResults struct {
	Matches    []action.Match `json:"matches"`
	MatchIndex int            `json:"match_index"`
}

// FileSearchState is the in-file search bar. Modifiers are user settings
// and survive navigation; the query and results do not.
type FileSearchState struct {
	Query     string              `json:"query"`
	Results   FileSearchResults   `json:"results"`
	Modifiers FileSearchModifiers `json:"modifiers"`
}

func InitialFileSearchState() *FileSearchState {
	return &FileSearchState{Results: FileSearchResults{Matches: []action.Match{}, MatchIndex: -1}}
}

func ReduceFileSearch(s *FileSearchState, a action.Action) (*FileSearchState, error) {
	switch a := a.(type) {
	case action.SetFileSearchQuery:
		if s.Query == a.Query {
			return s, nil
		}
		next := *s
		next.Query = a.Query
		return &next, nil

	case action.UpdateFileSearchResults:
		if a.MatchIndex < -1 || a.MatchIndex >= len(a.Matches) {
			return s, invalidPayload("fileSearch", "match index %d out of range for %d matches", a.MatchIndex, len(a.Matches))
		}
		if s.Results.MatchIndex == a.MatchIndex && slices.Equal(s.Results.Matches, a.Matches) {
			return s, nil
		}
		next := *s
		next.Results = FileSearchResults{Matches: slices.Clone(a.Matches), MatchIndex: a.MatchIndex}
		if next.Results.Matches == nil {
			next.Results.Matches = []action.Match{}
		}
		return &next, nil

	case action.ToggleFileSearchModifier:
		next := *s
		switch a.Modifier {
		case action.ModifierCaseSensitive:
			next.Modifiers.CaseSensitive = !s.Modifiers.CaseSensitive
		case action.ModifierWholeWord:
			next.Modifiers.WholeWord = !s.Modifiers.WholeWord
		case action.ModifierRegexMatch:
			next.Modifiers.RegexMatch = !s.Modifiers.RegexMatch
		default:
			return s, invalidPayload("fileSearch", "unknown modifier %q", a.Modifier)
		}
		return &next, nil

	case action.Navigate:
		if s.Query == "" && len(s.Results.Matches) == 0 && s.Results.MatchIndex == -1 {
			return s, nil
		}
		next := InitialFileSearchState()
		next.Modifiers = s.Modifiers
		return next, nil
	}
	return s, nil
}
