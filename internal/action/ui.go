package action

const (
	TypeTogglePane          Type = "TOGGLE_PANE"
	TypeSetPrimaryPaneTab   Type = "SET_PRIMARY_PANE_TAB"
	TypeHighlightLines      Type = "HIGHLIGHT_LINES"
	TypeClearHighlightLines Type = "CLEAR_HIGHLIGHT_LINES"

	TypeSetFileSearchQuery       Type = "SET_FILE_SEARCH_QUERY"
	TypeUpdateFileSearchResults  Type = "UPDATE_FILE_SEARCH_RESULTS"
	TypeToggleFileSearchModifier Type = "TOGGLE_FILE_SEARCH_MODIFIER"

	TypeSetSymbols Type = "SET_SYMBOLS"

	TypeAddSearchQuery     Type = "ADD_SEARCH_QUERY"
	TypeAddSearchResult    Type = "ADD_SEARCH_RESULT"
	TypeUpdateSearchStatus Type = "UPDATE_SEARCH_STATUS"
	TypeClearSearch        Type = "CLEAR_SEARCH"

	TypeOpenQuickOpen     Type = "OPEN_QUICK_OPEN"
	TypeSetQuickOpenQuery Type = "SET_QUICK_OPEN_QUERY"
	TypeCloseQuickOpen    Type = "CLOSE_QUICK_OPEN"

	TypeSetExpandedState Type = "SET_EXPANDED_STATE"
	TypeSetFocusedItem   Type = "SET_FOCUSED_ITEM"
	TypeSetProjectRoot   Type = "SET_PROJECT_ROOT"
)

// Pane positions for TogglePane.
const (
	PaneStart = "start"
	PaneEnd   = "end"
)

// File search modifiers for ToggleFileSearchModifier.
const (
	ModifierCaseSensitive = "case_sensitive"
	ModifierWholeWord     = "whole_word"
	ModifierRegexMatch    = "regex_match"
)

// Project search statuses for UpdateSearchStatus.
const (
	SearchInitial  = "initial"
	SearchFetching = "fetching"
	SearchDone     = "done"
	SearchCanceled = "canceled"
)

type TogglePane struct {
	Position  string `json:"position"`
	Collapsed bool   `json:"collapsed"`
}

type SetPrimaryPaneTab struct {
	Tab string `json:"tab"`
}

// HighlightLines highlights an inclusive line range in the editor.
type HighlightLines struct {
	SourceID SourceID `json:"source_id"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
}

type ClearHighlightLines struct{}

type SetFileSearchQuery struct {
	Query string `json:"query"`
}

type UpdateFileSearchResults struct {
	Matches    []Match `json:"matches"`
	MatchIndex int     `json:"match_index"`
}

type ToggleFileSearchModifier struct {
	Modifier string `json:"modifier"`
}

// SetSymbols is one phase of parsing a source for symbols.
type SetSymbols struct {
	Async
	SourceID SourceID `json:"source_id"`
	Symbols  []Symbol `json:"symbols,omitempty"`
}

func (a SetSymbols) WithAsync(as Async) AsyncAction {
	a.Async = as
	return a
}

type AddSearchQuery struct {
	Query string `json:"query"`
}

type AddSearchResult struct {
	SourceID SourceID `json:"source_id"`
	Path     string   `json:"path"`
	Matches  []Match  `json:"matches"`
}

type UpdateSearchStatus struct {
	Status string `json:"status"`
}

type ClearSearch struct{}

type OpenQuickOpen struct {
	Query string `json:"query,omitempty"`
}

type SetQuickOpenQuery struct {
	Query string `json:"query"`
}

type CloseQuickOpen struct{}

type SetExpandedState struct {
	Expanded []string `json:"expanded"`
}

type SetFocusedItem struct {
	Item string `json:"item"`
}

type SetProjectRoot struct {
	Root string `json:"root"`
}

func (TogglePane) Type() Type               { return TypeTogglePane }
func (SetPrimaryPaneTab) Type() Type        { return TypeSetPrimaryPaneTab }
func (HighlightLines) Type() Type           { return TypeHighlightLines }
func (ClearHighlightLines) Type() Type      { return TypeClearHighlightLines }
func (SetFileSearchQuery) Type() Type       { return TypeSetFileSearchQuery }
func (UpdateFileSearchResults) Type() Type  { return TypeUpdateFileSearchResults }
func (ToggleFileSearchModifier) Type() Type { return TypeToggleFileSearchModifier }
func (SetSymbols) Type() Type               { return TypeSetSymbols }
func (AddSearchQuery) Type() Type           { return TypeAddSearchQuery }
func (AddSearchResult) Type() Type          { return TypeAddSearchResult }
func (UpdateSearchStatus) Type() Type       { return TypeUpdateSearchStatus }
func (ClearSearch) Type() Type              { return TypeClearSearch }
func (OpenQuickOpen) Type() Type            { return TypeOpenQuickOpen }
func (SetQuickOpenQuery) Type() Type        { return TypeSetQuickOpenQuery }
func (CloseQuickOpen) Type() Type           { return TypeCloseQuickOpen }
func (SetExpandedState) Type() Type         { return TypeSetExpandedState }
func (SetFocusedItem) Type() Type           { return TypeSetFocusedItem }
func (SetProjectRoot) Type() Type           { return TypeSetProjectRoot }

func (TogglePane) isAction()               {}
func (SetPrimaryPaneTab) isAction()        {}
func (HighlightLines) isAction()           {}
func (ClearHighlightLines) isAction()      {}
func (SetFileSearchQuery) isAction()       {}
func (UpdateFileSearchResults) isAction()  {}
func (ToggleFileSearchModifier) isAction() {}
func (SetSymbols) isAction()               {}
func (AddSearchQuery) isAction()           {}
func (AddSearchResult) isAction()          {}
func (UpdateSearchStatus) isAction()       {}
func (ClearSearch) isAction()              {}
func (OpenQuickOpen) isAction()            {}
func (SetQuickOpenQuery) isAction()        {}
func (CloseQuickOpen) isAction()           {}
func (SetExpandedState) isAction()         {}
func (SetFocusedItem) isAction()           {}
func (SetProjectRoot) isAction()           {}
