package action

const (
	TypeAddSources     Type = "ADD_SOURCES"
	TypeSelectLocation Type = "SELECT_LOCATION"
	TypeLoadSourceText Type = "LOAD_SOURCE_TEXT"
	TypeAddTab         Type = "ADD_TAB"
	TypeCloseTab       Type = "CLOSE_TAB"
	TypeMoveTab        Type = "MOVE_TAB"
	TypeNavigate       Type = "NAVIGATE"
)

type AddSources struct {
	Sources []Source `json:"sources"`
}

// SelectLocation moves the editor to a location. URL is the selected
// source's URL, carried so tab bookkeeping needs no lookup.
type SelectLocation struct {
	Location Location `json:"location"`
	URL      string   `json:"url,omitempty"`
}

// LoadSourceText is one phase of fetching a source's text.
type LoadSourceText struct {
	Async
	SourceID    SourceID `json:"source_id"`
	Text        string   `json:"text,omitempty"`
	ContentType string   `json:"content_type,omitempty"`
}

func (a LoadSourceText) WithAsync(as Async) AsyncAction {
	a.Async = as
	return a
}

type AddTab struct {
	URL      string   `json:"url"`
	SourceID SourceID `json:"source_id,omitempty"`
}

type CloseTab struct {
	URL string `json:"url"`
}

// MoveTab moves the tab for URL to Index, clamped to the tab list.
type MoveTab struct {
	URL   string `json:"url"`
	Index int    `json:"index"`
}

// Navigate reports that the debuggee navigated to a new page.
type Navigate struct {
	URL string `json:"url"`
}

func (AddSources) Type() Type     { return TypeAddSources }
func (SelectLocation) Type() Type { return TypeSelectLocation }
func (LoadSourceText) Type() Type { return TypeLoadSourceText }
func (AddTab) Type() Type         { return TypeAddTab }
func (CloseTab) Type() Type       { return TypeCloseTab }
func (MoveTab) Type() Type        { return TypeMoveTab }
func (Navigate) Type() Type       { return TypeNavigate }

func (AddSources) isAction()     {}
func (SelectLocation) isAction() {}
func (LoadSourceText) isAction() {}
func (AddTab) isAction()         {}
func (CloseTab) isAction()       {}
func (MoveTab) isAction()        {}
func (Navigate) isAction()       {}
