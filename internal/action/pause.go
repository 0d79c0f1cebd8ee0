package action

const (
	TypePaused               Type = "PAUSED"
	TypeResumed              Type = "RESUMED"
	TypeSelectFrame          Type = "SELECT_FRAME"
	TypeSetPauseOnExceptions Type = "SET_PAUSE_ON_EXCEPTIONS"

	TypeAddExpression       Type = "ADD_EXPRESSION"
	TypeUpdateExpression    Type = "UPDATE_EXPRESSION"
	TypeDeleteExpression    Type = "DELETE_EXPRESSION"
	TypeEvaluateExpressions Type = "EVALUATE_EXPRESSIONS"

	TypeSetPreview   Type = "SET_PREVIEW"
	TypeClearPreview Type = "CLEAR_PREVIEW"

	TypeExpandNode     Type = "EXPAND_NODE"
	TypeCollapseNode   Type = "COLLAPSE_NODE"
	TypeLoadProperties Type = "LOAD_PROPERTIES"
)

// Paused reports that a thread stopped. Frames are innermost first.
type Paused struct {
	Thread ThreadID `json:"thread"`
	Why    string   `json:"why"`
	Frames []Frame  `json:"frames,omitempty"`
}

type Resumed struct {
	Thread ThreadID `json:"thread"`
}

type SelectFrame struct {
	Thread  ThreadID `json:"thread"`
	FrameID string   `json:"frame_id"`
}

type SetPauseOnExceptions struct {
	ShouldPause         bool `json:"should_pause"`
	ShouldPauseOnCaught bool `json:"should_pause_on_caught"`
}

// AddExpression adds a watch expression. Duplicates are ignored.
type AddExpression struct {
	Input string `json:"input"`
}

// UpdateExpression renames the watch expression Input to NewInput.
type UpdateExpression struct {
	Input    string `json:"input"`
	NewInput string `json:"new_input"`
}

type DeleteExpression struct {
	Input string `json:"input"`
}

// EvaluateExpressions is one phase of evaluating every watch expression.
// Results are only present on the done phase.
type EvaluateExpressions struct {
	Async
	Results []ExpressionResult `json:"results,omitempty"`
}

func (a EvaluateExpressions) WithAsync(as Async) AsyncAction {
	a.Async = as
	return a
}

// SetPreview shows the hover preview for an expression.
type SetPreview struct {
	Expression string   `json:"expression"`
	Result     string   `json:"result"`
	Location   Location `json:"location"`
}

type ClearPreview struct{}

// ExpandNode expands an object inspector node addressed by its path.
type ExpandNode struct {
	Path string `json:"path"`
}

type CollapseNode struct {
	Path string `json:"path"`
}

// LoadProperties is one phase of fetching an object's properties.
type LoadProperties struct {
	Async
	Actor      string     `json:"actor"`
	Properties []Property `json:"properties,omitempty"`
}

func (a LoadProperties) WithAsync(as Async) AsyncAction {
	a.Async = as
	return a
}

func (Paused) Type() Type               { return TypePaused }
func (Resumed) Type() Type              { return TypeResumed }
func (SelectFrame) Type() Type          { return TypeSelectFrame }
func (SetPauseOnExceptions) Type() Type { return TypeSetPauseOnExceptions }
func (AddExpression) Type() Type        { return TypeAddExpression }
func (UpdateExpression) Type() Type     { return TypeUpdateExpression }
func (DeleteExpression) Type() Type     { return TypeDeleteExpression }
func (EvaluateExpressions) Type() Type  { return TypeEvaluateExpressions }
func (SetPreview) Type() Type           { return TypeSetPreview }
func (ClearPreview) Type() Type         { return TypeClearPreview }
func (ExpandNode) Type() Type           { return TypeExpandNode }
func (CollapseNode) Type() Type         { return TypeCollapseNode }
func (LoadProperties) Type() Type       { return TypeLoadProperties }

func (Paused) isAction()               {}
func (Resumed) isAction()              {}
func (SelectFrame) isAction()          {}
func (SetPauseOnExceptions) isAction() {}
func (AddExpression) isAction()        {}
func (UpdateExpression) isAction()     {}
func (DeleteExpression) isAction()     {}
func (EvaluateExpressions) isAction()  {}
func (SetPreview) isAction()           {}
func (ClearPreview) isAction()         {}
func (ExpandNode) isAction()           {}
func (CollapseNode) isAction()         {}
func (LoadProperties) isAction()       {}
