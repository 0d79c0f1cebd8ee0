package action

import "fmt"

// Identifiers issued by the debuggee. They are opaque to this module.
type (
	ThreadID      string
	SourceID      string
	SourceActorID string
)

// Thread is one debuggable thread (main thread, worker, content process).
type Thread struct {
	Actor ThreadID `json:"actor"`
	Name  string   `json:"name"`
	Kind  string   `json:"kind"`
	URL   string   `json:"url,omitempty"`
}

// SourceActor is the per-thread handle for a source.
type SourceActor struct {
	Actor          SourceActorID `json:"actor"`
	Thread         ThreadID      `json:"thread"`
	Source         SourceID      `json:"source"`
	URL            string        `json:"url,omitempty"`
	IsBlackBoxed   bool          `json:"is_black_boxed,omitempty"`
	BreakableLines []int         `json:"breakable_lines,omitempty"`
}

// Source is a script known to the debugger.
type Source struct {
	ID              SourceID `json:"id"`
	URL             string   `json:"url"`
	IsPrettyPrinted bool     `json:"is_pretty_printed,omitempty"`
	IsWasm          bool     `json:"is_wasm,omitempty"`
}

// Location points at a line and column inside a source. Lines are 1-based.
type Location struct {
	SourceID SourceID `json:"source_id"`
	Line     int      `json:"line"`
	Column   int      `json:"column,omitempty"`
}

// Key is the stable string form used to index breakpoints by location.
func (l Location) Key() string {
	return fmt.Sprintf("%s:%d:%d", l.SourceID, l.Line, l.Column)
}

// Valid reports whether the location names a source and a line.
func (l Location) Valid() bool {
	return l.SourceID != "" && l.Line > 0
}

// Breakpoint is a breakpoint set on a concrete source location.
type Breakpoint struct {
	Location  Location `json:"location"`
	SourceURL string   `json:"source_url,omitempty"`
	Disabled  bool     `json:"disabled,omitempty"`
	Condition string   `json:"condition,omitempty"`
	LogValue  string   `json:"log_value,omitempty"`
}

// Frame is one entry of a paused thread's stack.
type Frame struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Location Location `json:"location"`
}

// Match is a single search hit.
type Match struct {
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Text   string `json:"text,omitempty"`
}

// Symbol is a named declaration extracted from a source's syntax tree.
type Symbol struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Line int    `json:"line"`
}

// ExpressionResult is the evaluation of one watch expression.
type ExpressionResult struct {
	Input string `json:"input"`
	Value string `json:"value,omitempty"`
	Error string `json:"error,omitempty"`
}

// Property is one property of an inspected object.
type Property struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EventCategory groups DOM event listener breakpoints.
type EventCategory struct {
	Name   string      `json:"name"`
	Events []EventType `json:"events"`
}

// EventType is one breakable event, e.g. "event.mouse.click".
type EventType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
