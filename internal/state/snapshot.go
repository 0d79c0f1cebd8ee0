package state

import (
	"github.com/roach88/dbgstate/internal/canon"
	"github.com/roach88/dbgstate/internal/objinspect"
	"github.com/roach88/dbgstate/internal/reducers"
)

// Snapshot is the composite debugger state. Every field is a pointer to an
// immutable sub-state; equal pointers mean an unchanged slice.
type Snapshot struct {
	Sources                  *reducers.SourcesState            `json:"sources"`
	Expressions              *reducers.ExpressionsState        `json:"expressions"`
	SourceActors             *reducers.SourceActorsState       `json:"sourceActors"`
	Tabs                     *reducers.TabsState               `json:"tabs"`
	Breakpoints              *reducers.BreakpointsState        `json:"breakpoints"`
	PendingBreakpoints       *reducers.PendingBreakpointsState `json:"pendingBreakpoints"`
	AsyncRequests            *reducers.AsyncRequestsState      `json:"asyncRequests"`
	Pause                    *reducers.PauseState              `json:"pause"`
	UI                       *reducers.UIState                 `json:"ui"`
	FileSearch               *reducers.FileSearchState         `json:"fileSearch"`
	AST                      *reducers.ASTState                `json:"ast"`
	ProjectTextSearch        *reducers.ProjectTextSearchState  `json:"projectTextSearch"`
	QuickOpen                *reducers.QuickOpenState          `json:"quickOpen"`
	SourceTree               *reducers.SourceTreeState         `json:"sourceTree"`
	Threads                  *reducers.ThreadsState            `json:"threads"`
	ObjectInspector          *objinspect.State                 `json:"objectInspector"`
	EventListenerBreakpoints *reducers.EventListenersState     `json:"eventListenerBreakpoints"`
	Preview                  *reducers.PreviewState            `json:"preview"`
}

// Digest returns the content hash of s: SHA-256 over the canonical JSON of
// every slice. Two snapshots with equal content have equal digests however
// they were reached.
func Digest(s *Snapshot) (string, error) {
	return canon.Digest(canon.DomainSnapshot, s)
}
