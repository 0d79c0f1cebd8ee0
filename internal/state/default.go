package state

import (
	"github.com/roach88/dbgstate/internal/objinspect"
	r "github.com/roach88/dbgstate/internal/reducers"
)

// DefaultSlices returns the debugger's slices in their canonical order.
func DefaultSlices() []Slice {
	return []Slice{
		Define("sources", r.InitialSourcesState, r.ReduceSources,
			func(s *Snapshot) *r.SourcesState { return s.Sources },
			func(s *Snapshot, v *r.SourcesState) { s.Sources = v }),
		Define("expressions", r.InitialExpressionsState, r.ReduceExpressions,
			func(s *Snapshot) *r.ExpressionsState { return s.Expressions },
			func(s *Snapshot, v *r.ExpressionsState) { s.Expressions = v }),
		Define("sourceActors", r.InitialSourceActorsState, r.ReduceSourceActors,
			func(s *Snapshot) *r.SourceActorsState { return s.SourceActors },
			func(s *Snapshot, v *r.SourceActorsState) { s.SourceActors = v }),
		Define("tabs", r.InitialTabsState, r.ReduceTabs,
			func(s *Snapshot) *r.TabsState { return s.Tabs },
			func(s *Snapshot, v *r.TabsState) { s.Tabs = v }),
		Define("breakpoints", r.InitialBreakpointsState, r.ReduceBreakpoints,
			func(s *Snapshot) *r.BreakpointsState { return s.Breakpoints },
			func(s *Snapshot, v *r.BreakpointsState) { s.Breakpoints = v }),
		Define("pendingBreakpoints", r.InitialPendingBreakpointsState, r.ReducePendingBreakpoints,
			func(s *Snapshot) *r.PendingBreakpointsState { return s.PendingBreakpoints },
			func(s *Snapshot, v *r.PendingBreakpointsState) { s.PendingBreakpoints = v }),
		Define("asyncRequests", r.InitialAsyncRequestsState, r.ReduceAsyncRequests,
			func(s *Snapshot) *r.AsyncRequestsState { return s.AsyncRequests },
			func(s *Snapshot, v *r.AsyncRequestsState) { s.AsyncRequests = v }),
		Define("pause", r.InitialPauseState, r.ReducePause,
			func(s *Snapshot) *r.PauseState { return s.Pause },
			func(s *Snapshot, v *r.PauseState) { s.Pause = v }),
		Define("ui", r.InitialUIState, r.ReduceUI,
			func(s *Snapshot) *r.UIState { return s.UI },
			func(s *Snapshot, v *r.UIState) { s.UI = v }),
		Define("fileSearch", r.InitialFileSearchState, r.ReduceFileSearch,
			func(s *Snapshot) *r.FileSearchState { return s.FileSearch },
			func(s *Snapshot, v *r.FileSearchState) { s.FileSearch = v }),
		Define("ast", r.InitialASTState, r.ReduceAST,
			func(s *Snapshot) *r.ASTState { return s.AST },
			func(s *Snapshot, v *r.ASTState) { s.AST = v }),
		Define("projectTextSearch", r.InitialProjectTextSearchState, r.ReduceProjectTextSearch,
			func(s *Snapshot) *r.ProjectTextSearchState { return s.ProjectTextSearch },
			func(s *Snapshot, v *r.ProjectTextSearchState) { s.ProjectTextSearch = v }),
		Define("quickOpen", r.InitialQuickOpenState, r.ReduceQuickOpen,
			func(s *Snapshot) *r.QuickOpenState { return s.QuickOpen },
			func(s *Snapshot, v *r.QuickOpenState) { s.QuickOpen = v }),
		Define("sourceTree", r.InitialSourceTreeState, r.ReduceSourceTree,
			func(s *Snapshot) *r.SourceTreeState { return s.SourceTree },
			func(s *Snapshot, v *r.SourceTreeState) { s.SourceTree = v }),
		Define("threads", r.InitialThreadsState, r.ReduceThreads,
			func(s *Snapshot) *r.ThreadsState { return s.Threads },
			func(s *Snapshot, v *r.ThreadsState) { s.Threads = v }),
		Define("objectInspector", objinspect.InitialOIState, objinspect.Reducer,
			func(s *Snapshot) *objinspect.State { return s.ObjectInspector },
			func(s *Snapshot, v *objinspect.State) { s.ObjectInspector = v }),
		Define("eventListenerBreakpoints", r.InitialEventListenersState, r.ReduceEventListeners,
			func(s *Snapshot) *r.EventListenersState { return s.EventListenerBreakpoints },
			func(s *Snapshot, v *r.EventListenersState) { s.EventListenerBreakpoints = v }),
		Define("preview", r.InitialPreviewState, r.ReducePreview,
			func(s *Snapshot) *r.PreviewState { return s.Preview },
			func(s *Snapshot, v *r.PreviewState) { s.Preview = v }),
	}
}

// Default returns a registry over DefaultSlices.
func Default() (*Registry, error) {
	return NewRegistry(DefaultSlices()...)
}

// MustDefault is Default for package-level initialisation and tests.
func MustDefault() *Registry {
	reg, err := Default()
	if err != nil {
		panic(err)
	}
	return reg
}
