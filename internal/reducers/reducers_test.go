package reducers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/action"
)

// Every reducer must hand back its input for actions it does not handle.
func TestReducers_IgnoreUnrelatedActions(t *testing.T) {
	unrelated := []action.Action{
		action.Unknown{Name: "@@INIT"},
		action.Unknown{Name: "SOMETHING_ELSE"},
	}

	check := func(t *testing.T, name string, run func(action.Action) (any, any, error)) {
		t.Helper()
		for _, a := range unrelated {
			in, out, err := run(a)
			require.NoError(t, err, "%s on %s", name, a.Type())
			assert.Same(t, in, out, "%s on %s", name, a.Type())
		}
	}

	check(t, "threads", func(a action.Action) (any, any, error) {
		s := InitialThreadsState()
		out, err := ReduceThreads(s, a)
		return s, out, err
	})
	check(t, "sourceActors", func(a action.Action) (any, any, error) {
		s := InitialSourceActorsState()
		out, err := ReduceSourceActors(s, a)
		return s, out, err
	})
	check(t, "sources", func(a action.Action) (any, any, error) {
		s := InitialSourcesState()
		out, err := ReduceSources(s, a)
		return s, out, err
	})
	check(t, "tabs", func(a action.Action) (any, any, error) {
		s := InitialTabsState()
		out, err := ReduceTabs(s, a)
		return s, out, err
	})
	check(t, "breakpoints", func(a action.Action) (any, any, error) {
		s := InitialBreakpointsState()
		out, err := ReduceBreakpoints(s, a)
		return s, out, err
	})
	check(t, "pendingBreakpoints", func(a action.Action) (any, any, error) {
		s := InitialPendingBreakpointsState()
		out, err := ReducePendingBreakpoints(s, a)
		return s, out, err
	})
	check(t, "asyncRequests", func(a action.Action) (any, any, error) {
		s := InitialAsyncRequestsState()
		out, err := ReduceAsyncRequests(s, a)
		return s, out, err
	})
	check(t, "pause", func(a action.Action) (any, any, error) {
		s := InitialPauseState()
		out, err := ReducePause(s, a)
		return s, out, err
	})
	check(t, "expressions", func(a action.Action) (any, any, error) {
		s := InitialExpressionsState()
		out, err := ReduceExpressions(s, a)
		return s, out, err
	})
	check(t, "ui", func(a action.Action) (any, any, error) {
		s := InitialUIState()
		out, err := ReduceUI(s, a)
		return s, out, err
	})
	check(t, "fileSearch", func(a action.Action) (any, any, error) {
		s := InitialFileSearchState()
		out, err := ReduceFileSearch(s, a)
		return s, out, err
	})
	check(t, "ast", func(a action.Action) (any, any, error) {
		s := InitialASTState()
		out, err := ReduceAST(s, a)
		return s, out, err
	})
	check(t, "projectTextSearch", func(a action.Action) (any, any, error) {
		s := InitialProjectTextSearchState()
		out, err := ReduceProjectTextSearch(s, a)
		return s, out, err
	})
	check(t, "quickOpen", func(a action.Action) (any, any, error) {
		s := InitialQuickOpenState()
		out, err := ReduceQuickOpen(s, a)
		return s, out, err
	})
	check(t, "sourceTree", func(a action.Action) (any, any, error) {
		s := InitialSourceTreeState()
		out, err := ReduceSourceTree(s, a)
		return s, out, err
	})
	check(t, "eventListeners", func(a action.Action) (any, any, error) {
		s := InitialEventListenersState()
		out, err := ReduceEventListeners(s, a)
		return s, out, err
	})
	check(t, "preview", func(a action.Action) (any, any, error) {
		s := InitialPreviewState()
		out, err := ReducePreview(s, a)
		return s, out, err
	})
}

func TestReducers_ErrorsNameTheSlice(t *testing.T) {
	_, err := ReduceThreads(InitialThreadsState(), action.DetachThread{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threads")
	assert.ErrorIs(t, err, ErrInvalidKey)
}
