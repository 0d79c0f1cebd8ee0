package reducers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/action"
)

func pausedAt(thread action.ThreadID, frames ...string) action.Paused {
	p := action.Paused{Thread: thread, Why: "breakpoint"}
	for i, id := range frames {
		p.Frames = append(p.Frames, action.Frame{ID: id, Name: id, Location: action.Location{SourceID: "s1", Line: i + 1}})
	}
	return p
}

func TestReducePause_PauseSelectResume(t *testing.T) {
	s := InitialPauseState()

	paused, err := ReducePause(s, pausedAt("t1", "f1", "f2"))
	require.NoError(t, err)
	tp, ok := paused.Threads.Get("t1")
	require.True(t, ok)
	assert.Equal(t, "f1", tp.SelectedFrameID, "innermost frame is selected")

	selected, err := ReducePause(paused, action.SelectFrame{Thread: "t1", FrameID: "f2"})
	require.NoError(t, err)
	tp, _ = selected.Threads.Get("t1")
	assert.Equal(t, "f2", tp.SelectedFrameID)

	_, err = ReducePause(paused, action.SelectFrame{Thread: "t1", FrameID: "nope"})
	assert.ErrorIs(t, err, ErrInvalidPayload)

	running, err := ReducePause(selected, action.SelectFrame{Thread: "t2", FrameID: "f1"})
	require.NoError(t, err)
	assert.Same(t, selected, running, "selecting a frame on a running thread is a no-op")

	resumed, err := ReducePause(selected, action.Resumed{Thread: "t1"})
	require.NoError(t, err)
	assert.False(t, resumed.Threads.Has("t1"))

	again, err := ReducePause(resumed, action.Resumed{Thread: "t1"})
	require.NoError(t, err)
	assert.Same(t, resumed, again)
}

func TestReducePause_DetachDropsThread(t *testing.T) {
	paused, err := ReducePause(InitialPauseState(), pausedAt("t1", "f1"))
	require.NoError(t, err)

	detached, err := ReducePause(paused, action.DetachThread{Actor: "t1"})
	require.NoError(t, err)
	assert.Equal(t, 0, detached.Threads.Len())
}

func TestReducePause_ExceptionSettings(t *testing.T) {
	s := InitialPauseState()

	next, err := ReducePause(s, action.SetPauseOnExceptions{ShouldPause: true})
	require.NoError(t, err)
	assert.True(t, next.PauseOnExceptions)
	assert.False(t, next.PauseOnCaughtExceptions)
	assert.Same(t, s.Threads, next.Threads)

	same, err := ReducePause(next, action.SetPauseOnExceptions{ShouldPause: true})
	require.NoError(t, err)
	assert.Same(t, next, same)
}

func TestReduceExpressions(t *testing.T) {
	s := InitialExpressionsState()

	s1, err := ReduceExpressions(s, action.AddExpression{Input: "a"})
	require.NoError(t, err)
	s1, err = ReduceExpressions(s1, action.AddExpression{Input: "b"})
	require.NoError(t, err)

	dup, err := ReduceExpressions(s1, action.AddExpression{Input: "a"})
	require.NoError(t, err)
	assert.Same(t, s1, dup)

	renamed, err := ReduceExpressions(s1, action.UpdateExpression{Input: "a", NewInput: "a.length"})
	require.NoError(t, err)
	assert.Equal(t, []Expression{{Input: "a.length"}, {Input: "b"}}, renamed.Expressions)

	deleted, err := ReduceExpressions(renamed, action.DeleteExpression{Input: "b"})
	require.NoError(t, err)
	assert.Equal(t, []Expression{{Input: "a.length"}}, deleted.Expressions)

	_, err = ReduceExpressions(s, action.AddExpression{})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestReduceExpressions_Evaluate(t *testing.T) {
	s, err := ReduceExpressions(InitialExpressionsState(), action.AddExpression{Input: "x"})
	require.NoError(t, err)
	s, err = ReduceExpressions(s, action.AddExpression{Input: "y"})
	require.NoError(t, err)

	start := action.EvaluateExpressions{}.WithAsync(action.Async{RequestID: "r1", Status: action.StatusStart})
	updating, err := ReduceExpressions(s, start)
	require.NoError(t, err)
	for _, e := range updating.Expressions {
		assert.True(t, e.Updating, e.Input)
	}

	done := action.EvaluateExpressions{Results: []action.ExpressionResult{
		{Input: "x", Value: "1"},
		{Input: "y", Error: "ReferenceError: y is not defined"},
	}}.WithAsync(action.Async{RequestID: "r1", Status: action.StatusDone})
	evaluated, err := ReduceExpressions(updating, done)
	require.NoError(t, err)
	assert.Equal(t, []Expression{
		{Input: "x", Value: "1"},
		{Input: "y", Error: "ReferenceError: y is not defined"},
	}, evaluated.Expressions)

	empty := InitialExpressionsState()
	same, err := ReduceExpressions(empty, start)
	require.NoError(t, err)
	assert.Same(t, empty, same)
}

func TestReducePreview(t *testing.T) {
	s := InitialPreviewState()
	set := action.SetPreview{Expression: "obj", Result: "{a: 1}", Location: action.Location{SourceID: "s1", Line: 3}}

	shown, err := ReducePreview(s, set)
	require.NoError(t, err)
	require.NotNil(t, shown.Preview)
	assert.Equal(t, "obj", shown.Preview.Expression)

	same, err := ReducePreview(shown, set)
	require.NoError(t, err)
	assert.Same(t, shown, same)

	for _, a := range []action.Action{action.ClearPreview{}, action.Resumed{Thread: "t1"}, action.Navigate{URL: "x"}} {
		cleared, err := ReducePreview(shown, a)
		require.NoError(t, err, a.Type())
		assert.Nil(t, cleared.Preview, a.Type())
	}

	_, err = ReducePreview(s, action.SetPreview{})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}
