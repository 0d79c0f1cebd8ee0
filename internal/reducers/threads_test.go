package reducers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/action"
)

func TestReduceThreads_AttachDetach(t *testing.T) {
	s := InitialThreadsState()

	s1, err := ReduceThreads(s, action.AttachThread{Thread: action.Thread{Actor: "t1", Name: "Main Thread", Kind: "mainThread"}})
	require.NoError(t, err)
	assert.Equal(t, []action.ThreadID{"t1"}, s1.Keys())

	s2, err := ReduceThreads(s1, action.AttachThread{Thread: action.Thread{Actor: "t2", Kind: "worker"}})
	require.NoError(t, err)
	assert.Equal(t, []action.ThreadID{"t1", "t2"}, s2.Keys())

	s3, err := ReduceThreads(s2, action.DetachThread{Actor: "t1"})
	require.NoError(t, err)
	assert.Equal(t, []action.ThreadID{"t2"}, s3.Keys())

	s4, err := ReduceThreads(s3, action.DetachThread{Actor: "t1"})
	require.NoError(t, err)
	assert.Same(t, s3, s4, "detaching an unknown thread is a no-op")
}

func TestReduceThreads_InvalidKey(t *testing.T) {
	_, err := ReduceThreads(InitialThreadsState(), action.AttachThread{})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestReduceSourceActors(t *testing.T) {
	s := InitialSourceActorsState()

	s1, err := ReduceSourceActors(s, action.RegisterSourceActor{Actor: action.SourceActor{Actor: "a1", Thread: "t1", Source: "s1"}})
	require.NoError(t, err)
	s1, err = ReduceSourceActors(s1, action.RegisterSourceActor{Actor: action.SourceActor{Actor: "a2", Thread: "t2", Source: "s1"}})
	require.NoError(t, err)
	s1, err = ReduceSourceActors(s1, action.RegisterSourceActor{Actor: action.SourceActor{Actor: "a3", Thread: "t1", Source: "s2"}})
	require.NoError(t, err)
	assert.Equal(t, []action.SourceActorID{"a1", "a2", "a3"}, s1.Keys())

	s2, err := ReduceSourceActors(s1, action.SetBreakableLines{Actor: "a1", Lines: []int{9, 3, 3, 5}})
	require.NoError(t, err)
	a1, _ := s2.Get("a1")
	assert.Equal(t, []int{3, 5, 9}, a1.BreakableLines)

	s3, err := ReduceSourceActors(s2, action.DetachThread{Actor: "t1"})
	require.NoError(t, err)
	assert.Equal(t, []action.SourceActorID{"a2"}, s3.Keys())

	s4, err := ReduceSourceActors(s3, action.RemoveSourceActors{Actors: []action.SourceActorID{"a2", "zz"}})
	require.NoError(t, err)
	assert.Equal(t, 0, s4.Len())
}

func TestReduceSourceActors_Validation(t *testing.T) {
	s := InitialSourceActorsState()

	_, err := ReduceSourceActors(s, action.RegisterSourceActor{Actor: action.SourceActor{Thread: "t1"}})
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = ReduceSourceActors(s, action.RegisterSourceActor{Actor: action.SourceActor{Actor: "a1"}})
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, err = ReduceSourceActors(s, action.RemoveSourceActors{Actors: []action.SourceActorID{""}})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestReduceSourceActors_SameBreakableLinesKeepsReference(t *testing.T) {
	s, err := ReduceSourceActors(InitialSourceActorsState(), action.RegisterSourceActor{
		Actor: action.SourceActor{Actor: "a1", Thread: "t1", BreakableLines: []int{1, 2}},
	})
	require.NoError(t, err)

	next, err := ReduceSourceActors(s, action.SetBreakableLines{Actor: "a1", Lines: []int{1, 2}})
	require.NoError(t, err)
	assert.Same(t, s, next)
}

func TestReduceSourceActors_UnsortedDuplicateLinesKeepReference(t *testing.T) {
	s, err := ReduceSourceActors(InitialSourceActorsState(), action.RegisterSourceActor{
		Actor: action.SourceActor{Actor: "a1", Thread: "t1"},
	})
	require.NoError(t, err)
	s, err = ReduceSourceActors(s, action.SetBreakableLines{Actor: "a1", Lines: []int{7, 3}})
	require.NoError(t, err)

	next, err := ReduceSourceActors(s, action.SetBreakableLines{Actor: "a1", Lines: []int{7, 3, 7}})
	require.NoError(t, err)
	assert.Same(t, s, next)
}
