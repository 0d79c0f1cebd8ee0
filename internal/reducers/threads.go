package reducers

import (
	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// ThreadsState holds every attached thread keyed by its actor.
type ThreadsState = resource.Container[action.ThreadID, action.Thread]

func InitialThreadsState() *ThreadsState {
	return resource.Empty[action.ThreadID, action.Thread]()
}

func ReduceThreads(s *ThreadsState, a action.Action) (*ThreadsState, error) {
	switch a := a.(type) {
	case action.AttachThread:
		if !resource.Valid(a.Thread.Actor) {
			return s, invalidKey("threads", "thread actor", a.Thread.Actor)
		}
		return s.Insert(a.Thread.Actor, a.Thread), nil

	case action.DetachThread:
		if !resource.Valid(a.Actor) {
			return s, invalidKey("threads", "thread actor", a.Actor)
		}
		return s.Remove(a.Actor), nil
	}
	return s, nil
}
