package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// ThreadPause is the pause state of a single stopped thread.
type ThreadPause struct {
	Why             string         `json:"why"`
	Frames          []action.Frame `json:"frames"`
	SelectedFrameID string         `json:"selected_frame_id,omitempty"`
}

// PauseState tracks which threads are stopped and the exception settings.
// A thread absent from Threads is running.
type PauseState struct {
	Threads                 *resource.Container[action.ThreadID, ThreadPause] `json:"threads"`
	PauseOnExceptions       bool                                              `json:"pause_on_exceptions"`
	PauseOnCaughtExceptions bool                                              `json:"pause_on_caught_exceptions"`
}

func InitialPauseState() *PauseState {
	return &PauseState{Threads: resource.Empty[action.ThreadID, ThreadPause]()}
}

func (s *PauseState) withThreads(threads *resource.Container[action.ThreadID, ThreadPause]) *PauseState {
	if threads == s.Threads {
		return s
	}
	next := *s
	next.Threads = threads
	return &next
}

func ReducePause(s *PauseState, a action.Action) (*PauseState, error) {
	switch a := a.(type) {
	case action.Paused:
		if !resource.Valid(a.Thread) {
			return s, invalidKey("pause", "thread", a.Thread)
		}
		tp := ThreadPause{Why: a.Why, Frames: slices.Clone(a.Frames)}
		if len(tp.Frames) > 0 {
			tp.SelectedFrameID = tp.Frames[0].ID
		}
		return s.withThreads(s.Threads.Insert(a.Thread, tp)), nil

	case action.Resumed:
		if !resource.Valid(a.Thread) {
			return s, invalidKey("pause", "thread", a.Thread)
		}
		return s.withThreads(s.Threads.Remove(a.Thread)), nil

	case action.DetachThread:
		if !resource.Valid(a.Actor) {
			return s, nil
		}
		return s.withThreads(s.Threads.Remove(a.Actor)), nil

	case action.SelectFrame:
		if !resource.Valid(a.Thread) {
			return s, invalidKey("pause", "thread", a.Thread)
		}
		tp, ok := s.Threads.Get(a.Thread)
		if !ok || tp.SelectedFrameID == a.FrameID {
			return s, nil
		}
		if !slices.ContainsFunc(tp.Frames, func(f action.Frame) bool { return f.ID == a.FrameID }) {
			return s, invalidPayload("pause", "thread %q has no frame %q", a.Thread, a.FrameID)
		}
		return s.withThreads(s.Threads.Update(a.Thread, func(tp ThreadPause) ThreadPause {
			tp.SelectedFrameID = a.FrameID
			return tp
		})), nil

	case action.SetPauseOnExceptions:
		if s.PauseOnExceptions == a.ShouldPause && s.PauseOnCaughtExceptions == a.ShouldPauseOnCaught {
			return s, nil
		}
		next := *s
		next.PauseOnExceptions = a.ShouldPause
		next.PauseOnCaughtExceptions = a.ShouldPauseOnCaught
		return &next, nil
	}
	return s, nil
}
