package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/resource"
)

// SourceActorsState holds every source actor keyed by its actor id.
type SourceActorsState = resource.Container[action.SourceActorID, action.SourceActor]

func InitialSourceActorsState() *SourceActorsState {
	return resource.Empty[action.SourceActorID, action.SourceActor]()
}

func ReduceSourceActors(s *SourceActorsState, a action.Action) (*SourceActorsState, error) {
	switch a := a.(type) {
	case action.RegisterSourceActor:
		sa := a.Actor
		if !resource.Valid(sa.Actor) {
			return s, invalidKey("sourceActors", "source actor", sa.Actor)
		}
		if sa.Thread == "" {
			return s, invalidKey("sourceActors", "thread", sa.Thread)
		}
		sa.BreakableLines = slices.Clone(sa.BreakableLines)
		return s.Insert(sa.Actor, sa), nil

	case action.RemoveSourceActors:
		doomed := make(map[action.SourceActorID]struct{}, len(a.Actors))
		for _, id := range a.Actors {
			if !resource.Valid(id) {
				return s, invalidKey("sourceActors", "source actor", id)
			}
			doomed[id] = struct{}{}
		}
		return s.RemoveWhere(func(id action.SourceActorID, _ action.SourceActor) bool {
			_, gone := doomed[id]
			return gone
		}), nil

	case action.SetBreakableLines:
		if !resource.Valid(a.Actor) {
			return s, invalidKey("sourceActors", "source actor", a.Actor)
		}
		cur, ok := s.Get(a.Actor)
		if !ok {
			return s, nil
		}
		lines := slices.Clone(a.Lines)
		slices.Sort(lines)
		lines = slices.Compact(lines)
		if slices.Equal(cur.BreakableLines, lines) {
			return s, nil
		}
		return s.Update(a.Actor, func(sa action.SourceActor) action.SourceActor {
			sa.BreakableLines = lines
			return sa
		}), nil

	case action.DetachThread:
		return s.RemoveWhere(func(_ action.SourceActorID, sa action.SourceActor) bool {
			return sa.Thread == a.Actor
		}), nil
	}
	return s, nil
}
