package reducers

import (
	"slices"

	"github.com/roach88/dbgstate/internal/action"
)

// EventListenersState holds DOM event breakpoint settings.
type EventListenersState struct {
	Active     []string               `json:"active"`
	Categories []action.EventCategory `json:"categories"`
	Expanded   []string               `json:"expanded"`
	LogEvents  bool                   `json:"log_events"`
	Loading    bool                   `json:"loading,omitempty"`
}

func InitialEventListenersState() *EventListenersState {
	return &EventListenersState{
		Active:     []string{},
		Categories: []action.EventCategory{},
		Expanded:   []string{},
	}
}

func ReduceEventListeners(s *EventListenersState, a action.Action) (*EventListenersState, error) {
	switch a := a.(type) {
	case action.UpdateEventListeners:
		active := dedupe(a.Active)
		if active == nil {
			active = []string{}
		}
		if slices.Equal(active, s.Active) {
			return s, nil
		}
		next := *s
		next.Active = active
		return &next, nil

	case action.UpdateEventListenerExpanded:
		expanded := dedupe(a.Expanded)
		if expanded == nil {
			expanded = []string{}
		}
		if slices.Equal(expanded, s.Expanded) {
			return s, nil
		}
		next := *s
		next.Expanded = expanded
		return &next, nil

	case action.ToggleEventLogging:
		if s.LogEvents == a.LogEvents {
			return s, nil
		}
		next := *s
		next.LogEvents = a.LogEvents
		return &next, nil

	case action.ReceiveEventListenerTypes:
		next := *s
		switch a.Status {
		case action.StatusStart:
			if s.Loading {
				return s, nil
			}
			next.Loading = true
		case action.StatusError:
			if !s.Loading {
				return s, nil
			}
			next.Loading = false
		default:
			next.Loading = false
			next.Categories = slices.Clone(a.Categories)
			if next.Categories == nil {
				next.Categories = []action.EventCategory{}
			}
		}
		return &next, nil
	}
	return s, nil
}
