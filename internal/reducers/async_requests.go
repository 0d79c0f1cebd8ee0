package reducers

import (
	"encoding/json"
	"slices"

	"github.com/roach88/dbgstate/internal/action"
)

// AsyncRequestsState is the ledger of requests currently in flight, in the
// order they started. A request id appears at most once. Entries for
// requests that never settle stay until the session ends.
type AsyncRequestsState struct {
	ids []string
}

func InitialAsyncRequestsState() *AsyncRequestsState {
	return &AsyncRequestsState{}
}

// IDs returns a copy of the in-flight request ids.
func (s *AsyncRequestsState) IDs() []string {
	return slices.Clone(s.ids)
}

func (s *AsyncRequestsState) Len() int {
	return len(s.ids)
}

func (s *AsyncRequestsState) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

// Start records id as in flight. A duplicate start is a no-op.
func (s *AsyncRequestsState) Start(id string) *AsyncRequestsState {
	if s.Has(id) {
		return s
	}
	ids := make([]string, len(s.ids), len(s.ids)+1)
	copy(ids, s.ids)
	return &AsyncRequestsState{ids: append(ids, id)}
}

// Settle drops id from the ledger. Settling an unknown id is a no-op.
func (s *AsyncRequestsState) Settle(id string) *AsyncRequestsState {
	i := slices.Index(s.ids, id)
	if i < 0 {
		return s
	}
	return &AsyncRequestsState{ids: slices.Delete(slices.Clone(s.ids), i, i+1)}
}

func (s *AsyncRequestsState) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

func (s *AsyncRequestsState) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	s.ids = nil
	for _, id := range ids {
		if id == "" || slices.Contains(s.ids, id) {
			return invalidKey("asyncRequests", "request id", id)
		}
		s.ids = append(s.ids, id)
	}
	return nil
}

// ReduceAsyncRequests tracks the phase of every async action that carries
// a request id, whatever slice the action is addressed to.
func ReduceAsyncRequests(s *AsyncRequestsState, a action.Action) (*AsyncRequestsState, error) {
	aa, ok := a.(action.AsyncAction)
	if !ok {
		return s, nil
	}
	as := aa.AsyncState()
	if as.RequestID == "" {
		return s, nil
	}
	switch as.Status {
	case action.StatusStart:
		return s.Start(as.RequestID), nil
	case action.StatusDone, action.StatusError:
		return s.Settle(as.RequestID), nil
	default:
		return s, invalidPayload("asyncRequests", "request %q: unknown status %q", as.RequestID, as.Status)
	}
}
