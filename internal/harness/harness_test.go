package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/engine"
)

func attachStep(actor string) Step {
	return Step{
		Dispatch: "ATTACH_THREAD",
		Payload:  map[string]any{"thread": map[string]any{"actor": actor}},
	}
}

func TestRun_TracesEveryStep(t *testing.T) {
	sc := &Scenario{
		Name: "trace",
		Steps: []Step{
			attachStep("t1"),
			{Dispatch: "@@redux/INIT", Unchanged: true},
			{Dispatch: "DETACH_THREAD", Payload: map[string]any{"actor": "t1"}, Changed: []string{"threads"}},
		},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, TraceEvent{Step: 0, Type: "ATTACH_THREAD", Seq: 1, Changed: []string{"threads"}}, result.Trace[0])
	assert.Equal(t, TraceEvent{Step: 1, Type: "@@redux/INIT", Seq: 0, Changed: []string{}}, result.Trace[1])
	assert.Equal(t, int64(2), result.Trace[2].Seq)
	assert.Len(t, result.Digest, 64)
	assert.Equal(t, 0, result.Snapshot.Threads.Len())
}

func TestRun_Deterministic(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/async_ledger.yaml")
	require.NoError(t, err)

	first, err := Run(sc)
	require.NoError(t, err)
	second, err := Run(sc)
	require.NoError(t, err)

	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, first.Trace, second.Trace)
	assert.Equal(t, map[string]string{"first": "load-1", "second": "load-2", "stale": "load-3"}, first.Requests)
}

func TestRun_StepExpectationFailures(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		wantErr string
	}{
		{
			name:    "wrong changed list",
			step:    Step{Dispatch: "ADD_TAB", Payload: map[string]any{"url": "a.js"}, Changed: []string{"threads"}},
			wantErr: "expected changed [threads], got [tabs]",
		},
		{
			name:    "unchanged violated",
			step:    Step{Dispatch: "ADD_TAB", Payload: map[string]any{"url": "a.js"}, Unchanged: true},
			wantErr: "expected the same snapshot",
		},
		{
			name:    "expected error did not happen",
			step:    Step{Dispatch: "ADD_TAB", Payload: map[string]any{"url": "a.js"}, ExpectError: "REDUCE_FAILED"},
			wantErr: "expected REDUCE_FAILED, dispatch succeeded",
		},
		{
			name:    "unexpected reducer error",
			step:    attachStep(""),
			wantErr: "steps[0] ATTACH_THREAD",
		},
		{
			name:    "unexpected decode error",
			step:    Step{Dispatch: "ADD_TAB", Payload: map[string]any{"url": 7}},
			wantErr: "steps[0] ADD_TAB",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Run(&Scenario{Name: "x", Steps: []Step{tt.step}})
			require.NoError(t, err)

			assert.False(t, result.Pass)
			require.NotEmpty(t, result.Errors)
			assert.Contains(t, result.Errors[0], tt.wantErr)
		})
	}
}

func TestRun_ExpectedErrorsAreTraced(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/rejected_actions.cue")
	require.NoError(t, err)

	result, err := Run(sc)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)

	require.Len(t, result.Trace, 3)
	assert.Equal(t, string(engine.ErrCodeReduceFailed), result.Trace[0].Error)
	assert.Equal(t, string(engine.ErrCodeDecodeFailed), result.Trace[1].Error)
	assert.Empty(t, result.Trace[2].Error)
	assert.Equal(t, int64(1), result.Trace[2].Seq, "rejected steps consume no seq")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunContext(ctx, &Scenario{Name: "x", Steps: []Step{attachStep("t1")}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_RequestIDsFollowPrefix(t *testing.T) {
	sc := &Scenario{
		Name: "default_prefix",
		Steps: []Step{{
			Dispatch: "LOAD_SOURCE_TEXT",
			Payload:  map[string]any{"source_id": "s1"},
			Request:  "r",
			Status:   "start",
		}},
		Assertions: []Assertion{{Type: AssertLedger, IDs: []string{"r"}}},
	}

	result, err := Run(sc)
	require.NoError(t, err)
	require.True(t, result.Pass, result.Errors)
	assert.Equal(t, map[string]string{"r": "req-1"}, result.Requests)
	assert.Equal(t, []string{"req-1"}, result.Snapshot.AsyncRequests.IDs())
}
