package harness

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/engine"
	"github.com/roach88/dbgstate/internal/state"
	"github.com/roach88/dbgstate/internal/store"
	"github.com/roach88/dbgstate/internal/testutil"
)

// Harness runs one scenario against a journaling controller.
type Harness struct {
	registry *state.Registry
	store    *store.Store
	ctrl     *engine.Controller
	clock    *testutil.DeterministicClock
	ids      *testutil.SequentialIDs
	logger   *slog.Logger
	requests map[string]string
}

// Run executes a scenario and returns the result.
//
// Every scenario runs against a fresh in-memory journal with a
// deterministic clock and request ids, so the trace and the final
// snapshot are identical across runs. After the last step the journal is
// replayed from scratch and must reach the same snapshot digest.
//
// Step and assertion failures are reported in the Result; the error return
// is reserved for infrastructure failures.
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	reg, err := state.Default()
	if err != nil {
		return nil, err
	}

	h := &Harness{
		registry: reg,
		store:    st,
		clock:    testutil.NewDeterministicClock(),
		ids:      testutil.NewSequentialIDs(scenario.RequestPrefix),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		requests: map[string]string{},
	}
	h.ctrl = engine.New(reg,
		engine.WithJournal(st),
		engine.WithClock(h.clock),
		engine.WithRequestIDs(h.ids),
		engine.WithDigests(true),
		engine.WithLogger(h.logger),
	)

	result := NewResult()
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		h.executeStep(ctx, i, step, result)
	}

	final := h.ctrl.Snapshot()
	digest, err := state.Digest(final)
	if err != nil {
		return nil, fmt.Errorf("digest final snapshot: %w", err)
	}
	result.Digest = digest
	result.Snapshot = final
	result.Requests = h.requests

	if err := h.verifyReplay(ctx, digest); err != nil {
		result.AddError(err.Error())
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions, reg) {
		result.AddError(msg)
	}
	return result, nil
}

// executeStep dispatches one step and checks its expectations.
func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	ev := TraceEvent{Step: i, Type: step.Dispatch}
	fail := func(format string, args ...any) {
		result.AddError(fmt.Sprintf("steps[%d] %s: ", i, step.Dispatch) + fmt.Sprintf(format, args...))
	}

	a, err := h.buildAction(step)
	if err != nil {
		ev.Error = string(engine.ErrCodeDecodeFailed)
		result.addTrace(ev)
		if step.ExpectError != string(engine.ErrCodeDecodeFailed) {
			fail("%v", err)
		}
		return
	}

	prev := h.ctrl.Snapshot()
	next, err := h.ctrl.Dispatch(ctx, a)
	if err != nil {
		code := engine.CodeOf(err)
		ev.Error = string(code)
		result.addTrace(ev)
		if step.ExpectError != string(code) {
			fail("%v", err)
		}
		h.logger.Debug("step rejected", "step", i, "type", step.Dispatch, "code", code)
		return
	}

	if action.Known(a.Type()) {
		ev.Seq = h.clock.Current()
	}
	ev.Changed = h.registry.Changed(prev, next)
	result.addTrace(ev)

	if step.ExpectError != "" {
		fail("expected %s, dispatch succeeded", step.ExpectError)
	}
	if step.Unchanged && next != prev {
		fail("expected the same snapshot, slices %v changed", ev.Changed)
	}
	if len(step.Changed) > 0 && !slices.Equal(step.Changed, ev.Changed) {
		fail("expected changed %v, got %v", step.Changed, ev.Changed)
	}

	h.logger.Debug("step completed", "step", i, "type", step.Dispatch, "seq", ev.Seq, "changed", ev.Changed)
}

// buildAction decodes a step into an action. Unregistered types become
// unknown actions.
func (h *Harness) buildAction(step Step) (action.Action, error) {
	payload := make(map[string]any, len(step.Payload)+3)
	for k, v := range step.Payload {
		payload[k] = v
	}
	if step.Request != "" {
		payload["request_id"] = h.requestID(step.Request)
		payload["status"] = step.Status
		if step.Error != "" {
			payload["error"] = step.Error
		}
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return action.DecodeLenient(action.Envelope{Type: action.Type(step.Dispatch), Payload: raw})
}

// requestID returns the id generated for a request name, generating one
// on first use.
func (h *Harness) requestID(name string) string {
	if id, ok := h.requests[name]; ok {
		return id
	}
	id := h.ids.Generate()
	h.requests[name] = id
	return id
}

// verifyReplay rebuilds the snapshot from the journal and compares digests.
func (h *Harness) verifyReplay(ctx context.Context, want string) error {
	records, err := h.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	_, report, err := engine.Replay(ctx, h.registry, records)
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}
	if report.Digest != want {
		return fmt.Errorf("replay: journal of %d actions rebuilds digest %s, live snapshot has %s",
			report.Applied, report.Digest, want)
	}
	return nil
}
