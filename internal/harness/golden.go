package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/dbgstate/internal/canon"
	"github.com/roach88/dbgstate/internal/state"
)

// GoldenSnapshot is what a golden file records for a scenario run.
type GoldenSnapshot struct {
	Scenario string            `json:"scenario"`
	Trace    []TraceEvent      `json:"trace"`
	Requests map[string]string `json:"requests,omitempty"`
	Slices   map[string]any    `json:"slices,omitempty"`
}

// Golden builds the canonical golden bytes for a finished run: the trace,
// the request aliases and the slices the scenario lists under golden.
func Golden(scenario *Scenario, result *Result) ([]byte, error) {
	reg, err := state.Default()
	if err != nil {
		return nil, err
	}

	snap := GoldenSnapshot{
		Scenario: scenario.Name,
		Trace:    result.Trace,
	}
	if len(result.Requests) > 0 {
		snap.Requests = result.Requests
	}
	if len(scenario.Golden) > 0 {
		snap.Slices = make(map[string]any, len(scenario.Golden))
		for _, name := range scenario.Golden {
			if v, ok := reg.Lookup(result.Snapshot, name); ok {
				snap.Slices[name] = v
			}
		}
	}
	return canon.Marshal(snap)
}

// RunWithGolden executes a scenario and compares its golden bytes with
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, scenario *Scenario, result *Result) error {
	t.Helper()

	data, err := Golden(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return nil
}
