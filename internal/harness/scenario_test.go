package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/state"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_YAML(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/async_ledger.yaml")
	require.NoError(t, err)

	assert.Equal(t, "async_ledger", sc.Name)
	assert.Equal(t, "load", sc.RequestPrefix)
	require.Len(t, sc.Steps, 5)
	assert.Equal(t, "LOAD_SOURCE_TEXT", sc.Steps[0].Dispatch)
	assert.Equal(t, "first", sc.Steps[0].Request)
	assert.Equal(t, "start", sc.Steps[0].Status)
	assert.Equal(t, []string{"sources", "asyncRequests"}, sc.Steps[0].Changed)
	assert.Equal(t, "timeout", sc.Steps[4].Error)
	assert.Equal(t, []string{"asyncRequests"}, sc.Golden)
	require.Len(t, sc.Assertions, 4)
	assert.Equal(t, AssertLedger, sc.Assertions[0].Type)
}

func TestLoadScenario_CUE(t *testing.T) {
	sc, err := LoadScenario("testdata/scenarios/rejected_actions.cue")
	require.NoError(t, err)

	assert.Equal(t, "rejected_actions", sc.Name)
	require.Len(t, sc.Steps, 3)
	assert.Equal(t, "REDUCE_FAILED", sc.Steps[0].ExpectError)
	assert.Equal(t, map[string]any{"thread": map[string]any{"actor": ""}}, sc.Steps[0].Payload)
	assert.Equal(t, []string{"threads"}, sc.Steps[2].Changed)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			file:    "typo.yaml",
			content: "name: x\ndescription: d\nstep:\n  - dispatch: A\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "no steps",
			file:    "empty.yaml",
			content: "name: x\ndescription: d\nsteps: []\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "unknown slice",
			file:    "slice.yaml",
			content: "name: x\ndescription: d\nsteps:\n  - dispatch: A\n    changed: [nope]\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "bad status",
			file:    "status.yaml",
			content: "name: x\ndescription: d\nsteps:\n  - dispatch: A\n    request: r\n    status: pending\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "status without request",
			file:    "req.yaml",
			content: "name: x\ndescription: d\nsteps:\n  - dispatch: A\n    status: start\n",
			wantErr: "request and status must be given together",
		},
		{
			name:    "changed and unchanged",
			file:    "both.yaml",
			content: "name: x\ndescription: d\nsteps:\n  - dispatch: A\n    changed: [threads]\n    unchanged: true\n",
			wantErr: "exclusive",
		},
		{
			name:    "assertion missing keys",
			file:    "keys.yaml",
			content: "name: x\ndescription: d\nsteps:\n  - dispatch: A\nassertions:\n  - type: keys\n    slice: threads\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "cue syntax",
			file:    "broken.cue",
			content: "name: \"x\"\nsteps: [",
			wantErr: "failed to compile CUE",
		},
		{
			name:    "cue extra field",
			file:    "extra.cue",
			content: "name: \"x\"\ndescription: \"d\"\nsteps: [{dispatch: \"A\"}]\ntags: \"t\"\n",
			wantErr: "invalid scenario",
		},
		{
			name:    "extension",
			file:    "scenario.json",
			content: "{}",
			wantErr: "unsupported scenario file extension",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.file, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestSchema_ListsEverySlice(t *testing.T) {
	for _, name := range state.MustDefault().Names() {
		content := "name: x\ndescription: d\nsteps:\n  - dispatch: A\ngolden: [" + name + "]\n"
		_, err := ParseYAML([]byte(content))
		assert.NoError(t, err, "schema rejects slice %s", name)
	}
}
