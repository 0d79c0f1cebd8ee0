package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/state"
)

func TestInspect_Slice(t *testing.T) {
	db := seedJournal(t)

	code, stdout, stderr := execute(t, "--format", "json", "inspect", "--db", db, "--slice", "threads")
	require.Equal(t, ExitSuccess, code, stderr)

	var threads struct {
		Order   []string                  `json:"order"`
		Entries map[string]map[string]any `json:"entries"`
	}
	decodeResponse(t, stdout, &threads)
	assert.Equal(t, []string{"t1"}, threads.Order)
	assert.Equal(t, "Main Thread", threads.Entries["t1"]["name"])
}

func TestInspect_WholeSnapshot(t *testing.T) {
	db := seedJournal(t)

	code, stdout, _ := execute(t, "--format", "json", "inspect", "--db", db)
	require.Equal(t, ExitSuccess, code)

	var snap map[string]json.RawMessage
	decodeResponse(t, stdout, &snap)
	for _, name := range state.MustDefault().Names() {
		assert.Contains(t, snap, name)
	}
}

func TestInspect_At(t *testing.T) {
	db := seedJournal(t)

	code, stdout, _ := execute(t, "--format", "json", "inspect", "--db", db, "--slice", "sourceActors", "--at", "1")
	require.Equal(t, ExitSuccess, code)

	var actors struct {
		Order []string `json:"order"`
	}
	decodeResponse(t, stdout, &actors)
	assert.Empty(t, actors.Order, "a1 is registered at seq 2")
}

func TestInspect_TextIsIndented(t *testing.T) {
	db := seedJournal(t)

	code, stdout, _ := execute(t, "inspect", "--db", db, "--slice", "tabs")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "\n  ")
	assert.Contains(t, stdout, "http://example.com/app.js")
}

func TestInspect_Errors(t *testing.T) {
	db := seedJournal(t)

	code, _, stderr := execute(t, "inspect", "--db", db, "--slice", "console")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, `unknown slice "console"`)

	code, _, stderr = execute(t, "inspect", "--db", db, "--at", "-1")
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "--at must not be negative")
}
