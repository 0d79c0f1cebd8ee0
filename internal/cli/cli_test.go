package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// response mirrors CLIResponse with the data left raw.
type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *CLIError       `json:"error"`
}

// execute runs the root command and returns exit code, stdout and stderr.
func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := Execute(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func decodeResponse(t *testing.T, out string, data any) response {
	t.Helper()
	var resp response
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	if data != nil && len(resp.Data) > 0 {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}
	return resp
}

func writeLines(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "actions.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

const (
	lineAttach   = `{"type":"ATTACH_THREAD","payload":{"thread":{"actor":"t1","name":"Main Thread","kind":"mainThread"}}}`
	lineRegister = `{"type":"REGISTER_SOURCE_ACTOR","payload":{"actor":{"actor":"a1","thread":"t1","source":"s1"}}}`
	lineUnknown  = `{"type":"@@redux/INIT"}`
	lineAddTab   = `{"type":"ADD_TAB","payload":{"url":"http://example.com/app.js"}}`
	lineBadActor = `{"type":"ATTACH_THREAD","payload":{"thread":{"actor":""}}}`
)

// seedJournal dispatches the standard session into a new journal.
func seedJournal(t *testing.T) string {
	t.Helper()
	db := filepath.Join(t.TempDir(), "session.db")
	code, _, stderr := execute(t, "dispatch", "--db", db, writeLines(t, lineAttach, lineRegister, lineUnknown, lineAddTab))
	require.Equal(t, ExitSuccess, code, stderr)
	return db
}
