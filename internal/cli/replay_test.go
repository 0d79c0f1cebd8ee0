package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dbgstate/internal/store"
)

func TestReplay_Verifies(t *testing.T) {
	db := seedJournal(t)

	code, stdout, stderr := execute(t, "--format", "json", "replay", "--db", db)
	require.Equal(t, ExitSuccess, code, stderr)

	var result ReplayResult
	resp := decodeResponse(t, stdout, &result)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, int64(3), result.Records)
	assert.Equal(t, 3, result.Applied)
	assert.Equal(t, 3, result.Verified)
	assert.Equal(t, int64(3), result.LastSeq)
	assert.Nil(t, result.Divergence)
	assert.Equal(t, []store.TypeCount{
		{Type: "ADD_TAB", Count: 1},
		{Type: "ATTACH_THREAD", Count: 1},
		{Type: "REGISTER_SOURCE_ACTOR", Count: 1},
	}, result.Types)
}

func TestReplay_Text(t *testing.T) {
	db := seedJournal(t)

	code, stdout, _ := execute(t, "replay", "--db", db)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Journal: 3 record(s), last seq 3")
	assert.Contains(t, stdout, "✓ Journal verified")
}

func TestReplay_DigestMismatch(t *testing.T) {
	db := seedJournal(t)

	st, err := store.Open(db)
	require.NoError(t, err)
	_, err = st.DB().Exec(`UPDATE actions SET digest = ? WHERE seq = 2`, "0000")
	require.NoError(t, err)
	require.NoError(t, st.Close())

	code, stdout, stderr := execute(t, "--format", "json", "replay", "--db", db)
	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stderr, "journal does not replay")

	var result ReplayResult
	resp := decodeResponse(t, stdout, &result)
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, result.Divergence)
	assert.Equal(t, "DIGEST_MISMATCH", result.Divergence.Code)
	assert.Equal(t, int64(2), result.Divergence.Seq)
	assert.Equal(t, "REGISTER_SOURCE_ACTOR", result.Divergence.Action)
	assert.Equal(t, 1, result.Applied)
}

func TestReplay_DatabaseNotFound(t *testing.T) {
	db := filepath.Join(t.TempDir(), "missing.db")

	code, _, stderr := execute(t, "replay", "--db", db)
	assert.Equal(t, ExitCommandError, code)
	assert.Contains(t, stderr, "database not found")
	assert.NoFileExists(t, db, "replay must not create a journal")
}
