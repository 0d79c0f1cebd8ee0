package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSuite_Scenarios(t *testing.T) {
	result, err := RunSuite(context.Background(), "testdata/scenarios", SuiteOptions{})
	require.NoError(t, err)

	for _, sc := range result.Scenarios {
		assert.True(t, sc.Pass, "%s: %v", sc.Name, sc.Errors)
	}
	assert.Equal(t, 5, result.Total)
	assert.Equal(t, 5, result.Passed)
	assert.Zero(t, result.Failed)
}

func TestDiscover(t *testing.T) {
	files, err := Discover("testdata/scenarios", "")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("testdata/scenarios", "async_ledger.yaml"),
		filepath.Join("testdata/scenarios", "attach_and_register.yaml"),
		filepath.Join("testdata/scenarios", "navigate_resets.yaml"),
		filepath.Join("testdata/scenarios", "rejected_actions.cue"),
		filepath.Join("testdata/scenarios", "unknown_action.yaml"),
	}, files)

	files, err = Discover("testdata/scenarios", "a*")
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = Discover("testdata/scenarios", "[")
	assert.Error(t, err)
}

func TestGoldenPath(t *testing.T) {
	assert.Equal(t, filepath.Join("dir", "golden", "x.golden"), GoldenPath(filepath.Join("dir", "x.cue")))
}

func TestRunSuite_UpdateAndMismatch(t *testing.T) {
	dir := t.TempDir()
	src, err := os.ReadFile("testdata/scenarios/unknown_action.yaml")
	require.NoError(t, err)
	file := filepath.Join(dir, "unknown_action.yaml")
	require.NoError(t, os.WriteFile(file, src, 0o644))

	ctx := context.Background()

	result, err := RunSuite(ctx, dir, SuiteOptions{Update: true})
	require.NoError(t, err)
	require.Len(t, result.Scenarios, 1)
	assert.True(t, result.Scenarios[0].GoldenUpdated)
	assert.FileExists(t, GoldenPath(file))

	result, err = RunSuite(ctx, dir, SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Passed)

	require.NoError(t, os.WriteFile(GoldenPath(file), []byte(`{"scenario":"stale"}`), 0o644))
	result, err = RunSuite(ctx, dir, SuiteOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Scenarios[0].Errors[0], "golden file mismatch")
}

func TestRunSuite_BrokenScenario(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("name: x\n"), 0o644))

	result, err := RunSuite(context.Background(), dir, SuiteOptions{})
	require.NoError(t, err)
	require.Len(t, result.Scenarios, 1)
	assert.False(t, result.Scenarios[0].Pass)
	assert.Contains(t, result.Scenarios[0].Errors[0], "failed to load scenario")
}

func TestRunSuite_MissingDir(t *testing.T) {
	_, err := RunSuite(context.Background(), "testdata/nope", SuiteOptions{})
	assert.Error(t, err)
}
