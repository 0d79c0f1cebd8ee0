package harness

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SuiteOptions controls RunSuite.
type SuiteOptions struct {
	// Filter is a glob matched against scenario file names without
	// extension. Empty matches everything.
	Filter string

	// Update rewrites golden files instead of comparing against them.
	Update bool
}

// SuiteResult summarises a directory of scenarios.
type SuiteResult struct {
	Scenarios []ScenarioOutcome `json:"scenarios"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
	Total     int               `json:"total"`
}

// ScenarioOutcome is the verdict for one scenario file.
type ScenarioOutcome struct {
	Name          string   `json:"name"`
	Path          string   `json:"path"`
	Pass          bool     `json:"pass"`
	GoldenUpdated bool     `json:"golden_updated,omitempty"`
	Digest        string   `json:"digest,omitempty"`
	Errors        []string `json:"errors,omitempty"`
}

// Discover returns the scenario files under dir in lexical order.
func Discover(dir, filter string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" && ext != ".cue" {
			return nil
		}

		if filter != "" {
			name := strings.TrimSuffix(d.Name(), ext)
			matched, err := filepath.Match(filter, name)
			if err != nil {
				return fmt.Errorf("invalid filter pattern: %w", err)
			}
			if !matched {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	return files, err
}

// GoldenPath returns where the golden file of a scenario file lives:
// golden/<file name>.golden next to it.
func GoldenPath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

// RunSuite runs every scenario under dir. A scenario passes when its own
// expectations hold and, if a golden file exists, its golden bytes match.
func RunSuite(ctx context.Context, dir string, opts SuiteOptions) (*SuiteResult, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("scenarios directory: %w", err)
	}
	files, err := Discover(dir, opts.Filter)
	if err != nil {
		return nil, err
	}

	result := &SuiteResult{Scenarios: make([]ScenarioOutcome, 0, len(files))}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		outcome := runFile(ctx, file, opts)
		result.Scenarios = append(result.Scenarios, outcome)
		result.Total++
		if outcome.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}
	return result, nil
}

func runFile(ctx context.Context, file string, opts SuiteOptions) ScenarioOutcome {
	outcome := ScenarioOutcome{Name: filepath.Base(file), Path: file}
	failed := func(format string, args ...any) ScenarioOutcome {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf(format, args...))
		return outcome
	}

	scenario, err := LoadScenario(file)
	if err != nil {
		return failed("failed to load scenario: %v", err)
	}
	outcome.Name = scenario.Name

	result, err := RunContext(ctx, scenario)
	if err != nil {
		return failed("execution failed: %v", err)
	}
	outcome.Digest = result.Digest
	outcome.Errors = append(outcome.Errors, result.Errors...)

	data, err := Golden(scenario, result)
	if err != nil {
		return failed("golden: %v", err)
	}
	goldenPath := GoldenPath(file)

	switch {
	case opts.Update:
		if err := os.MkdirAll(filepath.Dir(goldenPath), 0o755); err != nil {
			return failed("failed to create golden directory: %v", err)
		}
		if err := os.WriteFile(goldenPath, data, 0o644); err != nil {
			return failed("failed to write golden file: %v", err)
		}
		outcome.GoldenUpdated = true

	default:
		want, err := os.ReadFile(goldenPath)
		switch {
		case os.IsNotExist(err):
			// No golden file: expectations alone decide.
		case err != nil:
			return failed("failed to read golden file: %v", err)
		case !bytes.Equal(bytes.TrimSpace(want), data):
			return failed("golden file mismatch (run with --update to regenerate)")
		}
	}

	outcome.Pass = len(outcome.Errors) == 0
	return outcome
}
