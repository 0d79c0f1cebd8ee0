package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/dbgstate/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update bool
	Filter string
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario files",
		Long: `Run YAML and CUE scenario files against a fresh controller.

Each scenario dispatches its steps, checks what every step changed and
asserts on the final snapshot. The journal is then replayed and must
reach the same digest. When golden/<name>.golden exists next to a
scenario, the trace and the listed slices must match it.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  dbgstate test ./scenarios
  dbgstate test ./scenarios --filter "async_*"
  dbgstate test ./scenarios --update
  dbgstate test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(cmd.Context(), opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(ctx context.Context, opts *TestOptions, dir string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", dir))
	}

	result, err := harness.RunSuite(ctx, dir, harness.SuiteOptions{
		Filter: opts.Filter,
		Update: opts.Update,
	})
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenarios", err)
	}
	for _, sc := range result.Scenarios {
		opts.logger().Debug("scenario finished", "name", sc.Name, "pass", sc.Pass, "digest", sc.Digest)
	}

	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	text := func(w io.Writer) { writeTestText(w, result) }
	if result.Failed > 0 {
		msg := fmt.Sprintf("%d scenario(s) failed", result.Failed)
		if err := out.Failure("TEST_FAILED", msg, result, text); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}
	return out.Success(result, text)
}

func writeTestText(w io.Writer, result *harness.SuiteResult) {
	if result.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return
	}

	for _, sc := range result.Scenarios {
		switch {
		case sc.Pass && sc.GoldenUpdated:
			fmt.Fprintf(w, "✓ %s (golden updated)\n", sc.Name)
		case sc.Pass:
			fmt.Fprintf(w, "✓ %s\n", sc.Name)
		default:
			fmt.Fprintf(w, "✗ %s\n", sc.Name)
			for _, e := range sc.Errors {
				fmt.Fprintf(w, "  %s\n", e)
			}
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)
	if result.Failed == 0 {
		fmt.Fprintln(w, "✓ All scenarios passed")
	}
}
