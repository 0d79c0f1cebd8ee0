package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dbgstate/internal/engine"
	"github.com/roach88/dbgstate/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplayResult holds the replay outcome.
type ReplayResult struct {
	engine.ReplayReport

	Records int64             `json:"records"`
	Types   []store.TypeCount `json:"types"`

	// Divergence describes where replay stopped, if it did.
	Divergence *ReplayDivergence `json:"divergence,omitempty"`
}

// ReplayDivergence is the first record replay could not reproduce.
type ReplayDivergence struct {
	Code    string `json:"code"`
	Seq     int64  `json:"seq"`
	Action  string `json:"action"`
	Message string `json:"message"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay the journal and verify digests",
		Long: `Rebuild the snapshot from the journal and verify it.

Every record is decoded and applied from the initial snapshot. Records
that carry a digest are checked against the snapshot they produce.

Exit codes:
  0 - The journal replays and every recorded digest matches
  1 - Replay diverged (digest mismatch, undecodable or rejected record)
  2 - Command error (database not found, etc.)

Examples:
  dbgstate replay --db ./session.db
  dbgstate replay --db ./session.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.DB, "path to SQLite journal")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := openJournal(opts.dbPath(opts.Database), false)
	if err != nil {
		return err
	}
	defer st.Close()

	last, err := st.LastSeq(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	types, err := st.CountByType(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read journal", err)
	}

	_, _, report, replayErr := replayJournal(ctx, st, 0)
	result := ReplayResult{ReplayReport: report, Types: types}
	for _, tc := range types {
		result.Records += tc.Count
	}
	if result.Types == nil {
		result.Types = []store.TypeCount{}
	}

	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	if replayErr != nil {
		var re *engine.RuntimeError
		if !errors.As(replayErr, &re) {
			return replayErr
		}
		result.Divergence = &ReplayDivergence{
			Code:    string(re.Code),
			Seq:     re.Seq,
			Action:  string(re.Action),
			Message: re.Error(),
		}
		if err := out.Failure(string(re.Code), "journal does not replay", result, func(w io.Writer) {
			writeReplayText(w, result, last)
		}); err != nil {
			return err
		}
		return replayErr
	}

	return out.Success(result, func(w io.Writer) { writeReplayText(w, result, last) })
}

func writeReplayText(w io.Writer, r ReplayResult, last int64) {
	fmt.Fprintf(w, "Journal: %d record(s), last seq %d\n", r.Records, last)
	for _, tc := range r.Types {
		fmt.Fprintf(w, "  %-30s %d\n", tc.Type, tc.Count)
	}
	fmt.Fprintf(w, "Applied:  %d\n", r.Applied)
	fmt.Fprintf(w, "Verified: %d\n", r.Verified)

	if d := r.Divergence; d != nil {
		fmt.Fprintf(w, "✗ Diverged at seq %d (%s): %s\n", d.Seq, d.Action, d.Code)
		return
	}
	fmt.Fprintf(w, "Digest:   %s\n", r.Digest)
	fmt.Fprintln(w, "✓ Journal verified")
}
