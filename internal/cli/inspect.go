package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/dbgstate/internal/canon"
)

// InspectOptions holds flags for the inspect command.
type InspectOptions struct {
	*RootOptions
	Database string
	Slice    string
	At       int64
}

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &InspectOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Print the journaled snapshot",
		Long: `Replay the journal and print the resulting snapshot as canonical JSON.

Containers print as {"order": [...], "entries": {...}}.

Examples:
  dbgstate inspect --db ./session.db
  dbgstate inspect --db ./session.db --slice threads
  dbgstate inspect --db ./session.db --at 12 --slice pause`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.DB, "path to SQLite journal")
	cmd.Flags().StringVar(&opts.Slice, "slice", "", "print one slice only")
	cmd.Flags().Int64Var(&opts.At, "at", 0, "stop replay after this seq (0 = whole journal)")

	return cmd
}

func runInspect(ctx context.Context, opts *InspectOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.At < 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--at must not be negative, got %d", opts.At))
	}

	st, err := openJournal(opts.dbPath(opts.Database), false)
	if err != nil {
		return err
	}
	defer st.Close()

	reg, snap, report, err := replayJournal(ctx, st, opts.At)
	if err != nil {
		return err
	}
	opts.logger().Debug("journal replayed", "applied", report.Applied, "last_seq", report.LastSeq)

	var value any = snap
	if opts.Slice != "" {
		v, ok := reg.Lookup(snap, opts.Slice)
		if !ok {
			return NewExitError(ExitCommandError, fmt.Sprintf("unknown slice %q (see dbgstate slices)", opts.Slice))
		}
		value = v
	}

	data, err := canon.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	return out.Success(json.RawMessage(data), func(w io.Writer) {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			w.Write(data)
		} else {
			buf.WriteTo(w)
		}
		fmt.Fprintln(w)
	})
}
