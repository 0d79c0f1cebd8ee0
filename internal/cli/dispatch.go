package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/engine"
	"github.com/roach88/dbgstate/internal/state"
)

// DispatchOptions holds flags for the dispatch command.
type DispatchOptions struct {
	*RootOptions
	Database string
	Queued   bool
}

// DispatchResult summarises one dispatch run.
type DispatchResult struct {
	// Read is the number of actions read from the input.
	Read int `json:"read"`

	// Applied is the number of actions journaled.
	Applied int `json:"applied"`

	// Rejected is the number of known actions a reducer refused.
	Rejected int `json:"rejected"`

	// Unknown is the number of actions with an unregistered type.
	Unknown int `json:"unknown"`

	LastSeq int64  `json:"last_seq"`
	Digest  string `json:"digest"`

	// Changed counts, per slice, how many dispatches changed it.
	Changed map[string]int `json:"changed"`
}

// NewDispatchCommand creates the dispatch command.
func NewDispatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DispatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dispatch [file|-]",
		Short: "Dispatch actions and journal them",
		Long: `Dispatch actions read as JSON lines and append them to the journal.

Each line is an action envelope:

  {"type": "ATTACH_THREAD", "payload": {"thread": {"actor": "t1"}}}

The journal is replayed first, so a run continues where the previous one
stopped. Unregistered types are accepted and change nothing. With
--queued the actions go through the controller's event queue instead of
being dispatched one by one.

Exit codes:
  0 - Every known action was applied
  1 - One or more actions were rejected by a reducer
  2 - Command error (unreadable input, malformed line, journal error)

Examples:
  dbgstate dispatch --db ./session.db actions.jsonl
  cat actions.jsonl | dbgstate dispatch --db ./session.db -`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "-"
			if len(args) == 1 {
				input = args[0]
			}
			return runDispatch(cmd.Context(), opts, input, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", rootOpts.Config.DB, "path to SQLite journal")
	cmd.Flags().BoolVar(&opts.Queued, "queued", rootOpts.Config.Queued, "dispatch through the event queue")

	return cmd
}

func runDispatch(ctx context.Context, opts *DispatchOptions, input string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger()

	actions, err := readActions(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	st, err := openJournal(opts.dbPath(opts.Database), true)
	if err != nil {
		return err
	}
	defer st.Close()

	reg, err := state.Default()
	if err != nil {
		return err
	}
	// Only reducer rejections are per-action outcomes; anything else from
	// the event loop fails the command.
	var loopErr error
	ctrl, report, err := engine.Resume(ctx, reg, st,
		engine.WithDigests(opts.Config.Digests),
		engine.WithLogger(logger),
		engine.WithErrorHandler(func(_ engine.Event, err error) {
			if loopErr == nil && engine.CodeOf(err) != engine.ErrCodeReduceFailed {
				loopErr = err
			}
		}),
	)
	if err != nil {
		return WrapExitError(ExitFailure, "journal does not replay", err)
	}
	logger.Debug("journal resumed", "applied", report.Applied, "last_seq", report.LastSeq)

	result := DispatchResult{Read: len(actions), Changed: map[string]int{}}
	unsubscribe := ctrl.Subscribe(func(ch engine.Change) {
		for _, name := range ch.Changed {
			result.Changed[name]++
		}
	})
	defer unsubscribe()

	var known int
	for _, a := range actions {
		if action.Known(a.Type()) {
			known++
		} else {
			result.Unknown++
		}
	}

	if opts.Queued {
		for _, a := range actions {
			if err := ctrl.Submit(a); err != nil {
				return WrapExitError(ExitCommandError, "failed to enqueue action", err)
			}
		}
		ctrl.Stop()
		if err := ctrl.Run(ctx); err != nil {
			return WrapExitError(ExitCommandError, "event loop failed", err)
		}
		if loopErr != nil {
			return WrapExitError(ExitCommandError, "queued action failed", loopErr)
		}
	} else {
		for i, a := range actions {
			if _, err := ctrl.Dispatch(ctx, a); err != nil {
				if engine.CodeOf(err) != engine.ErrCodeReduceFailed {
					return WrapExitError(ExitCommandError, fmt.Sprintf("action %d", i+1), err)
				}
				logger.Warn("action rejected", "index", i+1, "type", a.Type(), "error", err)
			}
		}
	}

	// A seq is consumed only by an applied action, so the clock tells how
	// many of the known actions made it into the journal.
	result.LastSeq = ctrl.Clock().Current()
	result.Applied = int(result.LastSeq - report.LastSeq)
	result.Rejected = known - result.Applied

	digest, err := state.Digest(ctrl.Snapshot())
	if err != nil {
		return err
	}
	result.Digest = digest

	out := newFormatter(opts.RootOptions, cmd.OutOrStdout())
	text := func(w io.Writer) { writeDispatchText(w, result) }
	if result.Rejected > 0 {
		msg := fmt.Sprintf("%d action(s) rejected", result.Rejected)
		if err := out.Failure(string(engine.ErrCodeReduceFailed), msg, result, text); err != nil {
			return err
		}
		return NewExitError(ExitFailure, msg)
	}
	return out.Success(result, text)
}

// readActions decodes every non-blank line of input ("-" is stdin).
func readActions(input string, stdin io.Reader) ([]action.Action, error) {
	r := stdin
	if input != "-" {
		f, err := os.Open(input)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open input", err)
		}
		defer f.Close()
		r = f
	}

	var actions []action.Action
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		var env action.Envelope
		if err := json.Unmarshal([]byte(text), &env); err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("line %d: malformed envelope", line), err)
		}
		if env.Type == "" {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("line %d: missing type", line))
		}
		if len(env.Payload) == 0 {
			env.Payload = json.RawMessage("{}")
		}

		a, err := action.DecodeLenient(env)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("line %d: %s", line, env.Type), err)
		}
		actions = append(actions, a)
	}
	if err := scanner.Err(); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to read input", err)
	}
	return actions, nil
}

func writeDispatchText(w io.Writer, r DispatchResult) {
	fmt.Fprintf(w, "Dispatched %d action(s): %d applied, %d rejected, %d unknown\n",
		r.Read, r.Applied, r.Rejected, r.Unknown)
	fmt.Fprintf(w, "Last seq: %d\n", r.LastSeq)
	fmt.Fprintf(w, "Digest:   %s\n", r.Digest)

	if len(r.Changed) == 0 {
		return
	}
	names := make([]string, 0, len(r.Changed))
	for name := range r.Changed {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Changed slices:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-26s %d\n", name, r.Changed[name])
	}
}
