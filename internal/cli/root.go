package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/dbgstate/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	// Config supplies flag defaults. Commands built without a root
	// command see the zero Config.
	Config config.Config

	// Logger is built from Config and --verbose before any command runs.
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dbgstate CLI. Flag
// defaults come from the DBGSTATE_* environment.
func NewRootCommand() *cobra.Command {
	cfg, cfgErr := config.Load()
	opts := &RootOptions{Config: cfg}

	cmd := &cobra.Command{
		Use:   "dbgstate",
		Short: "dbgstate - debugger state aggregation",
		Long: `Drive the debugger state core from the command line.

Actions are journaled to SQLite; the journal can be replayed, inspected
and verified against the digests recorded with each action.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfgErr != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", cfgErr)
			}
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			logger, err := opts.Config.Logger(cmd.ErrOrStderr())
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid configuration", err)
			}
			if opts.Verbose {
				logger = slog.New(debugHandler(opts.Config, cmd.ErrOrStderr()))
			}
			opts.Logger = logger
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output (debug logging)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewDispatchCommand(opts))
	cmd.AddCommand(NewReplayCommand(opts))
	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewSlicesCommand(opts))

	return cmd
}

// Execute runs the root command with args and returns the process exit
// code. Errors are reported on stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return GetExitCode(err)
	}
	return ExitSuccess
}

func debugHandler(cfg config.Config, w io.Writer) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}
	if cfg.LogFormat == config.FormatJSON {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// logger returns the configured logger, or one that discards everything
// when the command runs without its root.
func (o *RootOptions) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o.Logger
}

// dbPath returns flag if set, else the configured database.
func (o *RootOptions) dbPath(flag string) string {
	if flag != "" {
		return flag
	}
	return o.Config.DB
}

func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
