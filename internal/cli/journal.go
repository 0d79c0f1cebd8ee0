package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/roach88/dbgstate/internal/engine"
	"github.com/roach88/dbgstate/internal/state"
	"github.com/roach88/dbgstate/internal/store"
)

// openJournal opens the journal at path. Read-only commands pass
// create=false so a mistyped path is an error instead of a new, empty
// journal.
func openJournal(path string, create bool) (*store.Store, error) {
	if path == "" {
		return nil, NewExitError(ExitCommandError, "no database given (use --db or DBGSTATE_DB)")
	}
	if !create {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", path))
		}
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

// replayJournal rebuilds the snapshot recorded in st, stopping after seq
// upTo when it is positive. A journal that does not replay cleanly is
// reported with ExitFailure.
func replayJournal(ctx context.Context, st *store.Store, upTo int64) (*state.Registry, *state.Snapshot, engine.ReplayReport, error) {
	reg, err := state.Default()
	if err != nil {
		return nil, nil, engine.ReplayReport{}, err
	}
	records, err := st.ReadAll(ctx)
	if err != nil {
		return nil, nil, engine.ReplayReport{}, WrapExitError(ExitCommandError, "failed to read journal", err)
	}
	if upTo > 0 {
		n := 0
		for n < len(records) && records[n].Seq <= upTo {
			n++
		}
		records = records[:n]
	}
	snap, report, err := engine.Replay(ctx, reg, records)
	if err != nil {
		return reg, snap, report, WrapExitError(ExitFailure, "journal does not replay", err)
	}
	return reg, snap, report, nil
}
