package engine

import (
	"context"
	"encoding/json"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/state"
	"github.com/roach88/dbgstate/internal/store"
)

// ReplayReport summarises a replay.
type ReplayReport struct {
	// Applied is the number of records applied.
	Applied int `json:"applied"`

	// Verified is the number of records whose digest was checked.
	Verified int `json:"verified"`

	// LastSeq is the seq of the last applied record, 0 for an empty journal.
	LastSeq int64 `json:"last_seq"`

	// Digest is the digest of the final snapshot.
	Digest string `json:"digest"`
}

// Replay rebuilds a snapshot by applying journal records in order, starting
// from the registry's initial snapshot.
//
// Replay goes through the same Apply as Dispatch; there is no replay mode.
// A record that carries a digest is checked against the snapshot it
// produces, and a divergence stops the replay with DIGEST_MISMATCH.
// On error the returned snapshot is the last one successfully reached.
func Replay(ctx context.Context, registry *state.Registry, records []store.Record) (*state.Snapshot, ReplayReport, error) {
	snap := registry.Initialize()
	var report ReplayReport

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return snap, report, err
		}

		a, err := action.Decode(action.Envelope{Type: action.Type(rec.Type), Payload: json.RawMessage(rec.Payload)})
		if err != nil {
			return snap, report, &RuntimeError{
				Code:    ErrCodeDecodeFailed,
				Message: "journal record does not decode",
				Seq:     rec.Seq,
				Action:  action.Type(rec.Type),
				Err:     err,
			}
		}

		next, err := registry.Apply(snap, a)
		if err != nil {
			re := newReduceError(a, err)
			re.Seq = rec.Seq
			return snap, report, re
		}

		if rec.Digest != "" {
			got, err := state.Digest(next)
			if err != nil {
				return snap, report, err
			}
			if got != rec.Digest {
				return snap, report, NewDigestMismatch(rec.Seq, a.Type(), rec.Digest, got)
			}
			report.Verified++
		}

		snap = next
		report.Applied++
		report.LastSeq = rec.Seq
	}

	digest, err := state.Digest(snap)
	if err != nil {
		return snap, report, err
	}
	report.Digest = digest
	return snap, report, nil
}

// Resume replays the journal in j and returns a Controller that continues
// it: the clock picks up after the last record and new actions are
// appended to j.
func Resume(ctx context.Context, registry *state.Registry, j *store.Store, opts ...Option) (*Controller, ReplayReport, error) {
	records, err := j.ReadAll(ctx)
	if err != nil {
		return nil, ReplayReport{}, err
	}
	snap, report, err := Replay(ctx, registry, records)
	if err != nil {
		return nil, report, err
	}

	base := []Option{
		WithJournal(j),
		WithClock(NewClockAt(report.LastSeq)),
		WithSnapshot(snap),
	}
	return New(registry, append(base, opts...)...), report, nil
}
