package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

// Record is one journal row.
type Record struct {
	Seq     int64           `json:"seq"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
	Digest  string          `json:"digest,omitempty"`
}

// ErrSeqConflict is returned when a different record already holds a seq.
var ErrSeqConflict = errors.New("journal seq already holds a different record")

func (r Record) validate() error {
	if r.Seq <= 0 {
		return fmt.Errorf("seq must be positive, got %d", r.Seq)
	}
	if r.Type == "" {
		return fmt.Errorf("seq %d: empty type", r.Seq)
	}
	if !json.Valid(r.Payload) {
		return fmt.Errorf("seq %d: payload is not valid JSON", r.Seq)
	}
	return nil
}

// execQuerier is satisfied by both *sql.DB and *sql.Tx.
type execQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Append writes rec to the journal. It reports whether a new row was
// inserted: re-appending an identical record returns false and no error.
func (s *Store) Append(ctx context.Context, rec Record) (inserted bool, err error) {
	if err := rec.validate(); err != nil {
		return false, fmt.Errorf("append: %w", err)
	}
	inserted, err = insert(ctx, s.db, rec)
	if err != nil {
		return false, fmt.Errorf("append seq %d: %w", rec.Seq, err)
	}
	return inserted, nil
}

// AppendBatch appends records in one transaction. Either every new record
// is written or none is; a seq already holding a different record fails
// the whole batch with ErrSeqConflict.
func (s *Store) AppendBatch(ctx context.Context, recs []Record) (int, error) {
	for _, rec := range recs {
		if err := rec.validate(); err != nil {
			return 0, fmt.Errorf("append batch: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("append batch: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	count := 0
	for _, rec := range recs {
		ok, err := insert(ctx, tx, rec)
		if err != nil {
			return 0, fmt.Errorf("append batch seq %d: %w", rec.Seq, err)
		}
		if ok {
			count++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("append batch: commit: %w", err)
	}
	return count, nil
}

// insert writes rec unless its seq is taken. A taken seq is accepted only
// when it holds the identical record.
func insert(ctx context.Context, q execQuerier, rec Record) (bool, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO actions (seq, type, payload, digest)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`, rec.Seq, rec.Type, string(rec.Payload), rec.Digest)
	if err != nil {
		return false, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 1 {
		return true, nil
	}

	existing, err := readRecord(ctx, q, rec.Seq)
	if err != nil {
		return false, err
	}
	if existing.Type != rec.Type || string(existing.Payload) != string(rec.Payload) || existing.Digest != rec.Digest {
		return false, ErrSeqConflict
	}
	return false, nil
}
