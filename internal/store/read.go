package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Read when no record holds the seq.
var ErrNotFound = errors.New("journal record not found")

// Read returns the record at seq.
func (s *Store) Read(ctx context.Context, seq int64) (Record, error) {
	rec, err := readRecord(ctx, s.db, seq)
	if err != nil {
		return Record{}, fmt.Errorf("read seq %d: %w", seq, err)
	}
	return rec, nil
}

func readRecord(ctx context.Context, q execQuerier, seq int64) (Record, error) {
	row := q.QueryRowContext(ctx, `
		SELECT seq, type, payload, digest
		FROM actions
		WHERE seq = ?
	`, seq)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	return rec, err
}

// ReadAll returns every record in seq order.
// Returns an empty slice (not nil) for an empty journal.
func (s *Store) ReadAll(ctx context.Context) ([]Record, error) {
	return s.ReadFrom(ctx, 0)
}

// ReadFrom returns the records with seq > after, in seq order.
func (s *Store) ReadFrom(ctx context.Context, after int64) ([]Record, error) {
	records := []Record{}
	err := s.Each(ctx, after, func(rec Record) error {
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// LastSeq returns the highest seq in the journal, or 0 when it is empty.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	if err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM actions`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}

// TypeCount is the number of journaled actions of one type.
type TypeCount struct {
	Type  string `json:"type"`
	Count int64  `json:"count"`
}

// CountByType returns per-type record counts ordered by type.
func (s *Store) CountByType(ctx context.Context) ([]TypeCount, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT type, COUNT(*)
		FROM actions
		GROUP BY type
		ORDER BY type COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer rows.Close()

	counts := []TypeCount{}
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("count by type: scan: %w", err)
		}
		counts = append(counts, tc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count by type: iterate: %w", err)
	}
	return counts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec     Record
		payload string
	)
	if err := row.Scan(&rec.Seq, &rec.Type, &payload, &rec.Digest); err != nil {
		return Record{}, err
	}
	rec.Payload = []byte(payload)
	return rec, nil
}
