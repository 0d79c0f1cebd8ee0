package store

import (
	"context"
	"fmt"
)

// Each streams the records with seq > after to fn in seq order without
// loading the whole journal. An error from fn stops the scan and is
// returned unchanged.
func (s *Store) Each(ctx context.Context, after int64, fn func(Record) error) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT seq, type, payload, digest
		FROM actions
		WHERE seq > ?
		ORDER BY seq ASC
	`, after)
	if err != nil {
		return fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return fmt.Errorf("scan action: %w", err)
		}
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate actions: %w", err)
	}
	return nil
}
