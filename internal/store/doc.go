// Package store is the SQLite action journal.
//
// The journal is append-only: every action the controller applied is stored
// with its logical sequence number, its type tag, its canonical JSON payload
// and, when digests are enabled, the digest of the snapshot it produced.
// Replaying the journal in seq order through a registry rebuilds the same
// snapshot.
//
// # Ordering
//
// All reads are ORDER BY seq ASC. Sequence numbers come from the
// controller's logical clock, never from wall time.
//
// # Idempotency
//
// Append uses ON CONFLICT(seq) DO NOTHING. Re-appending an identical record
// is a no-op; appending a different record under a used seq fails with
// ErrSeqConflict.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON
package store
