package engine

import "sync/atomic"

// Clock is the monotonic logical clock that numbers journaled actions.
//
// Sequence numbers are strictly increasing and never reused, so the journal
// order is the dispatch order regardless of wall time.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though only the dispatching goroutine advances it in practice.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose next value is start+1.
// Used to resume a journal after replay.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
