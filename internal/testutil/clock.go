package testutil

import "sync"

// DeterministicClock is a resettable journal sequencer for scenario runs.
//
// It satisfies engine.Sequencer. Unlike engine.Clock it can be rewound, so
// the same scenario can run repeatedly and journal identical seq values.
type DeterministicClock struct {
	mu  sync.Mutex
	seq int64
}

// NewDeterministicClock returns a clock whose first Next is 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// NewDeterministicClockAt returns a clock whose first Next is seq+1, the
// position a resumed journal continues from.
func NewDeterministicClockAt(seq int64) *DeterministicClock {
	return &DeterministicClock{seq: seq}
}

func (c *DeterministicClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

func (c *DeterministicClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds to 0.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = 0
}
