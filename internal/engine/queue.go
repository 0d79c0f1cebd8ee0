package engine

import (
	"sync"

	"github.com/roach88/dbgstate/internal/action"
)

// Event is one queued action together with where it came from.
type Event struct {
	Action action.Action

	// Origin names the producer, for logging only ("track", "cli", ...).
	Origin string
}

// eventQueue is an unbounded FIFO shared by any number of producers and
// the single Run loop. Producers never block on a slow dispatch.
//
// signal has a buffer of one: any number of enqueues between two reads
// wake the loop once, and the loop then drains with TryDequeue. Closing
// the queue closes signal.
type eventQueue struct {
	mu     sync.Mutex
	events []Event
	head   int // events[:head] are consumed
	closed bool
	signal chan struct{}
}

func newEventQueue() *eventQueue {
	return &eventQueue{signal: make(chan struct{}, 1)}
}

// Enqueue appends e. It returns false once the queue is closed.
func (q *eventQueue) Enqueue(e Event) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.events = append(q.events, e)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue pops the oldest event without blocking.
func (q *eventQueue) TryDequeue() (Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.head == len(q.events) {
		return Event{}, false
	}
	e := q.events[q.head]
	q.events[q.head] = Event{} // don't pin the action
	q.head++

	switch {
	case q.head == len(q.events):
		q.events, q.head = q.events[:0], 0
	case q.head >= 64 && q.head*2 >= len(q.events):
		n := copy(q.events, q.events[q.head:])
		clear(q.events[n:])
		q.events, q.head = q.events[:n], 0
	}
	return e, true
}

// Wait returns the wake-up channel. It is closed when the queue is.
func (q *eventQueue) Wait() <-chan struct{} {
	return q.signal
}

func (q *eventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events) - q.head
}

// Drained reports whether the queue is closed and empty.
func (q *eventQueue) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && q.head == len(q.events)
}

// Close rejects further enqueues. Queued events stay dequeueable.
func (q *eventQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
