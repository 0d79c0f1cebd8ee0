package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/roach88/dbgstate/internal/action"
	"github.com/roach88/dbgstate/internal/state"
	"github.com/roach88/dbgstate/internal/store"
)

// Journal records applied actions. *store.Store implements it.
type Journal interface {
	Append(ctx context.Context, rec store.Record) (bool, error)
}

// Sequencer issues journal sequence numbers. *Clock implements it.
type Sequencer interface {
	Next() int64
	Current() int64
}

// Change describes one dispatch that produced a new snapshot.
type Change struct {
	Seq     int64
	Action  action.Action
	Prev    *state.Snapshot
	Next    *state.Snapshot
	Changed []string
}

// Controller is the single writer of the debugger state.
//
// Thread-safety model:
//   - Dispatch(): safe from any goroutine; calls are serialised
//   - Enqueue(), Track(): safe from any goroutine
//   - Run(): must be called from exactly one goroutine
//   - Snapshot(): safe from any goroutine, lock-free
//
// Subscribers run synchronously inside Dispatch. A subscriber that wants to
// react with another action must Enqueue it, not Dispatch it.
type Controller struct {
	registry *state.Registry
	current  atomic.Pointer[state.Snapshot]

	// mu serialises Dispatch so that exactly one Apply runs at a time.
	mu      sync.Mutex
	clock   Sequencer
	journal Journal
	digests bool

	queue   *eventQueue
	onError func(Event, error)
	ids     RequestIDGenerator
	pending sync.WaitGroup
	logger  *slog.Logger

	subsMu  sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// Option configures a Controller.
type Option func(*Controller)

// WithJournal records every applied action in j.
func WithJournal(j Journal) Option {
	return func(c *Controller) { c.journal = j }
}

// WithClock replaces the logical clock. Used to resume a journal.
func WithClock(clock Sequencer) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithRequestIDs replaces the request id generator used by Track.
func WithRequestIDs(gen RequestIDGenerator) Option {
	return func(c *Controller) { c.ids = gen }
}

// WithDigests stores the resulting snapshot digest with each journal record.
func WithDigests(enabled bool) Option {
	return func(c *Controller) { c.digests = enabled }
}

// WithLogger replaces slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithErrorHandler calls fn on the Run goroutine for every queued action
// whose dispatch failed, after the failure is logged.
func WithErrorHandler(fn func(Event, error)) Option {
	return func(c *Controller) { c.onError = fn }
}

// WithSnapshot starts the controller from s instead of a fresh snapshot.
func WithSnapshot(s *state.Snapshot) Option {
	return func(c *Controller) { c.current.Store(s) }
}

// New creates a Controller over registry, starting from its initial
// snapshot unless WithSnapshot says otherwise.
func New(registry *state.Registry, opts ...Option) *Controller {
	c := &Controller{
		registry: registry,
		clock:    NewClock(),
		queue:    newEventQueue(),
		ids:      UUIDv7Generator{},
		logger:   slog.Default(),
		subs:     make(map[int]func(Change)),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.current.Load() == nil {
		c.current.Store(registry.Initialize())
	}
	return c
}

// Registry returns the registry the controller applies actions with.
func (c *Controller) Registry() *state.Registry {
	return c.registry
}

// Snapshot returns the current snapshot.
func (c *Controller) Snapshot() *state.Snapshot {
	return c.current.Load()
}

// Clock returns the controller's logical clock.
func (c *Controller) Clock() Sequencer {
	return c.clock
}

// Subscribe registers fn to be called after every dispatch that changed
// the snapshot. The returned func removes the subscription.
func (c *Controller) Subscribe(fn func(Change)) (unsubscribe func()) {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn

	return func() {
		c.subsMu.Lock()
		defer c.subsMu.Unlock()
		delete(c.subs, id)
	}
}

// Dispatch applies a to the current snapshot and publishes the result.
//
// Actions whose type is registered with the codec are stamped with the next
// seq and, when a journal is set, recorded before the new snapshot becomes
// visible. They are applied as decoded from their canonical envelope, so
// strings reach the state NFC normalised. Any error leaves the
// current snapshot and the clock untouched and is returned as a
// *RuntimeError; the returned snapshot is then the unchanged current one.
func (c *Controller) Dispatch(ctx context.Context, a action.Action) (*state.Snapshot, error) {
	if a == nil {
		return c.Snapshot(), fmt.Errorf("dispatch: nil action")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	prev := c.current.Load()

	// Known actions are applied in their journaled form so replay reaches
	// the same snapshot. Unknown actions get no seq and are not journaled.
	known := action.Known(a.Type())
	var env action.Envelope
	if known {
		canonical, e, err := action.Canonical(a)
		if err != nil {
			return prev, newEncodeError(a, err)
		}
		a, env = canonical, e
	}

	next, err := c.registry.Apply(prev, a)
	if err != nil {
		return prev, newReduceError(a, err)
	}

	var seq int64
	if known {
		seq = c.clock.Current() + 1
		if c.journal != nil {
			if err := c.record(ctx, seq, env, next); err != nil {
				return prev, newJournalError(seq, a, err)
			}
		}
		c.clock.Next()
	}

	c.current.Store(next)

	c.logger.Debug("action dispatched",
		"type", a.Type(),
		"seq", seq,
		"changed", next != prev,
	)

	if next != prev {
		c.notify(Change{
			Seq:     seq,
			Action:  a,
			Prev:    prev,
			Next:    next,
			Changed: c.registry.Changed(prev, next),
		})
	}
	return next, nil
}

func (c *Controller) record(ctx context.Context, seq int64, env action.Envelope, next *state.Snapshot) error {
	rec := store.Record{Seq: seq, Type: string(env.Type), Payload: env.Payload}
	if c.digests {
		var err error
		if rec.Digest, err = state.Digest(next); err != nil {
			return err
		}
	}
	_, err := c.journal.Append(ctx, rec)
	return err
}

func (c *Controller) notify(ch Change) {
	c.subsMu.Lock()
	subs := make([]func(Change), 0, len(c.subs))
	for id := 0; id < c.nextSub; id++ {
		if fn, ok := c.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	c.subsMu.Unlock()

	for _, fn := range subs {
		fn(ch)
	}
}

// Enqueue submits an action for the Run loop.
// Returns false if the controller has been stopped.
func (c *Controller) Enqueue(a action.Action) bool {
	return c.enqueue(Event{Action: a, Origin: "enqueue"})
}

// Submit is Enqueue reporting a stopped controller as a QUEUE_CLOSED
// RuntimeError.
func (c *Controller) Submit(a action.Action) error {
	if !c.Enqueue(a) {
		return &RuntimeError{
			Code:    ErrCodeQueueClosed,
			Message: "controller stopped",
			Action:  a.Type(),
		}
	}
	return nil
}

func (c *Controller) enqueue(ev Event) bool {
	if !c.queue.Enqueue(ev) {
		c.logger.Warn("action dropped: controller stopped",
			"type", ev.Action.Type(),
			"origin", ev.Origin,
		)
		return false
	}
	return true
}

// QueueLen returns the number of queued, not yet dispatched actions.
func (c *Controller) QueueLen() int {
	return c.queue.Len()
}

// Run dispatches queued actions until ctx is cancelled or Stop is called.
// After Stop, Run drains the queue before returning nil.
//
// CRITICAL: Must be called from exactly ONE goroutine.
//
// ERROR HANDLING: A failed dispatch is logged with the action, handed to
// the WithErrorHandler callback if any, and the loop continues. Retrying
// would reorder actions relative to the journal.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Info("controller starting", "slices", len(c.registry.Names()))

	for {
		ev, ok := c.queue.TryDequeue()
		if ok {
			if _, err := c.Dispatch(ctx, ev.Action); err != nil {
				c.logEventError(ev, err)
				if c.onError != nil {
					c.onError(ev, err)
				}
			}
			continue
		}

		select {
		case <-ctx.Done():
			c.logger.Info("controller stopping: context cancelled")
			c.queue.Close()
			return ctx.Err()

		case <-c.queue.Wait():
			// The signal channel is closed once the queue is closed, so
			// this case fires immediately from then on.
			if c.queue.Drained() {
				c.logger.Info("controller stopping: queue closed")
				return nil
			}
		}
	}
}

// Stop closes the queue. Run returns once the queued actions are dispatched.
func (c *Controller) Stop() {
	c.queue.Close()
}

func (c *Controller) logEventError(ev Event, err error) {
	var re *RuntimeError
	if errors.As(err, &re) {
		c.logger.Error("dispatch failed",
			"error", err,
			"code", re.Code,
			"type", ev.Action.Type(),
			"origin", ev.Origin,
		)
		return
	}
	c.logger.Error("dispatch failed",
		"error", err,
		"origin", ev.Origin,
	)
}
