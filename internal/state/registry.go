package state

import (
	"fmt"

	"github.com/roach88/dbgstate/internal/action"
)

// Slice is one named part of the snapshot. Build slices with Define.
type Slice interface {
	Name() string

	check() string
	init(*Snapshot)
	wire(*Snapshot) (any, bool)
	reduce(prev *Snapshot, a action.Action) (func(*Snapshot), error)
	value(*Snapshot) any
}

type slice[T any] struct {
	name     string
	initFn   func() *T
	reduceFn func(*T, action.Action) (*T, error)
	get      func(*Snapshot) *T
	set      func(*Snapshot, *T)
}

// Define builds a slice from its initial-state factory, its reducer and the
// accessors for its Snapshot field. The reducer must not mutate its input and
// must return the same pointer when the action does not concern it.
func Define[T any](
	name string,
	init func() *T,
	reduce func(*T, action.Action) (*T, error),
	get func(*Snapshot) *T,
	set func(*Snapshot, *T),
) Slice {
	return &slice[T]{name: name, initFn: init, reduceFn: reduce, get: get, set: set}
}

func (s *slice[T]) Name() string { return s.name }

func (s *slice[T]) check() string {
	switch {
	case s.initFn == nil:
		return "missing initial-state factory"
	case s.reduceFn == nil:
		return "missing reducer"
	case s.get == nil || s.set == nil:
		return "missing snapshot accessor"
	}
	return ""
}

func (s *slice[T]) init(snap *Snapshot) {
	if _, ok := s.wire(snap); !ok {
		panic(fmt.Sprintf("state: slice %q: initial-state factory returned nil", s.name))
	}
}

// wire stores a fresh initial sub-state into snap and returns it.
func (s *slice[T]) wire(snap *Snapshot) (any, bool) {
	v := s.initFn()
	if v == nil {
		return nil, false
	}
	s.set(snap, v)
	return v, true
}

// reduce runs the reducer on the sub-state in prev. It returns nil when
// the sub-state is unchanged, and otherwise a func that stores the new
// sub-state into a snapshot.
func (s *slice[T]) reduce(prev *Snapshot, a action.Action) (func(*Snapshot), error) {
	cur := s.get(prev)
	out, err := s.reduceFn(cur, a)
	if err != nil {
		return nil, err
	}
	if out == cur {
		return nil, nil
	}
	if out == nil {
		return nil, fmt.Errorf("reducer returned nil sub-state")
	}
	return func(next *Snapshot) { s.set(next, out) }, nil
}

func (s *slice[T]) value(snap *Snapshot) any { return s.get(snap) }

// Registry is the root composer over an ordered list of slices.
// It is immutable after NewRegistry and safe for concurrent use.
type Registry struct {
	slices []Slice
	index  map[string]int
}

// NewRegistry validates slices and fixes their order. Empty or duplicate
// names, slices missing a factory, reducer or accessor, and slices wired to
// the same Snapshot field are rejected with a *RegistrationError.
func NewRegistry(slices ...Slice) (*Registry, error) {
	r := &Registry{
		slices: make([]Slice, 0, len(slices)),
		index:  make(map[string]int, len(slices)),
	}
	for i, s := range slices {
		if s == nil {
			return nil, &RegistrationError{Index: i, Reason: "nil slice"}
		}
		name := s.Name()
		if name == "" {
			return nil, &RegistrationError{Index: i, Reason: "empty name"}
		}
		if prev, dup := r.index[name]; dup {
			return nil, &RegistrationError{Slice: name, Index: i, Reason: fmt.Sprintf("duplicate name (first registered at #%d)", prev)}
		}
		if reason := s.check(); reason != "" {
			return nil, &RegistrationError{Slice: name, Index: i, Reason: reason}
		}
		r.index[name] = i
		r.slices = append(r.slices, s)
	}
	if err := r.checkWiring(); err != nil {
		return nil, err
	}
	return r, nil
}

// checkWiring initializes a scratch snapshot and requires every slice to
// read back exactly the sub-state it stored, so no two slices share a
// Snapshot field.
func (r *Registry) checkWiring() error {
	scratch := &Snapshot{}
	stored := make([]any, len(r.slices))
	for i, s := range r.slices {
		v, ok := s.wire(scratch)
		if !ok {
			return &RegistrationError{Slice: s.Name(), Index: i, Reason: "initial-state factory returned nil"}
		}
		stored[i] = v
	}
	for i, s := range r.slices {
		if s.value(scratch) != stored[i] {
			return &RegistrationError{Slice: s.Name(), Index: i, Reason: "snapshot field overwritten by another slice or not read back by its accessor"}
		}
	}
	return nil
}

// Names returns the slice names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.slices))
	for i, s := range r.slices {
		names[i] = s.Name()
	}
	return names
}

// Initialize builds the initial snapshot, calling each factory once in
// registration order.
func (r *Registry) Initialize() *Snapshot {
	snap := &Snapshot{}
	for _, s := range r.slices {
		s.init(snap)
	}
	return snap
}

// Apply folds a into snap. Every reducer runs exactly once, each seeing its
// sub-state from snap. When no reducer changed anything Apply returns snap
// itself; otherwise it returns a shallow copy carrying the new sub-states.
//
// The first reducer error stops Apply and is returned as a *ReduceError
// together with a nil snapshot.
func (r *Registry) Apply(snap *Snapshot, a action.Action) (*Snapshot, error) {
	var next *Snapshot
	for _, s := range r.slices {
		commit, err := s.reduce(snap, a)
		if err != nil {
			return nil, &ReduceError{Slice: s.Name(), Action: a.Type(), Err: err}
		}
		if commit == nil {
			continue
		}
		if next == nil {
			cp := *snap
			next = &cp
		}
		commit(next)
	}
	if next == nil {
		return snap, nil
	}
	return next, nil
}

// Changed lists, in registration order, the slices whose sub-state pointer
// differs between prev and next.
func (r *Registry) Changed(prev, next *Snapshot) []string {
	if prev == next {
		return nil
	}
	var names []string
	for _, s := range r.slices {
		if s.value(prev) != s.value(next) {
			names = append(names, s.Name())
		}
	}
	return names
}

// Lookup returns the named slice's sub-state in snap.
func (r *Registry) Lookup(snap *Snapshot, name string) (any, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.slices[i].value(snap), true
}
