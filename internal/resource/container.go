package resource

import (
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
)

// Key constrains container keys to opaque string or integer identifiers.
type Key interface {
	~string | ~int | ~int64 | ~uint64
}

// Entry is a key/value pair used for bulk inserts.
type Entry[K Key, V any] struct {
	Key   K
	Value V
}

// Container is an insertion-ordered, immutable key → entity collection.
//
// A nil *Container reads as empty. Mutations on a nil container behave as if
// they were applied to Empty().
type Container[K Key, V any] struct {
	order   []K
	entries map[K]V
}

// KeyError reports a malformed key handed to a container operation.
type KeyError struct {
	Op  string
	Key any
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("resource: %s: malformed key %q", e.Op, fmt.Sprint(e.Key))
}

// Empty returns a container with no entries.
func Empty[K Key, V any]() *Container[K, V] {
	return &Container[K, V]{
		order:   []K{},
		entries: map[K]V{},
	}
}

// Valid reports whether k may be used as a container key.
// Zero integers are legal identifiers; the empty string is not.
func Valid[K Key](k K) bool {
	var zero K
	if k != zero {
		return true
	}
	return reflect.TypeFor[K]().Kind() != reflect.String
}

func mustValid[K Key](op string, k K) {
	if !Valid(k) {
		panic(&KeyError{Op: op, Key: k})
	}
}

// Len returns the number of entries.
func (c *Container[K, V]) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get returns the entity stored under k.
func (c *Container[K, V]) Get(k K) (V, bool) {
	if c == nil {
		var zero V
		return zero, false
	}
	v, ok := c.entries[k]
	return v, ok
}

// Has reports whether k is present.
func (c *Container[K, V]) Has(k K) bool {
	_, ok := c.Get(k)
	return ok
}

// Keys returns a copy of the key order.
func (c *Container[K, V]) Keys() []K {
	if c == nil {
		return []K{}
	}
	return slices.Clone(c.order)
}

// Values yields entities in key order. The sequence can be iterated any
// number of times and always reflects this container, never a later one.
func (c *Container[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		if c == nil {
			return
		}
		for _, k := range c.order {
			if !yield(c.entries[k]) {
				return
			}
		}
	}
}

// All yields key/entity pairs in key order.
func (c *Container[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if c == nil {
			return
		}
		for _, k := range c.order {
			if !yield(k, c.entries[k]) {
				return
			}
		}
	}
}

// Insert stores v under k. A new key is appended to the order; an existing
// key keeps its position and has its entity replaced.
func (c *Container[K, V]) Insert(k K, v V) *Container[K, V] {
	mustValid("insert", k)
	return c.Merge(Entry[K, V]{Key: k, Value: v})
}

// Merge inserts every entry with a single copy of the receiver. Entries are
// applied in argument order, so a key repeated in entries keeps the last value.
func (c *Container[K, V]) Merge(entries ...Entry[K, V]) *Container[K, V] {
	if len(entries) == 0 {
		if c == nil {
			return Empty[K, V]()
		}
		return c
	}
	for _, e := range entries {
		mustValid("insert", e.Key)
	}

	next := c.clone(len(entries))
	for _, e := range entries {
		if _, exists := next.entries[e.Key]; !exists {
			next.order = append(next.order, e.Key)
		}
		next.entries[e.Key] = e.Value
	}
	return next
}

// Update replaces the entity under an existing key with fn(entity).
// An absent key returns the receiver unchanged.
func (c *Container[K, V]) Update(k K, fn func(V) V) *Container[K, V] {
	mustValid("update", k)
	cur, ok := c.Get(k)
	if !ok {
		return c
	}
	next := c.clone(0)
	next.entries[k] = fn(cur)
	return next
}

// Remove deletes k from the order and the entries.
// An absent key returns the receiver unchanged.
func (c *Container[K, V]) Remove(k K) *Container[K, V] {
	mustValid("remove", k)
	if !c.Has(k) {
		return c
	}
	return c.RemoveWhere(func(key K, _ V) bool { return key == k })
}

// RemoveWhere deletes every entry matching pred.
// The receiver is returned unchanged when nothing matches.
func (c *Container[K, V]) RemoveWhere(pred func(K, V) bool) *Container[K, V] {
	if c == nil {
		return c
	}
	var doomed map[K]struct{}
	for _, k := range c.order {
		if pred(k, c.entries[k]) {
			if doomed == nil {
				doomed = make(map[K]struct{})
			}
			doomed[k] = struct{}{}
		}
	}
	if len(doomed) == 0 {
		return c
	}

	next := &Container[K, V]{
		order:   make([]K, 0, len(c.order)-len(doomed)),
		entries: make(map[K]V, len(c.entries)-len(doomed)),
	}
	for _, k := range c.order {
		if _, gone := doomed[k]; gone {
			continue
		}
		next.order = append(next.order, k)
		next.entries[k] = c.entries[k]
	}
	return next
}

// clone copies the receiver, reserving room for extra keys.
func (c *Container[K, V]) clone(extra int) *Container[K, V] {
	if c == nil {
		c = Empty[K, V]()
	}
	order := make([]K, len(c.order), len(c.order)+extra)
	copy(order, c.order)
	return &Container[K, V]{
		order:   order,
		entries: maps.Clone(c.entries),
	}
}

type wireContainer[K Key, V any] struct {
	Order   []K     `json:"order"`
	Entries map[K]V `json:"entries"`
}

// MarshalJSON encodes the container as {"order": [...], "entries": {...}}.
func (c *Container[K, V]) MarshalJSON() ([]byte, error) {
	if c == nil {
		c = Empty[K, V]()
	}
	return json.Marshal(wireContainer[K, V]{Order: c.order, Entries: c.entries})
}

// UnmarshalJSON decodes the form written by MarshalJSON and rejects input
// that breaks the order/entries correspondence.
func (c *Container[K, V]) UnmarshalJSON(data []byte) error {
	var w wireContainer[K, V]
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("resource: decode container: %w", err)
	}
	if w.Order == nil {
		w.Order = []K{}
	}
	if w.Entries == nil {
		w.Entries = map[K]V{}
	}
	if len(w.Order) != len(w.Entries) {
		return fmt.Errorf("resource: decode container: %d keys in order, %d entries", len(w.Order), len(w.Entries))
	}
	seen := make(map[K]struct{}, len(w.Order))
	for _, k := range w.Order {
		if !Valid(k) {
			return &KeyError{Op: "decode", Key: k}
		}
		if _, dup := seen[k]; dup {
			return fmt.Errorf("resource: decode container: duplicate key %v", k)
		}
		if _, ok := w.Entries[k]; !ok {
			return fmt.Errorf("resource: decode container: key %v has no entry", k)
		}
		seen[k] = struct{}{}
	}
	c.order = w.Order
	c.entries = w.Entries
	return nil
}
