package design

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedSet is a deduplicating, insertion-ordered sequence. Equality is
// element-by-element; it is never a sorted set. Backed by go-ordered-map/v2
// keyed on T with an empty struct value, same as EntityTable's backing
// store.
type OrderedSet[T comparable] struct {
	m *orderedmap.OrderedMap[T, struct{}]
}

// NewOrderedSet builds an OrderedSet, optionally seeded with items in the
// given order; duplicates among the seed items are dropped, keeping the
// first occurrence.
func NewOrderedSet[T comparable](items ...T) *OrderedSet[T] {
	s := &OrderedSet[T]{m: orderedmap.New[T, struct{}]()}
	for _, it := range items {
		s.Add(it)
	}
	return s
}

// Add appends item if not already present. Returns true if it was newly
// added.
func (s *OrderedSet[T]) Add(item T) bool {
	if _, present := s.m.Get(item); present {
		return false
	}
	s.m.Set(item, struct{}{})
	return true
}

// Remove drops item. Returns true if it was present.
func (s *OrderedSet[T]) Remove(item T) bool {
	_, present := s.m.Delete(item)
	return present
}

// Contains reports whether item is a member.
func (s *OrderedSet[T]) Contains(item T) bool {
	_, present := s.m.Get(item)
	return present
}

// Len returns the number of members.
func (s *OrderedSet[T]) Len() int {
	return s.m.Len()
}

// Items returns members in insertion order.
func (s *OrderedSet[T]) Items() []T {
	out := make([]T, 0, s.m.Len())
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// At returns the item at position i in insertion order.
func (s *OrderedSet[T]) At(i int) (T, bool) {
	var zero T
	if i < 0 {
		return zero, false
	}
	idx := 0
	for pair := s.m.Oldest(); pair != nil; pair = pair.Next() {
		if idx == i {
			return pair.Key, true
		}
		idx++
	}
	return zero, false
}

// Clone returns an independent copy preserving order.
func (s *OrderedSet[T]) Clone() *OrderedSet[T] {
	return NewOrderedSet(s.Items()...)
}

// Equal reports whether two ordered sets contain the same elements in the
// same order.
func (s *OrderedSet[T]) Equal(other *OrderedSet[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	a, b := s.Items(), other.Items()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
