package design

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Identified is anything an EntityTable can store: a value that knows its
// own id.
type Identified interface {
	EntityID() ID
}

type entityEntry[E Identified] struct {
	value    E
	refCount int
}

// EntityTable is the ordered, ID-keyed, reference-counted container backing
// the design's snapshot/logical-object/frame stores. Iteration yields
// roughly insertion order and tolerates holes left by removal, the same
// "generational array + id→index map" shape go-ordered-map/v2 already
// provides.
type EntityTable[E Identified] struct {
	m *orderedmap.OrderedMap[ID, *entityEntry[E]]
}

// NewEntityTable returns an empty table.
func NewEntityTable[E Identified]() *EntityTable[E] {
	return &EntityTable[E]{m: orderedmap.New[ID, *entityEntry[E]]()}
}

// Insert adds e. Panics (programming error) if e's id is already present.
func (t *EntityTable[E]) Insert(e E) {
	id := e.EntityID()
	if _, present := t.m.Get(id); present {
		panic(duplicateIDPanic(id))
	}
	t.m.Set(id, &entityEntry[E]{value: e, refCount: 1})
}

// InsertOrRetain inserts e at ref-count 1 if absent, or increments the
// existing entry's ref-count if e's id is already present.
func (t *EntityTable[E]) InsertOrRetain(e E) {
	id := e.EntityID()
	if entry, present := t.m.Get(id); present {
		entry.refCount++
		return
	}
	t.m.Set(id, &entityEntry[E]{value: e, refCount: 1})
}

// Retain increments the ref-count of an existing entry. Returns false if id
// is absent.
func (t *EntityTable[E]) Retain(id ID) bool {
	entry, present := t.m.Get(id)
	if !present {
		return false
	}
	entry.refCount++
	return true
}

// Release decrements id's ref-count, removing the entry on reaching zero.
// Returns whether the entry was removed.
func (t *EntityTable[E]) Release(id ID) bool {
	entry, present := t.m.Get(id)
	if !present {
		return false
	}
	entry.refCount--
	if entry.refCount <= 0 {
		t.m.Delete(id)
		return true
	}
	return false
}

// Remove force-removes id irrespective of ref-count. Returns whether
// anything was removed.
func (t *EntityTable[E]) Remove(id ID) bool {
	_, present := t.m.Delete(id)
	return present
}

// Replace overwrites an existing entry at the same slot and resets its
// ref-count to 1. Panics if the id is not already present (use Insert for
// that).
func (t *EntityTable[E]) Replace(e E) {
	id := e.EntityID()
	if _, present := t.m.Get(id); !present {
		panic(unknownIDPanic(id))
	}
	t.m.Set(id, &entityEntry[E]{value: e, refCount: 1})
}

// Contains reports whether id has a live entry.
func (t *EntityTable[E]) Contains(id ID) bool {
	_, present := t.m.Get(id)
	return present
}

// Lookup returns the stored value for id.
func (t *EntityTable[E]) Lookup(id ID) (E, bool) {
	entry, present := t.m.Get(id)
	if !present {
		var zero E
		return zero, false
	}
	return entry.value, true
}

// RefCount returns id's current ref-count, or 0 if absent.
func (t *EntityTable[E]) RefCount(id ID) int {
	entry, present := t.m.Get(id)
	if !present {
		return 0
	}
	return entry.refCount
}

// Len returns the number of live entries.
func (t *EntityTable[E]) Len() int {
	return t.m.Len()
}

// Each iterates entries in insertion order, stopping early if fn returns
// false.
func (t *EntityTable[E]) Each(fn func(id ID, value E) bool) {
	for pair := t.m.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value.value) {
			return
		}
	}
}

// Values returns every stored value, in insertion order.
func (t *EntityTable[E]) Values() []E {
	out := make([]E, 0, t.m.Len())
	t.Each(func(_ ID, v E) bool {
		out = append(out, v)
		return true
	})
	return out
}

// IDs returns every stored id, in insertion order.
func (t *EntityTable[E]) IDs() []ID {
	out := make([]ID, 0, t.m.Len())
	t.Each(func(id ID, _ E) bool {
		out = append(out, id)
		return true
	})
	return out
}
