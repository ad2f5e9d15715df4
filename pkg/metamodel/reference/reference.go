// Package reference is a minimal, in-memory Metamodel + ConstraintChecker
// implementation: a narrow interface plus a small concrete struct
// satisfying it. It exists so the design engine can be constructed,
// validated, and tested against a concrete metamodel without pulling in a
// full metamodel/constraint library.
package reference

import (
	"fmt"
	"sort"
	"sync"

	"github.com/kasuganosora/designstore/pkg/metamodel"
)

// Metamodel is a simple name-keyed registry of object types.
type Metamodel struct {
	mu    sync.RWMutex
	types map[string]metamodel.ObjectType
}

// New builds a Metamodel from the given object types.
func New(types ...metamodel.ObjectType) *Metamodel {
	m := &Metamodel{types: make(map[string]metamodel.ObjectType, len(types))}
	for _, t := range types {
		m.types[t.Name] = t
	}
	return m
}

// Register adds or replaces a type definition.
func (m *Metamodel) Register(t metamodel.ObjectType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types[t.Name] = t
}

// ObjectType implements metamodel.Metamodel.
func (m *Metamodel) ObjectType(name string) (metamodel.ObjectType, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[name]
	return t, ok
}

// HasTrait implements metamodel.Metamodel.
func (m *Metamodel) HasTrait(typeName, trait string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[typeName]
	if !ok {
		return false
	}
	for _, tr := range t.Traits {
		if tr == trait {
			return true
		}
	}
	return false
}

// TypeNames returns every registered type name, sorted.
func (m *Metamodel) TypeNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.types))
	for n := range m.types {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RequiredAttributeChecker is a ConstraintChecker that flags objects missing
// a value for any attribute their type declares Required.
type RequiredAttributeChecker struct {
	metamodel *Metamodel
}

// NewRequiredAttributeChecker builds a checker bound to the given metamodel.
func NewRequiredAttributeChecker(mm *Metamodel) *RequiredAttributeChecker {
	return &RequiredAttributeChecker{metamodel: mm}
}

// Check implements metamodel.ConstraintChecker.
func (c *RequiredAttributeChecker) Check(frame metamodel.ConstraintFrame) []metamodel.ConstraintViolation {
	var violations []metamodel.ConstraintViolation
	for _, obj := range frame.Objects() {
		t, ok := c.metamodel.ObjectType(obj.TypeName())
		if !ok {
			continue
		}
		for _, attr := range t.Attributes {
			if !attr.Required {
				continue
			}
			v, present := obj.Attribute(attr.Name)
			if !present || v.IsNull() {
				violations = append(violations, metamodel.ConstraintViolation{
					Constraint: fmt.Sprintf("required_attribute:%s.%s", t.Name, attr.Name),
					ObjectIDs:  []uint64{obj.ID()},
				})
			}
		}
	}
	return violations
}
