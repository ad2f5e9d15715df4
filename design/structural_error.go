package design

import (
	"fmt"
	"strings"
)

// StructuralViolationKind enumerates the structural-integrity error taxonomy.
type StructuralViolationKind int

const (
	BrokenStructureReference StructuralViolationKind = iota
	BrokenChild
	BrokenParent
	ParentChildMismatch
	ParentChildCycle
	EdgeEndpointNotANode
)

func (k StructuralViolationKind) String() string {
	switch k {
	case BrokenStructureReference:
		return "BrokenStructureReference"
	case BrokenChild:
		return "BrokenChild"
	case BrokenParent:
		return "BrokenParent"
	case ParentChildMismatch:
		return "ParentChildMismatch"
	case ParentChildCycle:
		return "ParentChildCycle"
	case EdgeEndpointNotANode:
		return "EdgeEndpointNotANode"
	default:
		return "Unknown"
	}
}

// StructuralViolation is one concrete finding: a kind, the object it was
// found on, and the (possibly empty) set of ids it references that caused
// the finding.
type StructuralViolation struct {
	Kind       StructuralViolationKind
	ObjectID   ObjectID
	References []ObjectID
}

func (v StructuralViolation) String() string {
	if len(v.References) == 0 {
		return fmt.Sprintf("%s(object=%d)", v.Kind, uint64(v.ObjectID))
	}
	refs := make([]string, len(v.References))
	for i, r := range v.References {
		refs[i] = formatID(ID(r))
	}
	return fmt.Sprintf("%s(object=%d, refs=[%s])", v.Kind, uint64(v.ObjectID), strings.Join(refs, ","))
}

// StructuralIntegrityError is raised by TransientFrame.ValidateStructure and
// Design.Accept. Thrown atomically: the transient frame that produced it is
// left unmodified, still Transient, with its reservations intact, so the
// caller may fix and retry or discard.
type StructuralIntegrityError struct {
	Violations []StructuralViolation
}

func (e *StructuralIntegrityError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("design: structural integrity violated: %s", strings.Join(parts, "; "))
}

// NewStructuralIntegrityError constructs a StructuralIntegrityError from one
// or more violations. Returns nil if violations is empty, so callers can
// write `if err := NewStructuralIntegrityError(v); err != nil { ... }`.
func NewStructuralIntegrityError(violations []StructuralViolation) *StructuralIntegrityError {
	if len(violations) == 0 {
		return nil
	}
	return &StructuralIntegrityError{Violations: violations}
}
