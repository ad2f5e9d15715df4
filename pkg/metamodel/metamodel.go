// Package metamodel describes the interfaces the design engine expects from
// its metamodel collaborator: object-type lookup, per-type structural kind
// and attribute defaults, traits, and constraint checking. The metamodel/
// type/trait/constraint library itself lives elsewhere — only the contract
// lives here, plus a small reference implementation under metamodel/reference
// used by tests and the demo cmd.
package metamodel

import "github.com/kasuganosora/designstore/pkg/variant"

// StructuralKind tags the graph role an object type declares: unstructured,
// node, edge, or ordered-set.
type StructuralKind string

const (
	StructuralUnstructured StructuralKind = "unstructured"
	StructuralNode         StructuralKind = "node"
	StructuralEdge         StructuralKind = "edge"
	StructuralOrderedSet   StructuralKind = "ordered_set"
)

// AttributeSchema is one declared attribute of an object type: its name, the
// default value assigned at creation when the caller doesn't supply one, and
// whether the reference ConstraintChecker treats its absence as a violation.
type AttributeSchema struct {
	Name     string
	Default  variant.Variant
	Required bool
}

// ObjectType is the metamodel's description of one kind of object.
type ObjectType struct {
	Name           string
	Structural     StructuralKind
	Attributes     []AttributeSchema
	Label          string // name of the attribute used as the primary label
	SecondaryLabel string
	Traits         []string
}

// Metamodel looks up object types and the traits attached to them.
type Metamodel interface {
	ObjectType(name string) (ObjectType, bool)
	HasTrait(typeName, trait string) bool
}

// ConstraintViolation is one constraint failure produced by a ConstraintChecker,
// naming the violated constraint and the objects involved.
type ConstraintViolation struct {
	Constraint string
	ObjectIDs  []uint64
}

// ConstraintObject is the read-only view a ConstraintChecker gets of one
// object in the frame under check.
type ConstraintObject interface {
	ID() uint64
	TypeName() string
	Attribute(name string) (variant.Variant, bool)
}

// ConstraintFrame is the read-only view a ConstraintChecker gets of the whole
// frame under check.
type ConstraintFrame interface {
	Objects() []ConstraintObject
	Lookup(id uint64) (ConstraintObject, bool)
}

// ConstraintChecker evaluates a frame against metamodel-level constraints,
// returning every violation found. It never throws — constraint violations
// are data, so callers can show every one at once.
type ConstraintChecker interface {
	Check(frame ConstraintFrame) []ConstraintViolation
}
