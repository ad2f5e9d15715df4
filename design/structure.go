package design

import "github.com/kasuganosora/designstore/pkg/metamodel"

// ObjectID, SnapshotID and FrameID share one identity space; they are
// distinct Go types purely so the compiler catches a SnapshotID passed
// where an ObjectID was expected, even though both are ID underneath.
type (
	ObjectID   ID
	SnapshotID ID
	FrameID    ID
)

// StructureKind tags which variant of Structure a snapshot carries.
type StructureKind int

const (
	StructureUnstructured StructureKind = iota
	StructureNode
	StructureEdge
	StructureOrderedSet
)

func (k StructureKind) String() string {
	switch k {
	case StructureUnstructured:
		return string(metamodel.StructuralUnstructured)
	case StructureNode:
		return string(metamodel.StructuralNode)
	case StructureEdge:
		return string(metamodel.StructuralEdge)
	case StructureOrderedSet:
		return string(metamodel.StructuralOrderedSet)
	default:
		return "unknown"
	}
}

// structuralKindOf maps a metamodel StructuralKind tag to the engine's
// StructureKind enum.
func structuralKindOf(k metamodel.StructuralKind) StructureKind {
	switch k {
	case metamodel.StructuralNode:
		return StructureNode
	case metamodel.StructuralEdge:
		return StructureEdge
	case metamodel.StructuralOrderedSet:
		return StructureOrderedSet
	default:
		return StructureUnstructured
	}
}

// Structure is the tagged variant describing a snapshot's graph role:
// Unstructured, Node, Edge(origin,target), or OrderedSet(owner,items). Kept
// as a plain struct with a Kind tag rather than a Go interface hierarchy,
// avoiding an inheritance-style type hierarchy so stable and mutable stay
// distinct record types — callers switch on Kind() rather than
// type-asserting.
type Structure struct {
	kind   StructureKind
	origin ObjectID
	target ObjectID
	owner  ObjectID
	items  *OrderedSet[ObjectID]
}

// UnstructuredStructure returns the Unstructured variant.
func UnstructuredStructure() Structure {
	return Structure{kind: StructureUnstructured}
}

// NodeStructure returns the Node variant.
func NodeStructure() Structure {
	return Structure{kind: StructureNode}
}

// EdgeStructure returns the Edge variant with the given endpoints.
func EdgeStructure(origin, target ObjectID) Structure {
	return Structure{kind: StructureEdge, origin: origin, target: target}
}

// OrderedSetStructure returns the OrderedSet variant owned by owner,
// containing items (copied into a fresh OrderedSet preserving order).
func OrderedSetStructure(owner ObjectID, items ...ObjectID) Structure {
	return Structure{kind: StructureOrderedSet, owner: owner, items: NewOrderedSet(items...)}
}

// Kind returns the tag.
func (s Structure) Kind() StructureKind { return s.kind }

// Endpoints returns the Edge origin/target. Second result is false unless
// Kind() == StructureEdge.
func (s Structure) Endpoints() (origin, target ObjectID, ok bool) {
	if s.kind != StructureEdge {
		return 0, 0, false
	}
	return s.origin, s.target, true
}

// OwnerAndItems returns the OrderedSet owner and member ids in order.
// Second result is false unless Kind() == StructureOrderedSet.
func (s Structure) OwnerAndItems() (owner ObjectID, items []ObjectID, ok bool) {
	if s.kind != StructureOrderedSet {
		return 0, nil, false
	}
	return s.owner, s.items.Items(), true
}

// containsItem reports whether an OrderedSet structure lists id as a member.
func (s Structure) containsItem(id ObjectID) bool {
	return s.kind == StructureOrderedSet && s.items.Contains(id)
}

// withoutItem returns a copy of an OrderedSet structure with id removed.
func (s Structure) withoutItem(id ObjectID) Structure {
	items := s.items.Clone()
	items.Remove(id)
	return Structure{kind: StructureOrderedSet, owner: s.owner, items: items}
}

// referencesAsEndpoint reports whether an Edge structure has id as its
// origin or target.
func (s Structure) referencesAsEndpoint(id ObjectID) bool {
	return s.kind == StructureEdge && (s.origin == id || s.target == id)
}

// Clone returns an independent copy (OrderedSet items get their own backing
// set).
func (s Structure) Clone() Structure {
	out := s
	if s.kind == StructureOrderedSet {
		out.items = s.items.Clone()
	}
	return out
}
