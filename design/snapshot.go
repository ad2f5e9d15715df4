package design

import "github.com/kasuganosora/designstore/pkg/variant"

// LogicalObject carries just the persistent identity of an object that
// currently has at least one live snapshot. Its ref-count is tracked by the
// EntityTable it lives in, not by this struct; once that count reaches zero
// the table drops the entry and the object is collected.
type LogicalObject struct {
	ObjectID ObjectID
}

// EntityID implements Identified.
func (o LogicalObject) EntityID() ID { return ID(o.ObjectID) }

// ObjectSnapshot is the immutable record of one version of one object.
// Once constructed it is never mutated; TransientFrame.Mutate produces a
// TransientObject seeded from it instead.
type ObjectSnapshot struct {
	ObjectID   ObjectID
	SnapshotID SnapshotID
	TypeName   string
	Structure  Structure
	Parent     *ObjectID
	Children   *OrderedSet[ObjectID]
	Attributes map[string]variant.Variant
}

// EntityID implements Identified, keyed by SnapshotID: two different
// snapshots never share a snapshot_id.
func (s *ObjectSnapshot) EntityID() ID { return ID(s.SnapshotID) }

// HasParent reports whether the snapshot lists a parent.
func (s *ObjectSnapshot) HasParent() bool { return s.Parent != nil }

// The graphNode methods below let StructuralValidator operate identically
// over stable snapshots and transient objects without a type switch.

func (s *ObjectSnapshot) NodeID() ObjectID           { return s.ObjectID }
func (s *ObjectSnapshot) NodeType() string           { return s.TypeName }
func (s *ObjectSnapshot) NodeStructure() Structure   { return s.Structure }
func (s *ObjectSnapshot) NodeChildren() []ObjectID   { return s.Children.Items() }

func (s *ObjectSnapshot) NodeParent() (ObjectID, bool) {
	if s.Parent == nil {
		return 0, false
	}
	return *s.Parent, true
}

// Attribute returns the value of a declared (non-reserved) attribute.
// Reserved names (id, snapshot_id, origin, target, type, parent, structure)
// are synthesised by Attribute rather than looked up in the map.
func (s *ObjectSnapshot) Attribute(name string) (variant.Variant, bool) {
	switch name {
	case "id":
		return variant.String(formatID(ID(s.ObjectID))), true
	case "snapshot_id":
		return variant.String(formatID(ID(s.SnapshotID))), true
	case "type":
		return variant.String(s.TypeName), true
	case "structure":
		return variant.String(s.Structure.Kind().String()), true
	case "parent":
		if s.Parent == nil {
			return variant.Null(), true
		}
		return variant.String(formatID(ID(*s.Parent))), true
	case "origin":
		if origin, _, ok := s.Structure.Endpoints(); ok {
			return variant.String(formatID(ID(origin))), true
		}
		return variant.Null(), false
	case "target":
		if _, target, ok := s.Structure.Endpoints(); ok {
			return variant.String(formatID(ID(target))), true
		}
		return variant.Null(), false
	default:
		v, ok := s.Attributes[name]
		return v, ok
	}
}

// clone returns a deep copy of the snapshot, independent children set and
// attribute map.
func (s *ObjectSnapshot) clone() *ObjectSnapshot {
	out := &ObjectSnapshot{
		ObjectID:   s.ObjectID,
		SnapshotID: s.SnapshotID,
		TypeName:   s.TypeName,
		Structure:  s.Structure.Clone(),
		Children:   s.Children.Clone(),
		Attributes: make(map[string]variant.Variant, len(s.Attributes)),
	}
	if s.Parent != nil {
		p := *s.Parent
		out.Parent = &p
	}
	for k, v := range s.Attributes {
		out.Attributes[k] = v
	}
	return out
}
