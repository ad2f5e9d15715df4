package design

import "github.com/kasuganosora/designstore/pkg/variant"

// TransientObject is the mutable twin of a snapshot, with change-tracking
// sufficient to let TransientFrame report ChangedObjects without diffing.
// It converts back to a stable ObjectSnapshot at commit (Design.Accept).
type TransientObject struct {
	ObjectID   ObjectID
	SnapshotID SnapshotID
	TypeName   string
	Structure  Structure
	Parent     *ObjectID
	Children   *OrderedSet[ObjectID]
	Attributes map[string]variant.Variant

	changedAttributes map[string]struct{}
	hierarchyChanged  bool
}

// EntityID implements Identified, keyed by SnapshotID (the same identity
// space a promoted snapshot will occupy).
func (t *TransientObject) EntityID() ID { return ID(t.SnapshotID) }

// newTransientObject builds a fresh, unattached TransientObject (used by
// TransientFrame.Create).
func newTransientObject(objectID ObjectID, snapshotID SnapshotID, typeName string, structure Structure, attrs map[string]variant.Variant) *TransientObject {
	return &TransientObject{
		ObjectID:          objectID,
		SnapshotID:        snapshotID,
		TypeName:          typeName,
		Structure:         structure,
		Children:          NewOrderedSet[ObjectID](),
		Attributes:        attrs,
		changedAttributes: make(map[string]struct{}),
	}
}

// fromSnapshot seeds a new TransientObject from a stable snapshot, assigning
// it a fresh reserved snapshot id (TransientFrame.Mutate's initialisation
// step). The clone is independent of the original snapshot's maps.
func fromSnapshot(snap *ObjectSnapshot, newSnapshotID SnapshotID) *TransientObject {
	clone := snap.clone()
	return &TransientObject{
		ObjectID:          clone.ObjectID,
		SnapshotID:        newSnapshotID,
		TypeName:          clone.TypeName,
		Structure:         clone.Structure,
		Parent:            clone.Parent,
		Children:          clone.Children,
		Attributes:        clone.Attributes,
		changedAttributes: make(map[string]struct{}),
	}
}

// reservedAttributeNames may not appear as ordinary attributes on an
// object; accessors synthesise their values instead.
var reservedAttributeNames = map[string]struct{}{
	"id": {}, "snapshot_id": {}, "origin": {}, "target": {},
	"type": {}, "parent": {}, "structure": {},
}

func checkNotReserved(name string) {
	if _, reserved := reservedAttributeNames[name]; reserved {
		panic(NewErrReservedAttribute(name))
	}
}

// SetAttribute assigns an attribute value and marks it changed. Assigning a
// reserved name is a programming error.
func (t *TransientObject) SetAttribute(name string, v variant.Variant) {
	checkNotReserved(name)
	t.Attributes[name] = v
	t.changedAttributes[name] = struct{}{}
}

// SetAttributeValue coerces a raw Go value through variant.FromGo and
// assigns it, for foreign loaders feeding untyped import data rather than
// pre-built Variants.
func (t *TransientObject) SetAttributeValue(name string, value interface{}) {
	t.SetAttribute(name, variant.FromGo(value))
}

// Attribute returns a declared attribute's value, synthesising reserved
// names the same way ObjectSnapshot.Attribute does.
func (t *TransientObject) Attribute(name string) (variant.Variant, bool) {
	switch name {
	case "id":
		return variant.String(formatID(ID(t.ObjectID))), true
	case "snapshot_id":
		return variant.String(formatID(ID(t.SnapshotID))), true
	case "type":
		return variant.String(t.TypeName), true
	case "structure":
		return variant.String(t.Structure.Kind().String()), true
	case "parent":
		if t.Parent == nil {
			return variant.Null(), true
		}
		return variant.String(formatID(ID(*t.Parent))), true
	case "origin":
		if origin, _, ok := t.Structure.Endpoints(); ok {
			return variant.String(formatID(ID(origin))), true
		}
		return variant.Null(), false
	case "target":
		if _, target, ok := t.Structure.Endpoints(); ok {
			return variant.String(formatID(ID(target))), true
		}
		return variant.Null(), false
	default:
		v, ok := t.Attributes[name]
		return v, ok
	}
}

// setParent sets the parent pointer directly and marks the hierarchy
// changed. Hierarchy helpers on TransientFrame call this after routing
// through Mutate.
func (t *TransientObject) setParent(parent *ObjectID) {
	t.Parent = parent
	t.hierarchyChanged = true
}

// addChildID records a child id and marks the hierarchy changed.
func (t *TransientObject) addChildID(child ObjectID) {
	t.Children.Add(child)
	t.hierarchyChanged = true
}

// removeChildID drops a child id and marks the hierarchy changed.
func (t *TransientObject) removeChildID(child ObjectID) {
	t.Children.Remove(child)
	t.hierarchyChanged = true
}

// HierarchyChanged reports whether Parent or Children were touched since
// creation/seeding.
func (t *TransientObject) HierarchyChanged() bool { return t.hierarchyChanged }

// graphNode accessors, mirrored from ObjectSnapshot so StructuralValidator
// can treat the two uniformly (see snapshot.go).

func (t *TransientObject) NodeID() ObjectID         { return t.ObjectID }
func (t *TransientObject) NodeType() string         { return t.TypeName }
func (t *TransientObject) NodeStructure() Structure { return t.Structure }
func (t *TransientObject) NodeChildren() []ObjectID { return t.Children.Items() }

func (t *TransientObject) NodeParent() (ObjectID, bool) {
	if t.Parent == nil {
		return 0, false
	}
	return *t.Parent, true
}

// ChangedAttributes returns the names of attributes set since creation or
// seeding from a stable snapshot.
func (t *TransientObject) ChangedAttributes() []string {
	out := make([]string, 0, len(t.changedAttributes))
	for name := range t.changedAttributes {
		out = append(out, name)
	}
	return out
}

// toSnapshot promotes this transient object to an immutable ObjectSnapshot,
// preserving snapshot_id, object_id, type, structure, parent, children and
// attributes. Uses go-deepcopy so the snapshot's maps/sets are fully
// independent of this transient object's.
func (t *TransientObject) toSnapshot() *ObjectSnapshot {
	snap := &ObjectSnapshot{
		ObjectID:   t.ObjectID,
		SnapshotID: t.SnapshotID,
		TypeName:   t.TypeName,
		Structure:  t.Structure.Clone(),
		Children:   t.Children.Clone(),
		Attributes: make(map[string]variant.Variant, len(t.Attributes)),
	}
	if t.Parent != nil {
		p := *t.Parent
		snap.Parent = &p
	}
	deepCopyAttributes(t.Attributes, snap.Attributes)
	return snap
}
