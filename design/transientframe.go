package design

import (
	"github.com/kasuganosora/designstore/pkg/metamodel"
	"github.com/kasuganosora/designstore/pkg/utils"
	"github.com/kasuganosora/designstore/pkg/variant"
)

// FrameState is a TransientFrame's lifecycle state. Mutation is allowed
// only while Transient.
type FrameState int

const (
	Transient FrameState = iota
	Accepted
	Discarded
)

func (s FrameState) String() string {
	switch s {
	case Transient:
		return "Transient"
	case Accepted:
		return "Accepted"
	case Discarded:
		return "Discarded"
	default:
		return "Unknown"
	}
}

// frameEntry boxes one object's current representation in a TransientFrame:
// either a shared, immutable Stable snapshot or a locally-owned Mutable
// transient object.
type frameEntry struct {
	objectID ObjectID
	stable   *ObjectSnapshot
	mutable  *TransientObject
}

// EntityID implements Identified, keyed by ObjectID — a TransientFrame holds
// at most one current representation per object.
func (e *frameEntry) EntityID() ID { return ID(e.objectID) }

func (e *frameEntry) node() graphNode {
	if e.mutable != nil {
		return e.mutable
	}
	return e.stable
}

func (e *frameEntry) isMutable() bool { return e.mutable != nil }

// TransientFrame accumulates an atomic change set against a design: creates,
// mutations, hierarchy edits and removals, all undone by Discard or made
// permanent by Design.Accept.
type TransientFrame struct {
	design  *Design
	frameID FrameID
	state   FrameState

	entities     *EntityTable[*frameEntry]
	reservations map[ID]struct{}
	removedIDs   map[ObjectID]struct{}
}

// EntityID implements Identified, keyed by FrameID.
func (f *TransientFrame) EntityID() ID { return ID(f.frameID) }

// FrameID returns the frame's identity.
func (f *TransientFrame) FrameID() FrameID { return f.frameID }

// State returns the current lifecycle state.
func (f *TransientFrame) State() FrameState { return f.state }

func (f *TransientFrame) requireTransient() {
	if f.state != Transient {
		panic(NewErrFrameNotTransient(ID(f.frameID), f.state))
	}
}

func (f *TransientFrame) reserve(id ID) { f.reservations[id] = struct{}{} }

// lookup implements graphLookup against this frame's current contents.
func (f *TransientFrame) lookup(id ObjectID) (graphNode, bool) {
	entry, ok := f.entities.Lookup(ID(id))
	if !ok {
		return nil, false
	}
	return entry.node(), true
}

// Create allocates a new object. objectID and snapshotID, if non-nil, are
// proposed ids to reserve; otherwise fresh ones are minted. structure, if
// nil, defaults per the type's declared structural kind; a non-nil
// structure whose Kind() disagrees with the type's declared kind is a
// programming error.
func (f *TransientFrame) Create(mm metamodel.Metamodel, typeName string, objectID *ObjectID, snapshotID *SnapshotID, structure *Structure, attributes map[string]variant.Variant) *TransientObject {
	f.requireTransient()

	t, ok := mm.ObjectType(typeName)
	if !ok {
		panic(NewErrUnknownType(typeName))
	}

	oid := f.reserveOrCreateObjectID(objectID)
	sid := f.reserveOrCreateSnapshotID(snapshotID)

	var structValue Structure
	if structure != nil {
		if structuralKindOf(t.Structural) != structure.Kind() {
			panic(NewErrStructuralKindMismatch(typeName, structuralKindOf(t.Structural), structure.Kind()))
		}
		structValue = *structure
	} else {
		structValue = defaultStructureFor(t.Structural)
	}

	attrs := make(map[string]variant.Variant, len(t.Attributes))
	for _, decl := range t.Attributes {
		attrs[decl.Name] = decl.Default
	}
	for k, v := range attributes {
		checkNotReserved(k)
		attrs[k] = v
	}

	obj := newTransientObject(oid, sid, typeName, structValue, attrs)
	f.entities.Insert(&frameEntry{objectID: oid, mutable: obj})
	return obj
}

// CreateFromValues is Create for foreign loaders holding untyped attribute
// data: every value is coerced through variant.FromGo before the object is
// built.
func (f *TransientFrame) CreateFromValues(mm metamodel.Metamodel, typeName string, objectID *ObjectID, snapshotID *SnapshotID, structure *Structure, values map[string]interface{}) *TransientObject {
	return f.Create(mm, typeName, objectID, snapshotID, structure, variant.FromGoMap(values))
}

func defaultStructureFor(kind metamodel.StructuralKind) Structure {
	switch kind {
	case metamodel.StructuralNode:
		return NodeStructure()
	case metamodel.StructuralEdge:
		return EdgeStructure(0, 0)
	case metamodel.StructuralOrderedSet:
		return OrderedSetStructure(0)
	default:
		return UnstructuredStructure()
	}
}

func (f *TransientFrame) reserveOrCreateObjectID(proposed *ObjectID) ObjectID {
	if proposed == nil {
		id := f.design.identity.CreateAndReserve(KindObject)
		f.reserve(id)
		return ObjectID(id)
	}
	id := ID(*proposed)
	if !f.design.identity.ReserveIfNeeded(id, KindObject) {
		panic(NewErrDuplicateID(id))
	}
	f.reserve(id)
	return *proposed
}

func (f *TransientFrame) reserveOrCreateSnapshotID(proposed *SnapshotID) SnapshotID {
	if proposed == nil {
		id := f.design.identity.CreateAndReserve(KindSnapshot)
		f.reserve(id)
		return SnapshotID(id)
	}
	id := ID(*proposed)
	if !f.design.identity.ReserveIfNeeded(id, KindSnapshot) {
		panic(NewErrDuplicateID(id))
	}
	f.reserve(id)
	return *proposed
}

// Insert adds an existing stable snapshot to the frame, validating its
// structural references against the frame's current contents. A stable
// snapshot already held by another frame may be inserted here too — sharing
// a snapshot across frames is allowed; only the target frame's contents are
// checked.
func (f *TransientFrame) Insert(snapshot *ObjectSnapshot) error {
	f.requireTransient()
	var v StructuralValidator
	if violations := v.ValidateSnapshot(snapshot, f.lookup); len(violations) > 0 {
		return NewStructuralIntegrityError(violations)
	}
	f.entities.Insert(&frameEntry{objectID: snapshot.ObjectID, stable: snapshot})
	return nil
}

// UnsafeInsert adds an existing stable snapshot without structural
// validation, for batch loaders that have already validated a whole
// import in aggregate.
func (f *TransientFrame) UnsafeInsert(snapshot *ObjectSnapshot) {
	f.requireTransient()
	f.entities.Insert(&frameEntry{objectID: snapshot.ObjectID, stable: snapshot})
}

// Mutate returns the mutable TransientObject for id, converting a stable
// entry into one on first call (allocating a fresh reserved snapshot_id) and
// returning the same object on every subsequent call — idempotent.
func (f *TransientFrame) Mutate(id ObjectID) *TransientObject {
	f.requireTransient()
	entry, ok := f.entities.Lookup(ID(id))
	if !ok {
		panic(NewErrUnknownID(ID(id)))
	}
	if entry.mutable != nil {
		return entry.mutable
	}

	newSnapshotID := SnapshotID(f.design.identity.CreateAndReserve(KindSnapshot))
	f.reserve(ID(newSnapshotID))
	obj := fromSnapshot(entry.stable, newSnapshotID)
	f.entities.Replace(&frameEntry{objectID: id, mutable: obj})
	return obj
}

// RemoveCascading removes id and every object its removal cascades to: its
// parent is mutated to detach the child reference, its children are
// scheduled for removal, every edge touching a removed id is scheduled, and
// every ordered-set containing a removed id is either removed (if its
// owner was removed) or mutated to drop the item. The returned set includes
// the seed id.
func (f *TransientFrame) RemoveCascading(id ObjectID) map[ObjectID]struct{} {
	f.requireTransient()

	removed := make(map[ObjectID]struct{})
	queue := []ObjectID{id}

	for len(queue) > 0 {
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if _, already := removed[cur]; already {
				continue
			}
			entry, ok := f.entities.Lookup(ID(cur))
			if !ok {
				continue
			}
			removed[cur] = struct{}{}
			f.removedIDs[cur] = struct{}{}
			node := entry.node()

			if parent, hasParent := node.NodeParent(); hasParent {
				if _, parentRemoved := removed[parent]; !parentRemoved {
					f.Mutate(parent).removeChildID(cur)
				}
			}
			for _, child := range node.NodeChildren() {
				queue = append(queue, child)
			}

			f.entities.Remove(ID(cur))
		}

		f.Each(func(other ObjectID, n graphNode) bool {
			if _, alreadyRemoved := removed[other]; alreadyRemoved {
				return true
			}
			structure := n.NodeStructure()
			switch structure.Kind() {
			case StructureEdge:
				origin, target, _ := structure.Endpoints()
				if _, originGone := removed[origin]; originGone {
					queue = append(queue, other)
				} else if _, targetGone := removed[target]; targetGone {
					queue = append(queue, other)
				}
			case StructureOrderedSet:
				owner, items, _ := structure.OwnerAndItems()
				if _, ownerGone := removed[owner]; ownerGone {
					queue = append(queue, other)
					return true
				}
				for _, item := range items {
					if _, itemGone := removed[item]; itemGone {
						mutated := f.Mutate(other)
						mutated.Structure = mutated.Structure.withoutItem(item)
						mutated.hierarchyChanged = true
					}
				}
			}
			return true
		})
	}

	return removed
}

// AddChild attaches child to parent. child must currently have no parent.
func (f *TransientFrame) AddChild(parent, child ObjectID) {
	f.requireTransient()
	childNode := f.Mutate(child)
	if _, hasParent := childNode.NodeParent(); hasParent {
		panic(NewErrDuplicateID(ID(child)))
	}
	p := parent
	childNode.setParent(&p)
	f.Mutate(parent).addChildID(child)
}

// RemoveChild detaches child from parent.
func (f *TransientFrame) RemoveChild(parent, child ObjectID) {
	f.requireTransient()
	f.Mutate(parent).removeChildID(child)
	f.Mutate(child).setParent(nil)
}

// SetParent sets child's parent directly, also registering child with the
// new parent's children list.
func (f *TransientFrame) SetParent(child, parent ObjectID) {
	f.requireTransient()
	p := parent
	f.Mutate(child).setParent(&p)
	f.Mutate(parent).addChildID(child)
}

// RemoveFromParent detaches child from whatever parent it currently has, if
// any.
func (f *TransientFrame) RemoveFromParent(child ObjectID) {
	f.requireTransient()
	obj := f.Mutate(child)
	if obj.Parent == nil {
		return
	}
	parent := *obj.Parent
	f.Mutate(parent).removeChildID(child)
	obj.setParent(nil)
}

// ValidateStructure runs StructuralValidator across every entry currently in
// the frame.
func (f *TransientFrame) ValidateStructure() error {
	nodes := f.graphNodes()
	var v StructuralValidator
	return v.ValidateSnapshots(nodes, f.lookup)
}

func (f *TransientFrame) graphNodes() []graphNode {
	out := make([]graphNode, 0, f.entities.Len())
	f.entities.Each(func(_ ID, e *frameEntry) bool {
		out = append(out, e.node())
		return true
	})
	return out
}

// accept flips the frame's state to Accepted and promotes every reservation
// it holds from reserved to used. Design.Accept calls this after building
// the StableFrame.
func (f *TransientFrame) accept() {
	f.requireTransient()
	for resID := range f.reservations {
		kind, ok := f.design.identity.KindOf(resID)
		if !ok {
			continue
		}
		f.design.identity.Use(resID, kind)
	}
	f.state = Accepted
}

// Discard releases every reservation this frame holds and marks it
// Discarded. Calling Discard twice is a programming error (Discard requires
// Transient).
func (f *TransientFrame) Discard() {
	f.requireTransient()
	for resID := range f.reservations {
		f.design.identity.ReleaseReservation(resID)
	}
	f.state = Discarded
}

// EdgeIDs returns the ids of every Edge-structured entry currently in the
// frame.
func (f *TransientFrame) EdgeIDs() []ObjectID {
	var out []ObjectID
	f.Each(func(id ObjectID, n graphNode) bool {
		if n.NodeStructure().Kind() == StructureEdge {
			out = append(out, id)
		}
		return true
	})
	return out
}

// NodeIDs returns the ids of every Node-structured entry currently in the
// frame.
func (f *TransientFrame) NodeIDs() []ObjectID {
	var out []ObjectID
	f.Each(func(id ObjectID, n graphNode) bool {
		if n.NodeStructure().Kind() == StructureNode {
			out = append(out, id)
		}
		return true
	})
	return out
}

// Contains reports whether id currently has an entry in the frame.
func (f *TransientFrame) Contains(id ObjectID) bool {
	return f.entities.Contains(ID(id))
}

// Object returns the current (stable-or-mutable) view of id.
func (f *TransientFrame) Object(id ObjectID) (graphNode, bool) {
	return f.lookup(id)
}

// RemovedObjects returns every id removed from the frame via RemoveCascading
// during this transaction.
func (f *TransientFrame) RemovedObjects() []ObjectID {
	return utils.MapKeys(f.removedIDs)
}

// HasChanges reports whether any entry in the frame is mutable or any
// object has been removed.
func (f *TransientFrame) HasChanges() bool {
	if len(f.removedIDs) > 0 {
		return true
	}
	hasMutable := false
	f.entities.Each(func(_ ID, e *frameEntry) bool {
		if e.isMutable() {
			hasMutable = true
			return false
		}
		return true
	})
	return hasMutable
}

// ChangedObjects returns the ids of every mutable (touched) entry.
func (f *TransientFrame) ChangedObjects() []ObjectID {
	var out []ObjectID
	f.entities.Each(func(_ ID, e *frameEntry) bool {
		if e.isMutable() {
			out = append(out, e.objectID)
		}
		return true
	})
	return out
}

// MutableObjects returns every mutable TransientObject currently in the
// frame.
func (f *TransientFrame) MutableObjects() []*TransientObject {
	var out []*TransientObject
	f.entities.Each(func(_ ID, e *frameEntry) bool {
		if e.isMutable() {
			out = append(out, e.mutable)
		}
		return true
	})
	return out
}

// Each iterates every current entry (stable or mutable) in insertion order.
func (f *TransientFrame) Each(fn func(id ObjectID, n graphNode) bool) {
	f.entities.Each(func(_ ID, e *frameEntry) bool {
		return fn(e.objectID, e.node())
	})
}
