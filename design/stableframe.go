package design

import (
	"strconv"

	"github.com/kasuganosora/designstore/pkg/metamodel"
	"github.com/kasuganosora/designstore/pkg/utils"
)

// EdgeView is a precomputed adjacency entry: from a node's point of view,
// one edge touching it and the node at its other end.
type EdgeView struct {
	EdgeID ObjectID
	Other  ObjectID
}

// StableFrame is the immutable, versioned snapshot set constructed only by
// Design.Accept. It precomputes the adjacency index once at construction
// rather than recomputing it per query.
type StableFrame struct {
	frameID   FrameID
	snapshots []*ObjectSnapshot

	byID        map[ObjectID]*ObjectSnapshot
	nodeIDs     []ObjectID
	edgeIDs     []ObjectID
	outgoing    map[ObjectID][]EdgeView
	incoming    map[ObjectID][]EdgeView
	orderedSets map[ObjectID]*OrderedSet[ObjectID]
}

// EntityID implements Identified, keyed by FrameID.
func (f *StableFrame) EntityID() ID { return ID(f.frameID) }

// newStableFrame builds a StableFrame and its index from a finished
// snapshot list.
func newStableFrame(frameID FrameID, snapshots []*ObjectSnapshot) *StableFrame {
	f := &StableFrame{
		frameID:     frameID,
		snapshots:   snapshots,
		byID:        make(map[ObjectID]*ObjectSnapshot, len(snapshots)),
		outgoing:    make(map[ObjectID][]EdgeView),
		incoming:    make(map[ObjectID][]EdgeView),
		orderedSets: make(map[ObjectID]*OrderedSet[ObjectID]),
	}
	for _, s := range snapshots {
		f.byID[s.ObjectID] = s
	}
	for _, s := range snapshots {
		switch s.Structure.Kind() {
		case StructureNode:
			f.nodeIDs = append(f.nodeIDs, s.ObjectID)
		case StructureEdge:
			f.edgeIDs = append(f.edgeIDs, s.ObjectID)
			origin, target, _ := s.Structure.Endpoints()
			f.outgoing[origin] = append(f.outgoing[origin], EdgeView{EdgeID: s.ObjectID, Other: target})
			f.incoming[target] = append(f.incoming[target], EdgeView{EdgeID: s.ObjectID, Other: origin})
		case StructureOrderedSet:
			owner, items, _ := s.Structure.OwnerAndItems()
			f.orderedSets[owner] = NewOrderedSet(items...)
		}
	}
	return f
}

// FrameID returns the frame's identity.
func (f *StableFrame) FrameID() FrameID { return f.frameID }

// Contains reports whether object_id has a snapshot in this frame.
func (f *StableFrame) Contains(id ObjectID) bool {
	_, ok := f.byID[id]
	return ok
}

// Get returns the snapshot for object_id.
func (f *StableFrame) Get(id ObjectID) (*ObjectSnapshot, bool) {
	s, ok := f.byID[id]
	return s, ok
}

// Snapshots returns every snapshot, in insertion order.
func (f *StableFrame) Snapshots() []*ObjectSnapshot {
	out := make([]*ObjectSnapshot, len(f.snapshots))
	copy(out, f.snapshots)
	return out
}

// NodeIDs returns the ids of every Node-structured snapshot.
func (f *StableFrame) NodeIDs() []ObjectID { return append([]ObjectID(nil), f.nodeIDs...) }

// EdgeIDs returns the ids of every Edge-structured snapshot.
func (f *StableFrame) EdgeIDs() []ObjectID { return append([]ObjectID(nil), f.edgeIDs...) }

// Nodes returns every Node-structured snapshot whose type matches typeName
// (empty typeName matches all types).
func (f *StableFrame) Nodes(typeName string) []*ObjectSnapshot {
	return f.filterIDs(f.nodeIDs, func(s *ObjectSnapshot) bool {
		return typeName == "" || s.TypeName == typeName
	})
}

// Edges returns every Edge-structured snapshot whose type matches typeName
// (empty typeName matches all types).
func (f *StableFrame) Edges(typeName string) []*ObjectSnapshot {
	return f.filterIDs(f.edgeIDs, func(s *ObjectSnapshot) bool {
		return typeName == "" || s.TypeName == typeName
	})
}

// NodesByTrait returns every Node-structured snapshot whose type carries
// trait, per mm. Unlike FilterTrait it never touches non-node snapshots, so
// a trait shared with an edge or unstructured type stays out of the result.
func (f *StableFrame) NodesByTrait(mm metamodel.Metamodel, trait string) []*ObjectSnapshot {
	return f.filterIDs(f.nodeIDs, func(s *ObjectSnapshot) bool {
		return mm.HasTrait(s.TypeName, trait)
	})
}

// EdgesByTrait returns every Edge-structured snapshot whose type carries
// trait, per mm.
func (f *StableFrame) EdgesByTrait(mm metamodel.Metamodel, trait string) []*ObjectSnapshot {
	return f.filterIDs(f.edgeIDs, func(s *ObjectSnapshot) bool {
		return mm.HasTrait(s.TypeName, trait)
	})
}

func (f *StableFrame) filterIDs(ids []ObjectID, pred func(*ObjectSnapshot) bool) []*ObjectSnapshot {
	return utils.FilterSlice(utils.MapSlice(ids, func(id ObjectID) *ObjectSnapshot { return f.byID[id] }), pred)
}

// Outgoing returns the edges leaving id, with the node at the other end.
func (f *StableFrame) Outgoing(id ObjectID) []EdgeView {
	return append([]EdgeView(nil), f.outgoing[id]...)
}

// Incoming returns the edges arriving at id, with the node at the other end.
func (f *StableFrame) Incoming(id ObjectID) []EdgeView {
	return append([]EdgeView(nil), f.incoming[id]...)
}

// OrderedSetItems returns the items of the ordered-set owned by id.
func (f *StableFrame) OrderedSetItems(owner ObjectID) ([]ObjectID, bool) {
	s, ok := f.orderedSets[owner]
	if !ok {
		return nil, false
	}
	return s.Items(), true
}

// Top returns the roots of the parent/child forest: every snapshot with no
// parent.
func (f *StableFrame) Top() []*ObjectSnapshot {
	var out []*ObjectSnapshot
	for _, s := range f.snapshots {
		if !s.HasParent() {
			out = append(out, s)
		}
	}
	return out
}

// Filter returns every snapshot for which predicate returns true.
func (f *StableFrame) Filter(predicate func(*ObjectSnapshot) bool) []*ObjectSnapshot {
	var out []*ObjectSnapshot
	for _, s := range f.snapshots {
		if predicate(s) {
			out = append(out, s)
		}
	}
	return out
}

// First returns the first snapshot for which predicate returns true.
func (f *StableFrame) First(predicate func(*ObjectSnapshot) bool) (*ObjectSnapshot, bool) {
	for _, s := range f.snapshots {
		if predicate(s) {
			return s, true
		}
	}
	return nil, false
}

// FilterType returns every snapshot of the given type.
func (f *StableFrame) FilterType(typeName string) []*ObjectSnapshot {
	return f.Filter(func(s *ObjectSnapshot) bool { return s.TypeName == typeName })
}

// FilterTrait returns every snapshot whose type carries trait, per mm.
func (f *StableFrame) FilterTrait(mm metamodel.Metamodel, trait string) []*ObjectSnapshot {
	return f.Filter(func(s *ObjectSnapshot) bool { return mm.HasTrait(s.TypeName, trait) })
}

// Object looks up a snapshot by its label attribute value, as declared by
// the type's Label field in mm. Returns the first match in frame order.
func (f *StableFrame) Object(mm metamodel.Metamodel, name string) (*ObjectSnapshot, bool) {
	for _, s := range f.snapshots {
		t, ok := mm.ObjectType(s.TypeName)
		if !ok || t.Label == "" {
			continue
		}
		if v, present := s.Attribute(t.Label); present {
			if str, isStr := v.AsString(); isStr && str == name {
				return s, true
			}
		}
	}
	return nil, false
}

// ObjectByRef resolves a string reference that is either a decimal
// object_id or (failing that) a label name.
func (f *StableFrame) ObjectByRef(mm metamodel.Metamodel, ref string) (*ObjectSnapshot, bool) {
	if n, err := strconv.ParseUint(ref, 10, 64); err == nil {
		return f.Get(ObjectID(n))
	}
	return f.Object(mm, ref)
}

// DependentEdges returns every edge whose origin or target is in ids.
func (f *StableFrame) DependentEdges(ids []ObjectID) []*ObjectSnapshot {
	want := make(map[ObjectID]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	return f.Filter(func(s *ObjectSnapshot) bool {
		origin, target, ok := s.Structure.Endpoints()
		if !ok {
			return false
		}
		_, o := want[origin]
		_, t := want[target]
		return o || t
	})
}

// DistinctAttribute returns the distinct, non-null values observed for
// attribute name across all snapshots, first-seen order.
func (f *StableFrame) DistinctAttribute(name string) []string {
	var values []string
	for _, s := range f.snapshots {
		v, ok := s.Attribute(name)
		if !ok || v.IsNull() {
			continue
		}
		values = append(values, v.String())
	}
	return utils.UniqueStrings(values)
}

// DistinctTypes returns the distinct type names present in the frame,
// first-seen order.
func (f *StableFrame) DistinctTypes() []string {
	return utils.UniqueStrings(utils.MapSlice(f.snapshots, func(s *ObjectSnapshot) string { return s.TypeName }))
}

// SharedTraits returns the traits common to every type present in the
// frame's snapshot set, per mm.
func (f *StableFrame) SharedTraits(mm metamodel.Metamodel) []string {
	types := f.DistinctTypes()
	if len(types) == 0 {
		return nil
	}
	first, ok := mm.ObjectType(types[0])
	if !ok {
		return nil
	}
	shared := utils.UniqueStrings(first.Traits)
	for _, typeName := range types[1:] {
		t, ok := mm.ObjectType(typeName)
		if !ok {
			return nil
		}
		shared = utils.FilterSlice(shared, func(tr string) bool { return utils.ContainsSlice(t.Traits, tr) })
	}
	return shared
}

// BrokenReferences returns, for every snapshot, the set of ids it
// references that do not resolve within this frame. Empty for any
// successfully-accepted frame, since Design.Accept validates structure
// before constructing it; exposed for diagnostics and tests.
func (f *StableFrame) BrokenReferences() map[ObjectID][]ObjectID {
	var v StructuralValidator
	lookup := f.asGraphLookup()
	out := make(map[ObjectID][]ObjectID)
	for _, s := range f.snapshots {
		if broken := v.BrokenReferences(s, lookup); len(broken) > 0 {
			out[s.ObjectID] = broken
		}
	}
	return out
}

func (f *StableFrame) asGraphLookup() graphLookup {
	return func(id ObjectID) (graphNode, bool) {
		s, ok := f.byID[id]
		if !ok {
			return nil, false
		}
		return s, true
	}
}
