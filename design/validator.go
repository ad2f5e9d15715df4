package design

import "go.uber.org/multierr"

// graphNode is the read-only view StructuralValidator needs of one object,
// satisfied identically by *ObjectSnapshot and *TransientObject.
type graphNode interface {
	NodeID() ObjectID
	NodeType() string
	NodeStructure() Structure
	NodeParent() (ObjectID, bool)
	NodeChildren() []ObjectID
}

// graphLookup resolves an ObjectID to its node within the frame under
// validation. StableFrame and TransientFrame each supply one.
type graphLookup func(ObjectID) (graphNode, bool)

// StructuralValidator holds no state; every method is a pure function over
// a (node, lookup) or (nodes, lookup) pair: scan a candidate set, return
// diagnostics, never mutate.
type StructuralValidator struct{}

// ValidateSnapshot checks one node's structural references against frame:
// edge endpoints exist and are Nodes; ordered-set owner and items exist;
// every listed child exists and its parent is this node; if this node has a
// parent, that parent exists and lists this node among its children.
func (StructuralValidator) ValidateSnapshot(n graphNode, lookup graphLookup) []StructuralViolation {
	var violations []StructuralViolation
	id := n.NodeID()
	structure := n.NodeStructure()

	switch structure.Kind() {
	case StructureEdge:
		origin, target, _ := structure.Endpoints()
		for _, endpoint := range []ObjectID{origin, target} {
			ep, ok := lookup(endpoint)
			if !ok {
				violations = append(violations, StructuralViolation{Kind: BrokenStructureReference, ObjectID: id, References: []ObjectID{endpoint}})
				continue
			}
			if ep.NodeStructure().Kind() != StructureNode {
				violations = append(violations, StructuralViolation{Kind: EdgeEndpointNotANode, ObjectID: id, References: []ObjectID{endpoint}})
			}
		}
	case StructureOrderedSet:
		owner, items, _ := structure.OwnerAndItems()
		if _, ok := lookup(owner); !ok {
			violations = append(violations, StructuralViolation{Kind: BrokenStructureReference, ObjectID: id, References: []ObjectID{owner}})
		}
		for _, item := range items {
			target, ok := lookup(item)
			if !ok {
				violations = append(violations, StructuralViolation{Kind: BrokenStructureReference, ObjectID: id, References: []ObjectID{item}})
				continue
			}
			if target.NodeStructure().Kind() == StructureOrderedSet {
				violations = append(violations, StructuralViolation{Kind: EdgeEndpointNotANode, ObjectID: id, References: []ObjectID{item}})
			}
		}
	}

	for _, child := range n.NodeChildren() {
		childNode, ok := lookup(child)
		if !ok {
			violations = append(violations, StructuralViolation{Kind: BrokenChild, ObjectID: id, References: []ObjectID{child}})
			continue
		}
		if parent, hasParent := childNode.NodeParent(); !hasParent || parent != id {
			violations = append(violations, StructuralViolation{Kind: ParentChildMismatch, ObjectID: id, References: []ObjectID{child}})
		}
	}

	if parent, ok := n.NodeParent(); ok {
		parentNode, found := lookup(parent)
		if !found {
			violations = append(violations, StructuralViolation{Kind: BrokenParent, ObjectID: id, References: []ObjectID{parent}})
		} else {
			listed := false
			for _, c := range parentNode.NodeChildren() {
				if c == id {
					listed = true
					break
				}
			}
			if !listed {
				violations = append(violations, StructuralViolation{Kind: ParentChildMismatch, ObjectID: id, References: []ObjectID{parent}})
			}
		}
	}

	return violations
}

// BrokenReferences is the non-throwing diagnostic variant of
// ValidateSnapshot: the set of ids referenced from n that do not resolve in
// frame (edge endpoints, ordered-set owner/items, children, parent).
func (v StructuralValidator) BrokenReferences(n graphNode, lookup graphLookup) []ObjectID {
	var broken []ObjectID
	seen := make(map[ObjectID]struct{})
	add := func(id ObjectID) {
		if _, ok := lookup(id); !ok {
			if _, dup := seen[id]; !dup {
				seen[id] = struct{}{}
				broken = append(broken, id)
			}
		}
	}

	structure := n.NodeStructure()
	switch structure.Kind() {
	case StructureEdge:
		origin, target, _ := structure.Endpoints()
		add(origin)
		add(target)
	case StructureOrderedSet:
		owner, items, _ := structure.OwnerAndItems()
		add(owner)
		for _, item := range items {
			add(item)
		}
	}
	for _, child := range n.NodeChildren() {
		add(child)
	}
	if parent, ok := n.NodeParent(); ok {
		add(parent)
	}
	return broken
}

// ValidateSnapshots validates every node in nodes against frame, then
// performs parent/child cycle detection across the whole set by repeatedly
// peeling nodes whose parent (if any) has already been peeled or has no
// parent itself; any node left unpeeled sits on a cycle or below one.
func (v StructuralValidator) ValidateSnapshots(nodes []graphNode, lookup graphLookup) error {
	var errs []error
	var allViolations []StructuralViolation
	for _, n := range nodes {
		allViolations = append(allViolations, v.ValidateSnapshot(n, lookup)...)
	}
	if len(allViolations) > 0 {
		errs = append(errs, NewStructuralIntegrityError(allViolations))
	}

	if cycleNodes := detectParentChildCycle(nodes); len(cycleNodes) > 0 {
		violations := make([]StructuralViolation, len(cycleNodes))
		for i, id := range cycleNodes {
			violations[i] = StructuralViolation{Kind: ParentChildCycle, ObjectID: id}
		}
		errs = append(errs, NewStructuralIntegrityError(violations))
	}

	return multierr.Combine(errs...)
}

// detectParentChildCycle peels nodes with no parent, or whose parent has
// already been peeled, until no more progress is made; any node left
// standing is on a parent/child cycle or descends from a node that is.
func detectParentChildCycle(nodes []graphNode) []ObjectID {
	parentOf := make(map[ObjectID]ObjectID, len(nodes))
	remaining := make(map[ObjectID]struct{}, len(nodes))
	for _, n := range nodes {
		remaining[n.NodeID()] = struct{}{}
		if parent, ok := n.NodeParent(); ok {
			parentOf[n.NodeID()] = parent
		}
	}

	for {
		progressed := false
		for id := range remaining {
			parent, hasParent := parentOf[id]
			if !hasParent {
				delete(remaining, id)
				progressed = true
				continue
			}
			if _, parentRemaining := remaining[parent]; !parentRemaining {
				delete(remaining, id)
				progressed = true
			}
		}
		if !progressed || len(remaining) == 0 {
			break
		}
	}

	out := make([]ObjectID, 0, len(remaining))
	for id := range remaining {
		out = append(out, id)
	}
	return out
}
