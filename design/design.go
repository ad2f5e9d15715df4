package design

import (
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/kasuganosora/designstore/pkg/metamodel"
	"github.com/kasuganosora/designstore/pkg/variant"
)

// Design is the top-level container: identity manager, the ref-counted
// tables of live snapshots/logical-objects/stable-frames, in-flight
// transient frames, named side-channel frames, and undo/redo history — a
// top-level registry and lifecycle owner coordinating its sub-resources
// under one mutex.
type Design struct {
	mu sync.Mutex

	InstanceID uuid.UUID
	metamodel  metamodel.Metamodel
	checker    metamodel.ConstraintChecker
	logger     *log.Logger

	identity       *IdentityManager
	snapshots      *EntityTable[*ObjectSnapshot]
	logicalObjects *EntityTable[LogicalObject]
	frames         *EntityTable[*StableFrame]
	transientFrame map[FrameID]*TransientFrame
	namedFrames    map[string]*StableFrame

	currentFrameID *FrameID
	undoList       []FrameID
	redoList       []FrameID
}

// New constructs an empty Design bound to mm, applying opts (design/config.go).
func New(mm metamodel.Metamodel, opts ...Option) *Design {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(os.Stderr, "design: ", log.LstdFlags)
	}
	d := &Design{
		InstanceID:     uuid.New(),
		metamodel:      mm,
		checker:        cfg.Checker,
		logger:         logger,
		identity:       NewIdentityManager(),
		snapshots:      NewEntityTable[*ObjectSnapshot](),
		logicalObjects: NewEntityTable[LogicalObject](),
		frames:         NewEntityTable[*StableFrame](),
		transientFrame: make(map[FrameID]*TransientFrame),
		namedFrames:    make(map[string]*StableFrame),
	}
	if cfg.InitialSequence > 0 {
		d.identity.Seed(cfg.InitialSequence)
	}
	return d
}

// Metamodel returns the metamodel this design validates against.
func (d *Design) Metamodel() metamodel.Metamodel { return d.metamodel }

// CurrentFrame returns the stable frame current_frame_id points at, if any.
func (d *Design) CurrentFrame() (*StableFrame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.currentFrameID == nil {
		return nil, false
	}
	return d.frames.Lookup(ID(*d.currentFrameID))
}

// UndoList returns a copy of the undo history, oldest first.
func (d *Design) UndoList() []FrameID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]FrameID(nil), d.undoList...)
}

// RedoList returns a copy of the redo history, nearest first.
func (d *Design) RedoList() []FrameID {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]FrameID(nil), d.redoList...)
}

// ContainsFrame reports whether id names a stable frame still in the
// design's table.
func (d *Design) ContainsFrame(id FrameID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames.Contains(ID(id))
}

// NamedFrame returns the stable frame registered under name.
func (d *Design) NamedFrame(name string) (*StableFrame, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	f, ok := d.namedFrames[name]
	return f, ok
}

// CreateFrame starts a new transaction. If deriving is non-nil, the new
// frame's table is seeded with deriving's stable snapshots — shared by
// reference, not copied. If id is non-nil it is the proposed frame id
// (reserved exactly as object/snapshot ids are); otherwise a fresh one is
// minted.
func (d *Design) CreateFrame(deriving *StableFrame, id *FrameID) *TransientFrame {
	d.mu.Lock()
	defer d.mu.Unlock()

	var frameID FrameID
	if id == nil {
		frameID = FrameID(d.identity.CreateAndReserve(KindFrame))
	} else {
		if !d.identity.ReserveIfNeeded(ID(*id), KindFrame) {
			panic(NewErrDuplicateID(ID(*id)))
		}
		frameID = *id
	}

	tf := &TransientFrame{
		design:       d,
		frameID:      frameID,
		state:        Transient,
		entities:     NewEntityTable[*frameEntry](),
		reservations: map[ID]struct{}{ID(frameID): {}},
		removedIDs:   make(map[ObjectID]struct{}),
	}

	if deriving != nil {
		for _, snap := range deriving.Snapshots() {
			tf.entities.Insert(&frameEntry{objectID: snap.ObjectID, stable: snap})
		}
	}

	d.transientFrame[frameID] = tf
	d.logger.Printf("create_frame %d (deriving=%v)", uint64(frameID), deriving != nil)
	return tf
}

// Discard abandons a transient frame: releases its frame-id reservation and
// every snapshot/object reservation it still holds, then drops it from the
// design's bookkeeping. Idempotent once the frame has left the Transient
// state.
func (d *Design) Discard(frame *TransientFrame) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if frame.state != Transient {
		return
	}
	frame.Discard()
	delete(d.transientFrame, frame.frameID)
	d.logger.Printf("discard %d", uint64(frame.frameID))
}

// AcceptOptions configures one call to Accept.
type AcceptOptions struct {
	// AppendHistory, when true, pushes the prior current frame onto
	// undo_list and clears redo_list. Accept treats it as true whenever
	// ReplacingName is empty, so a false value has no effect: every
	// unnamed accept updates undo/redo history. When a ReplacingName is
	// set, AppendHistory is ignored: named frames never enter undo/redo
	// history.
	AppendHistory bool
	// ReplacingName, if non-empty, commits the frame as a named
	// side-channel frame instead of advancing history.
	ReplacingName string
}

// Accept commits a transient frame: validates structure, promotes every
// mutable entry to a stable snapshot, builds the resulting StableFrame,
// retains/inserts logical objects and snapshots, and — unless committing to
// a named frame — updates undo/redo history. If validation fails it returns
// the error from TransientFrame.ValidateStructure (frame left Transient,
// reservations intact): a *StructuralIntegrityError, or a multierr
// combination of two of them when both reference violations and a
// parent/child cycle are found.
func (d *Design) Accept(frame *TransientFrame, opts AcceptOptions) (*StableFrame, error) {
	if opts.ReplacingName == "" && !opts.AppendHistory {
		opts.AppendHistory = true
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if owned, ok := d.transientFrame[frame.frameID]; !ok || owned != frame {
		panic(NewErrUnknownFrame(ID(frame.frameID)))
	}
	if d.frames.Contains(ID(frame.frameID)) {
		panic(NewErrDuplicateID(ID(frame.frameID)))
	}

	if err := frame.ValidateStructure(); err != nil {
		return nil, err
	}

	var stableSnapshots []*ObjectSnapshot
	frame.Each(func(_ ObjectID, n graphNode) bool {
		if mutable, ok := n.(*TransientObject); ok {
			stableSnapshots = append(stableSnapshots, mutable.toSnapshot())
		} else {
			stableSnapshots = append(stableSnapshots, n.(*ObjectSnapshot))
		}
		return true
	})

	stable := newStableFrame(frame.frameID, stableSnapshots)

	for _, snap := range stableSnapshots {
		if d.snapshots.Contains(ID(snap.SnapshotID)) {
			d.snapshots.Retain(ID(snap.SnapshotID))
			continue
		}
		d.snapshots.Insert(snap)
		// A logical object's ref-count tracks distinct snapshots, not
		// frame occurrences, so it moves only when a snapshot enters or
		// leaves the design.
		if d.logicalObjects.Contains(ID(snap.ObjectID)) {
			d.logicalObjects.Retain(ID(snap.ObjectID))
		} else {
			d.logicalObjects.Insert(LogicalObject{ObjectID: snap.ObjectID})
		}
	}

	d.frames.Insert(stable)
	frame.accept()
	delete(d.transientFrame, frame.frameID)

	if opts.ReplacingName != "" {
		if old, ok := d.namedFrames[opts.ReplacingName]; ok {
			d.releaseFrameContentsLocked(old)
			d.frames.Remove(ID(old.frameID))
			d.identity.Free(ID(old.frameID))
		}
		d.namedFrames[opts.ReplacingName] = stable
		d.logger.Printf("accept %d replacing_name %q", uint64(frame.frameID), opts.ReplacingName)
		return stable, nil
	}

	if opts.AppendHistory {
		if d.currentFrameID != nil {
			d.undoList = append(d.undoList, *d.currentFrameID)
		}
		for _, redoID := range d.redoList {
			if f, ok := d.frames.Lookup(ID(redoID)); ok {
				d.releaseFrameContentsLocked(f)
				d.frames.Remove(ID(redoID))
				d.identity.Free(ID(redoID))
			}
		}
		d.redoList = nil
		fid := frame.frameID
		d.currentFrameID = &fid
	}

	d.logger.Printf("accept %d append_history=%v", uint64(frame.frameID), opts.AppendHistory)
	return stable, nil
}

// RemoveFrame drops a stable frame from named-frames/undo_list/redo_list,
// releases every snapshot (and, transitively, logical object) it
// referenced, and frees the frame's id.
func (d *Design) RemoveFrame(id FrameID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	frame, ok := d.frames.Lookup(ID(id))
	if !ok {
		panic(NewErrUnknownFrame(ID(id)))
	}

	for name, f := range d.namedFrames {
		if f.frameID == id {
			delete(d.namedFrames, name)
		}
	}
	d.undoList = removeFrameID(d.undoList, id)
	d.redoList = removeFrameID(d.redoList, id)
	if d.currentFrameID != nil && *d.currentFrameID == id {
		if n := len(d.undoList); n > 0 {
			last := d.undoList[n-1]
			d.undoList = d.undoList[:n-1]
			d.currentFrameID = &last
		} else {
			d.currentFrameID = nil
		}
	}

	d.releaseFrameContentsLocked(frame)
	d.frames.Remove(ID(id))
	d.identity.Free(ID(id))
	d.logger.Printf("remove_frame %d", uint64(id))
}

// releaseFrameContentsLocked releases a frame's snapshots (and their
// logical objects on zero ref-count), freeing ids as they drop to zero.
// Caller must hold d.mu.
func (d *Design) releaseFrameContentsLocked(frame *StableFrame) {
	for _, snap := range frame.Snapshots() {
		if d.snapshots.Release(ID(snap.SnapshotID)) {
			d.identity.Free(ID(snap.SnapshotID))
			if d.logicalObjects.Release(ID(snap.ObjectID)) {
				d.identity.Free(ID(snap.ObjectID))
			}
		}
	}
}

func removeFrameID(list []FrameID, id FrameID) []FrameID {
	out := list[:0:0]
	for _, f := range list {
		if f != id {
			out = append(out, f)
		}
	}
	return out
}

// SnapshotRefCount returns the ref-count of a snapshot still tracked in the
// design's live snapshot table.
func (d *Design) SnapshotRefCount(id SnapshotID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshots.RefCount(ID(id))
}

// LogicalObjectRefCount returns the ref-count of a logical object still
// tracked in the design's live object table.
func (d *Design) LogicalObjectRefCount(id ObjectID) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.logicalObjects.RefCount(ID(id))
}

// Validate runs the design's ConstraintChecker (see WithConstraintChecker)
// against frame and wraps the result in a ValidatedFrame on success. The
// checker runs with whatever metamodel it was built with; mm (or the
// design's own metamodel when mm is nil) is not passed to it and is only
// recorded on the returned ValidatedFrame.
// A non-empty violation list is returned as a *FrameValidationError; the
// frame itself is untouched either way. Calling Validate with no checker
// configured is a programming error.
func (d *Design) Validate(frame *StableFrame, mm metamodel.Metamodel) (*ValidatedFrame, error) {
	if mm == nil {
		mm = d.metamodel
	}
	violations := d.CheckConstraints(frame)
	if len(violations) > 0 {
		return nil, NewFrameValidationError(ID(frame.frameID), violations)
	}
	return &ValidatedFrame{frame: frame, metamodel: mm}, nil
}

// CheckConstraints runs the design's ConstraintChecker against frame and
// returns every violation found, without throwing.
func (d *Design) CheckConstraints(frame *StableFrame) []metamodel.ConstraintViolation {
	if d.checker == nil {
		panic("design: no ConstraintChecker configured (see WithConstraintChecker)")
	}
	return d.checker.Check(&constraintFrameView{frame: frame})
}

// constraintFrameView adapts *StableFrame to metamodel.ConstraintFrame so a
// ConstraintChecker (which only knows raw uint64 ids, avoiding an import
// cycle between design and metamodel) can read it.
type constraintFrameView struct {
	frame *StableFrame
}

func (v *constraintFrameView) Objects() []metamodel.ConstraintObject {
	snaps := v.frame.Snapshots()
	out := make([]metamodel.ConstraintObject, len(snaps))
	for i, s := range snaps {
		out[i] = constraintObjectView{s}
	}
	return out
}

func (v *constraintFrameView) Lookup(id uint64) (metamodel.ConstraintObject, bool) {
	s, ok := v.frame.Get(ObjectID(id))
	if !ok {
		return nil, false
	}
	return constraintObjectView{s}, true
}

type constraintObjectView struct {
	snap *ObjectSnapshot
}

func (v constraintObjectView) ID() uint64       { return uint64(v.snap.ObjectID) }
func (v constraintObjectView) TypeName() string { return v.snap.TypeName }
func (v constraintObjectView) Attribute(name string) (variant.Variant, bool) {
	return v.snap.Attribute(name)
}
