package design

import (
	"fmt"

	"github.com/kasuganosora/designstore/pkg/metamodel"
)

// Programming errors are modeled as typed panics: an immediate,
// unrecoverable failure for duplicate snapshot/frame ids at insert, unknown
// ids at lookup, mutation of a non-transient frame, structural-kind
// mismatch at create, and undo/redo to an id absent from the corresponding
// list. They are never recovered inside this package. One struct per
// failure kind, a New* constructor, an Error() string method.

// ErrDuplicateID reports an attempt to insert an id that already exists.
type ErrDuplicateID struct {
	ID ID
}

func (e *ErrDuplicateID) Error() string {
	return fmt.Sprintf("design: id %d already exists", uint64(e.ID))
}

// NewErrDuplicateID constructs an ErrDuplicateID.
func NewErrDuplicateID(id ID) *ErrDuplicateID { return &ErrDuplicateID{ID: id} }

func duplicateIDPanic(id ID) error { return NewErrDuplicateID(id) }

// ErrUnknownID reports a lookup or replace against an id with no entry.
type ErrUnknownID struct {
	ID ID
}

func (e *ErrUnknownID) Error() string {
	return fmt.Sprintf("design: id %d does not exist", uint64(e.ID))
}

// NewErrUnknownID constructs an ErrUnknownID.
func NewErrUnknownID(id ID) *ErrUnknownID { return &ErrUnknownID{ID: id} }

func unknownIDPanic(id ID) error { return NewErrUnknownID(id) }

// ErrFrameNotTransient reports a mutation attempted on a frame that has
// already been accepted or discarded.
type ErrFrameNotTransient struct {
	FrameID ID
	State   FrameState
}

func (e *ErrFrameNotTransient) Error() string {
	return fmt.Sprintf("design: frame %d is not transient (state=%s)", uint64(e.FrameID), e.State)
}

// NewErrFrameNotTransient constructs an ErrFrameNotTransient.
func NewErrFrameNotTransient(frameID ID, state FrameState) *ErrFrameNotTransient {
	return &ErrFrameNotTransient{FrameID: frameID, State: state}
}

// ErrStructuralKindMismatch reports a create() call whose explicit Structure
// argument does not match the structural kind the metamodel declares for the
// requested type.
type ErrStructuralKindMismatch struct {
	TypeName string
	Expected StructureKind
	Got      StructureKind
}

func (e *ErrStructuralKindMismatch) Error() string {
	return fmt.Sprintf("design: type %q expects structural kind %s, got %s", e.TypeName, e.Expected, e.Got)
}

// NewErrStructuralKindMismatch constructs an ErrStructuralKindMismatch.
func NewErrStructuralKindMismatch(typeName string, expected, got StructureKind) *ErrStructuralKindMismatch {
	return &ErrStructuralKindMismatch{TypeName: typeName, Expected: expected, Got: got}
}

// ErrHistoryIDNotFound reports an undo/redo call naming an id absent from
// the relevant list.
type ErrHistoryIDNotFound struct {
	ID ID
	In string // "undo_list" or "redo_list"
}

func (e *ErrHistoryIDNotFound) Error() string {
	return fmt.Sprintf("design: frame %d not found in %s", uint64(e.ID), e.In)
}

// NewErrHistoryIDNotFound constructs an ErrHistoryIDNotFound.
func NewErrHistoryIDNotFound(id ID, in string) *ErrHistoryIDNotFound {
	return &ErrHistoryIDNotFound{ID: id, In: in}
}

// ErrUnknownType reports a Create() call naming a type the metamodel does
// not declare.
type ErrUnknownType struct {
	TypeName string
}

func (e *ErrUnknownType) Error() string {
	return fmt.Sprintf("design: metamodel has no type %q", e.TypeName)
}

// NewErrUnknownType constructs an ErrUnknownType.
func NewErrUnknownType(typeName string) *ErrUnknownType { return &ErrUnknownType{TypeName: typeName} }

// ErrReservedAttribute reports an attempt to set a reserved attribute name
// (id, snapshot_id, origin, target, type, parent, structure) as an ordinary
// attribute.
type ErrReservedAttribute struct {
	Name string
}

func (e *ErrReservedAttribute) Error() string {
	return fmt.Sprintf("design: %q is a reserved attribute name", e.Name)
}

// NewErrReservedAttribute constructs an ErrReservedAttribute.
func NewErrReservedAttribute(name string) *ErrReservedAttribute {
	return &ErrReservedAttribute{Name: name}
}

// ErrUnknownFrame reports an operation (accept, remove_frame) against a
// frame id the design does not own.
type ErrUnknownFrame struct {
	FrameID ID
}

func (e *ErrUnknownFrame) Error() string {
	return fmt.Sprintf("design: frame %d is not owned by this design", uint64(e.FrameID))
}

// NewErrUnknownFrame constructs an ErrUnknownFrame.
func NewErrUnknownFrame(frameID ID) *ErrUnknownFrame { return &ErrUnknownFrame{FrameID: frameID} }

// FrameValidationError is raised by Design.Validate when the metamodel's
// ConstraintChecker reports violations against an already-stable frame.
// The frame itself remains stable and unmodified; this carries diagnostics
// only.
type FrameValidationError struct {
	FrameID    ID
	Violations []metamodel.ConstraintViolation
}

func (e *FrameValidationError) Error() string {
	return fmt.Sprintf("design: frame %d failed %d constraint(s)", uint64(e.FrameID), len(e.Violations))
}

// NewFrameValidationError constructs a FrameValidationError.
func NewFrameValidationError(frameID ID, violations []metamodel.ConstraintViolation) *FrameValidationError {
	return &FrameValidationError{FrameID: frameID, Violations: violations}
}
