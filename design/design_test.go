package design

import (
	"testing"

	"github.com/kasuganosora/designstore/pkg/metamodel/reference"
	"github.com/kasuganosora/designstore/pkg/variant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDesignAcceptBuildsStableFrameAndAdvancesHistory(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	a := tf.Create(d.Metamodel(), "Person", nil, nil, nil, map[string]variant.Variant{"name": variant.String("alice")})

	stable, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)
	require.NotNil(t, stable)

	current, ok := d.CurrentFrame()
	require.True(t, ok)
	assert.Equal(t, stable.FrameID(), current.FrameID())

	_, found := stable.Get(a.ObjectID)
	assert.True(t, found)
}

func TestDesignAcceptRejectsStructurallyBrokenFrame(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	a := tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
	edgeStruct := EdgeStructure(a.ObjectID, ObjectID(99999))
	tf.Create(d.Metamodel(), "Friendship", nil, nil, &edgeStruct, nil)

	_, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	assert.Error(t, err)
	assert.Equal(t, Transient, tf.State(), "a rejected frame must stay transient")
}

func TestDesignDiscardReleasesReservations(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	a := tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)

	d.Discard(tf)
	assert.False(t, d.identity.Contains(ID(a.ObjectID)))
	assert.Equal(t, Discarded, tf.State())
}

func TestDesignAcceptNamedFrameDoesNotTouchHistory(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)

	stable, err := d.Accept(tf, AcceptOptions{ReplacingName: "scratch"})
	require.NoError(t, err)

	named, ok := d.NamedFrame("scratch")
	assert.True(t, ok)
	assert.Equal(t, stable.FrameID(), named.FrameID())
	assert.Empty(t, d.UndoList())
	_, hasCurrent := d.CurrentFrame()
	assert.False(t, hasCurrent)
}

func TestDesignCrossFrameSnapshotSharingRefCounts(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	a := tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
	stable1, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)
	assert.Equal(t, 1, d.SnapshotRefCount(a.SnapshotID))

	tf2 := d.CreateFrame(stable1, nil)
	_, err = d.Accept(tf2, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)
	assert.Equal(t, 2, d.SnapshotRefCount(a.SnapshotID), "deriving without mutating shares the snapshot")
}

func TestDesignUndoRedoFollowsSpecScenario(t *testing.T) {
	d := newTestDesign()

	accept := func(deriving *StableFrame) *StableFrame {
		tf := d.CreateFrame(deriving, nil)
		tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
		stable, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
		require.NoError(t, err)
		return stable
	}

	f1 := accept(nil)
	f2 := accept(f1)
	f3 := accept(f2)

	current, _ := d.CurrentFrame()
	assert.Equal(t, f3.FrameID(), current.FrameID())
	assert.Equal(t, []FrameID{f1.FrameID(), f2.FrameID()}, d.UndoList())
	assert.Empty(t, d.RedoList())

	ok := d.Undo(nil)
	assert.True(t, ok)
	current, _ = d.CurrentFrame()
	assert.Equal(t, f2.FrameID(), current.FrameID())
	assert.Equal(t, []FrameID{f1.FrameID()}, d.UndoList())
	assert.Equal(t, []FrameID{f3.FrameID()}, d.RedoList())

	ok = d.Redo(nil)
	assert.True(t, ok)
	current, _ = d.CurrentFrame()
	assert.Equal(t, f3.FrameID(), current.FrameID())
	assert.Equal(t, []FrameID{f1.FrameID(), f2.FrameID()}, d.UndoList())
	assert.Empty(t, d.RedoList())
}

func TestDesignUndoEmptyListReturnsFalse(t *testing.T) {
	d := newTestDesign()
	assert.False(t, d.Undo(nil))
	assert.False(t, d.Redo(nil))
}

func TestDesignAcceptingAfterUndoDropsRedoBranch(t *testing.T) {
	d := newTestDesign()
	accept := func(deriving *StableFrame) *StableFrame {
		tf := d.CreateFrame(deriving, nil)
		tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
		stable, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
		require.NoError(t, err)
		return stable
	}

	f1 := accept(nil)
	f2 := accept(f1)
	d.Undo(nil)
	assert.Equal(t, []FrameID{f2.FrameID()}, d.RedoList())

	f4 := accept(f1)
	assert.Empty(t, d.RedoList(), "a fresh accept after undo discards the redo branch")
	assert.False(t, d.ContainsFrame(f2.FrameID()), "the dropped redo frame leaves the design")
	current, _ := d.CurrentFrame()
	assert.Equal(t, f4.FrameID(), current.FrameID())
}

func TestDesignAcceptRejectsParentChildCycle(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	a := tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
	b := tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
	tf.AddChild(a.ObjectID, b.ObjectID)
	tf.SetParent(a.ObjectID, b.ObjectID)

	_, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	assert.Error(t, err)
	assert.Equal(t, Transient, tf.State())
	assert.Empty(t, d.UndoList())
}

func TestDesignMutationSharesUntouchedSnapshots(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	x := tf.Create(d.Metamodel(), "Person", nil, nil, nil, map[string]variant.Variant{"name": variant.String("x")})
	y := tf.Create(d.Metamodel(), "Person", nil, nil, nil, map[string]variant.Variant{"name": variant.String("y")})
	f1, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)

	tf2 := d.CreateFrame(f1, nil)
	mutated := tf2.Mutate(x.ObjectID)
	mutated.SetAttribute("name", variant.String("x2"))
	f2, err := d.Accept(tf2, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)

	assert.Equal(t, 2, d.SnapshotRefCount(y.SnapshotID), "untouched snapshot shared by both frames")
	assert.Equal(t, 1, d.SnapshotRefCount(x.SnapshotID), "old version held only by the first frame")
	assert.Equal(t, 1, d.SnapshotRefCount(mutated.SnapshotID), "new version held only by the second frame")
	assert.Equal(t, 2, d.LogicalObjectRefCount(x.ObjectID), "one logical object, two snapshots")

	newSnap, ok := f2.Get(x.ObjectID)
	require.True(t, ok)
	assert.Equal(t, x.ObjectID, newSnap.ObjectID, "object identity is stable across versions")
	assert.NotEqual(t, x.SnapshotID, newSnap.SnapshotID)

	d.RemoveFrame(f1.FrameID())
	assert.Equal(t, 1, d.SnapshotRefCount(y.SnapshotID))
	assert.Equal(t, 0, d.SnapshotRefCount(x.SnapshotID), "old version freed with its last frame")
}

func TestDesignValidateTreatsEmptyRequiredAttributeAsPresent(t *testing.T) {
	mm := newPersonMetamodel()
	checker := reference.NewRequiredAttributeChecker(mm)
	d := New(mm, WithConstraintChecker(checker))

	tf := d.CreateFrame(nil, nil)
	tf.Create(mm, "Person", nil, nil, nil, map[string]variant.Variant{"name": variant.String("")})
	stable, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)

	violations := d.CheckConstraints(stable)
	assert.Empty(t, violations, "empty string is present, not null")

	tf2 := d.CreateFrame(stable, nil)
	stable2, err := d.Accept(tf2, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)

	_, err = d.Validate(stable2, nil)
	assert.NoError(t, err)
}

func TestDesignCheckConstraintsPanicsWithoutChecker(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
	stable, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)

	assert.Panics(t, func() { d.CheckConstraints(stable) })
}

func TestDesignRemoveFrameFreesIdentityOnZeroRefCount(t *testing.T) {
	d := newTestDesign()
	tf := d.CreateFrame(nil, nil)
	a := tf.Create(d.Metamodel(), "Person", nil, nil, nil, nil)
	stable, err := d.Accept(tf, AcceptOptions{AppendHistory: true})
	require.NoError(t, err)

	d.RemoveFrame(stable.FrameID())
	assert.False(t, d.ContainsFrame(stable.FrameID()))
	assert.Equal(t, 0, d.SnapshotRefCount(a.SnapshotID))
	assert.False(t, d.identity.Contains(ID(a.SnapshotID)), "snapshot id freed")
}
