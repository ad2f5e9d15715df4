package reference

import (
	"testing"

	"github.com/kasuganosora/designstore/pkg/metamodel"
	"github.com/kasuganosora/designstore/pkg/variant"
	"github.com/stretchr/testify/assert"
)

func TestMetamodelRegisterAndLookup(t *testing.T) {
	mm := New(metamodel.ObjectType{Name: "Person", Structural: metamodel.StructuralNode, Traits: []string{"named"}})

	typ, ok := mm.ObjectType("Person")
	assert.True(t, ok)
	assert.Equal(t, metamodel.StructuralNode, typ.Structural)
	assert.True(t, mm.HasTrait("Person", "named"))
	assert.False(t, mm.HasTrait("Person", "unknown"))

	_, ok = mm.ObjectType("Missing")
	assert.False(t, ok)
}

func TestMetamodelRegisterOverwrites(t *testing.T) {
	mm := New()
	mm.Register(metamodel.ObjectType{Name: "Person", Structural: metamodel.StructuralNode})
	mm.Register(metamodel.ObjectType{Name: "Person", Structural: metamodel.StructuralEdge})

	typ, _ := mm.ObjectType("Person")
	assert.Equal(t, metamodel.StructuralEdge, typ.Structural)
}

func TestMetamodelTypeNamesSorted(t *testing.T) {
	mm := New(
		metamodel.ObjectType{Name: "Zebra"},
		metamodel.ObjectType{Name: "Apple"},
	)
	assert.Equal(t, []string{"Apple", "Zebra"}, mm.TypeNames())
}

type fakeConstraintObject struct {
	id    uint64
	typ   string
	attrs map[string]variant.Variant
}

func (o fakeConstraintObject) ID() uint64       { return o.id }
func (o fakeConstraintObject) TypeName() string { return o.typ }
func (o fakeConstraintObject) Attribute(name string) (variant.Variant, bool) {
	v, ok := o.attrs[name]
	return v, ok
}

type fakeConstraintFrame struct {
	objects []metamodel.ConstraintObject
}

func (f fakeConstraintFrame) Objects() []metamodel.ConstraintObject { return f.objects }
func (f fakeConstraintFrame) Lookup(id uint64) (metamodel.ConstraintObject, bool) {
	for _, o := range f.objects {
		if o.ID() == id {
			return o, true
		}
	}
	return nil, false
}

func TestRequiredAttributeCheckerFlagsMissingAndNull(t *testing.T) {
	mm := New(metamodel.ObjectType{
		Name:       "Person",
		Structural: metamodel.StructuralNode,
		Attributes: []metamodel.AttributeSchema{
			{Name: "name", Required: true},
		},
	})
	checker := NewRequiredAttributeChecker(mm)

	ok := fakeConstraintObject{id: 1, typ: "Person", attrs: map[string]variant.Variant{"name": variant.String("alice")}}
	missing := fakeConstraintObject{id: 2, typ: "Person", attrs: map[string]variant.Variant{}}
	isNull := fakeConstraintObject{id: 3, typ: "Person", attrs: map[string]variant.Variant{"name": variant.Null()}}

	violations := checker.Check(fakeConstraintFrame{objects: []metamodel.ConstraintObject{ok, missing, isNull}})
	assert.Len(t, violations, 2)

	var flagged []uint64
	for _, v := range violations {
		flagged = append(flagged, v.ObjectIDs...)
	}
	assert.ElementsMatch(t, []uint64{2, 3}, flagged)
}

func TestRequiredAttributeCheckerIgnoresUnknownType(t *testing.T) {
	mm := New()
	checker := NewRequiredAttributeChecker(mm)
	obj := fakeConstraintObject{id: 1, typ: "Ghost"}

	violations := checker.Check(fakeConstraintFrame{objects: []metamodel.ConstraintObject{obj}})
	assert.Empty(t, violations)
}
