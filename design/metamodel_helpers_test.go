package design

import (
	"github.com/kasuganosora/designstore/pkg/metamodel"
	"github.com/kasuganosora/designstore/pkg/metamodel/reference"
	"github.com/kasuganosora/designstore/pkg/variant"
)

// newPersonMetamodel returns a minimal Metamodel with one
// labeled, attribute-bearing Node type, used across stableframe_test.go
// and design_test.go.
func newPersonMetamodel() *reference.Metamodel {
	return reference.New(metamodel.ObjectType{
		Name:       "Person",
		Structural: metamodel.StructuralNode,
		Label:      "name",
		Attributes: []metamodel.AttributeSchema{
			{Name: "name", Default: variant.String(""), Required: true},
		},
	})
}

// newTraitMetamodel returns two Node types that both carry the
// "named" trait plus one trait unique to each, for SharedTraits tests.
func newTraitMetamodel() *reference.Metamodel {
	return reference.New(
		metamodel.ObjectType{Name: "Person", Structural: metamodel.StructuralNode, Traits: []string{"named", "mortal"}},
		metamodel.ObjectType{Name: "Company", Structural: metamodel.StructuralNode, Traits: []string{"named", "registered"}},
	)
}

// newGraphMetamodel returns a metamodel covering Person (node,
// required "name"), Friendship (edge) and Friends (ordered set), used by
// transientframe_test.go and design_test.go's end-to-end scenarios.
func newGraphMetamodel() *reference.Metamodel {
	return reference.New(
		metamodel.ObjectType{
			Name:       "Person",
			Structural: metamodel.StructuralNode,
			Label:      "name",
			Attributes: []metamodel.AttributeSchema{
				{Name: "name", Default: variant.String(""), Required: true},
			},
		},
		metamodel.ObjectType{Name: "Friendship", Structural: metamodel.StructuralEdge},
		metamodel.ObjectType{Name: "Friends", Structural: metamodel.StructuralOrderedSet},
	)
}
