// Command designstore is a small demo exercising the design engine
// end-to-end: register a metamodel, create a frame, accept it, mutate a
// derived frame, validate it, and step back once with undo. Shape grounded on
// cmd/service/main.go (construct the top-level owner, wire a couple of
// operations, log via stdlib log).
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/kasuganosora/designstore/design"
	"github.com/kasuganosora/designstore/pkg/metamodel"
	"github.com/kasuganosora/designstore/pkg/metamodel/reference"
	"github.com/kasuganosora/designstore/pkg/variant"
)

func main() {
	mm := reference.New(
		metamodel.ObjectType{
			Name:       "Note",
			Structural: metamodel.StructuralNode,
			Label:      "text",
			Attributes: []metamodel.AttributeSchema{
				{Name: "text", Default: variant.String(""), Required: true},
			},
		},
		metamodel.ObjectType{
			Name:       "Link",
			Structural: metamodel.StructuralEdge,
		},
	)
	checker := reference.NewRequiredAttributeChecker(mm)

	logger := log.New(os.Stdout, "designstore: ", log.LstdFlags)
	d := design.New(mm, design.WithLogger(logger), design.WithConstraintChecker(checker))

	t := d.CreateFrame(nil, nil)
	a := t.Create(mm, "Note", nil, nil, nil, map[string]variant.Variant{"text": variant.String("hello")})
	stable, err := d.Accept(t, design.AcceptOptions{AppendHistory: true})
	if err != nil {
		log.Fatalf("accept failed: %v", err)
	}
	fmt.Printf("frame %d holds %d snapshot(s); note object_id=%d\n", stable.FrameID(), len(stable.Snapshots()), a.ObjectID)

	t2 := d.CreateFrame(stable, nil)
	b := t2.CreateFromValues(mm, "Note", nil, nil, nil, map[string]interface{}{"text": "world"})
	t2.AddChild(a.ObjectID, b.ObjectID)
	stable2, err := d.Accept(t2, design.AcceptOptions{AppendHistory: true})
	if err != nil {
		log.Fatalf("accept failed: %v", err)
	}
	fmt.Printf("frame %d holds %d snapshot(s)\n", stable2.FrameID(), len(stable2.Snapshots()))

	if _, err := d.Validate(stable2, nil); err != nil {
		fmt.Printf("constraint violations: %v\n", err)
	} else {
		fmt.Println("frame satisfies constraints")
	}

	d.Undo(nil)
	current, _ := d.CurrentFrame()
	fmt.Printf("after undo, current frame = %d\n", current.FrameID())
}
