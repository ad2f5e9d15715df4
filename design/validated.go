package design

import "github.com/kasuganosora/designstore/pkg/metamodel"

// ValidatedFrame is a read-only wrapper over a StableFrame together with the
// Metamodel it was validated against. It carries no extra data beyond
// delegation: its existence is a type-level witness that the wrapped frame
// satisfies the metamodel's constraints at the moment it was produced by
// Design.Validate.
type ValidatedFrame struct {
	frame     *StableFrame
	metamodel metamodel.Metamodel
}

// Frame returns the wrapped stable frame.
func (v *ValidatedFrame) Frame() *StableFrame { return v.frame }

// Metamodel returns the metamodel the frame was validated against.
func (v *ValidatedFrame) Metamodel() metamodel.Metamodel { return v.metamodel }
