package design

import (
	"testing"

	"github.com/kasuganosora/designstore/pkg/variant"
	"github.com/stretchr/testify/assert"
)

func TestContentHashStableAcrossEqualContent(t *testing.T) {
	a := newTestSnapshot(1, 10, "Person")
	b := newTestSnapshot(1, 20, "Person") // different snapshot_id, same content

	assert.Equal(t, a.ContentHash(), b.ContentHash(), "content hash ignores identity, only content")
}

func TestContentHashChangesWithAttributes(t *testing.T) {
	a := newTestSnapshot(1, 10, "Person")
	b := newTestSnapshot(1, 10, "Person")
	b.Attributes["name"] = variant.String("bob")

	assert.NotEqual(t, a.ContentHash(), b.ContentHash())
}

func TestStableFrameContentHashIgnoresFrameIdentity(t *testing.T) {
	n1 := newTestSnapshot(1, 1, "Person")
	n2 := newTestSnapshot(1, 2, "Person") // same content, different snapshot id

	f1 := newStableFrame(100, []*ObjectSnapshot{n1})
	f2 := newStableFrame(200, []*ObjectSnapshot{n2})

	assert.Equal(t, f1.ContentHash(), f2.ContentHash())
}
