package design

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityManagerCreateAndReserve(t *testing.T) {
	m := NewIdentityManager()

	id1 := m.CreateAndReserve(KindObject)
	id2 := m.CreateAndReserve(KindObject)
	assert.NotEqual(t, id1, id2)
	assert.True(t, m.IsReserved(id1))

	kind, ok := m.KindOf(id1)
	assert.True(t, ok)
	assert.Equal(t, KindObject, kind)
}

func TestIdentityManagerReserveIfNeededIdempotent(t *testing.T) {
	m := NewIdentityManager()
	id := m.CreateAndReserve(KindSnapshot)

	assert.True(t, m.ReserveIfNeeded(id, KindSnapshot))
	assert.False(t, m.ReserveIfNeeded(id, KindFrame))
}

func TestIdentityManagerUseAndFree(t *testing.T) {
	m := NewIdentityManager()
	id := m.CreateAndReserve(KindObject)

	assert.True(t, m.Use(id, KindObject))
	assert.False(t, m.IsReserved(id))
	assert.False(t, m.Use(id, KindObject), "cannot use an id twice")

	m.Free(id)
	assert.False(t, m.Contains(id))
}

func TestIdentityManagerReleaseReservation(t *testing.T) {
	m := NewIdentityManager()
	id := m.CreateAndReserve(KindFrame)

	assert.True(t, m.ReleaseReservation(id))
	assert.False(t, m.Contains(id))
	assert.False(t, m.ReleaseReservation(id), "already released")
}

func TestIdentityManagerNeverReissuesClaimedIDs(t *testing.T) {
	m := NewIdentityManager()
	seen := make(map[ID]bool)
	for i := 0; i < 50; i++ {
		id := m.CreateAndUse(KindObject)
		assert.False(t, seen[id], "id %d reissued", id)
		seen[id] = true
	}
}

func TestIdentityManagerSeedAdvancesPastPriorUsage(t *testing.T) {
	m := NewIdentityManager()
	m.Seed(1000)
	id := m.CreateAndUse(KindObject)
	assert.Greater(t, uint64(id), uint64(1000))
}
