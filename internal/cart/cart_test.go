package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartTotals(t *testing.T) {
	c := &Cart{
		SessionID: "s1",
		Items: []Item{
			{ProductID: "p1", Size: "M", Color: "Black", Price: 29000, Quantity: 2},
			{ProductID: "p2", Size: "30", Color: "Beige", Price: 45000, Quantity: 1},
		},
	}
	assert.Equal(t, int64(29000*2+45000), c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestCartTotals_Empty(t *testing.T) {
	c := &Cart{SessionID: "s1"}
	assert.Zero(t, c.Total())
	assert.Zero(t, c.ItemCount())
}

func TestFindIndex_MatchesFullTriple(t *testing.T) {
	c := &Cart{Items: []Item{
		{ProductID: "p1", Size: "M", Color: "Black"},
		{ProductID: "p1", Size: "L", Color: "Black"},
	}}
	assert.Equal(t, 0, c.findIndex("p1", "M", "Black"))
	assert.Equal(t, 1, c.findIndex("p1", "L", "Black"))
	assert.Equal(t, -1, c.findIndex("p1", "M", "White"))
	assert.Equal(t, -1, c.findIndex("p2", "M", "Black"))
}

func TestSnapshotValidate(t *testing.T) {
	valid := &Snapshot{
		Version:   SnapshotVersion,
		SessionID: "s1",
		Items:     []Item{{ProductID: "p1", Price: 1000, Quantity: 1}},
	}
	assert.True(t, valid.Validate())

	empty := &Snapshot{Version: SnapshotVersion, SessionID: "s1"}
	assert.True(t, empty.Validate())

	tests := []struct {
		name string
		snap Snapshot
	}{
		{"wrong version", Snapshot{Version: 99, SessionID: "s1"}},
		{"missing session", Snapshot{Version: SnapshotVersion}},
		{"zero quantity line", Snapshot{Version: SnapshotVersion, SessionID: "s1", Items: []Item{{ProductID: "p1", Quantity: 0}}}},
		{"negative price line", Snapshot{Version: SnapshotVersion, SessionID: "s1", Items: []Item{{ProductID: "p1", Price: -1, Quantity: 1}}}},
		{"line without product", Snapshot{Version: SnapshotVersion, SessionID: "s1", Items: []Item{{Quantity: 1}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, tt.snap.Validate())
		})
	}
}
