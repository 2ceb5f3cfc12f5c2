package ops

import (
	"testing"

	"github.com/nonmanifold/topomesh"
)

func TestDrainByBadnessOrdersHighestFirst(t *testing.T) {
	edges := []topomesh.EdgeID{0, 1, 2, 3}
	scores := map[topomesh.EdgeID]float64{0: 1, 1: 5, 2: 3, 3: 0}
	h := newEdgeHeap(edges, func(id topomesh.EdgeID) float64 { return scores[id] })
	order := drainByBadness(h)
	want := []topomesh.EdgeID{1, 2, 0, 3}
	if len(order) != len(want) {
		t.Fatalf("order length = %d, want %d", len(order), len(want))
	}
	for i, id := range want {
		if order[i] != id {
			t.Errorf("order[%d] = %d, want %d", i, order[i], id)
		}
	}
}

func TestNewEdgeHeapEmpty(t *testing.T) {
	h := newEdgeHeap(nil, func(topomesh.EdgeID) float64 { return 0 })
	if len(drainByBadness(h)) != 0 {
		t.Error("draining an empty heap should produce no edges")
	}
}
