package ops

import (
	"container/heap"

	"github.com/nonmanifold/topomesh"
)

// edgeHeapItem queues one candidate edge for a priority-ordered pass,
// scored by badness (higher = more urgent).
type edgeHeapItem struct {
	edge    topomesh.EdgeID
	badness float64
}

// edgeHeap is a max-heap over badness: a container/heap.Interface (Push/Pop)
// ordered by a caller-supplied badness score, so any pass that needs to work
// through its worst offenders first can reuse the same queue shape.
type edgeHeap []edgeHeapItem

func (h edgeHeap) Len() int           { return len(h) }
func (h edgeHeap) Less(i, j int) bool { return h[i].badness > h[j].badness }
func (h edgeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *edgeHeap) Push(x interface{}) { *h = append(*h, x.(edgeHeapItem)) }

func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// drainByBadness pops every item from highest to lowest badness.
func drainByBadness(h *edgeHeap) []topomesh.EdgeID {
	out := make([]topomesh.EdgeID, 0, h.Len())
	for h.Len() > 0 {
		out = append(out, heap.Pop(h).(edgeHeapItem).edge)
	}
	return out
}

// newEdgeHeap builds and heapifies a priority queue from a scoring
// function applied to each candidate edge.
func newEdgeHeap(edges []topomesh.EdgeID, score func(topomesh.EdgeID) float64) *edgeHeap {
	h := make(edgeHeap, len(edges))
	for i, e := range edges {
		h[i] = edgeHeapItem{edge: e, badness: score(e)}
	}
	heap.Init(&h)
	return &h
}
