package repair

import (
	"container/heap"
	"math"

	"github.com/nonmanifold/topomesh"
)

// edgeHeapItem queues a non-manifold edge for repair, scored by how far
// its length deviates from the mesh's mean — the same container/heap
// badness-ordering idiom used in topomesh/ops's Delaunay pass.
type edgeHeapItem struct {
	edge    topomesh.EdgeID
	badness float64
}

type edgeHeap []edgeHeapItem

func (h edgeHeap) Len() int            { return len(h) }
func (h edgeHeap) Less(i, j int) bool  { return h[i].badness > h[j].badness }
func (h edgeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *edgeHeap) Push(x interface{}) { *h = append(*h, x.(edgeHeapItem)) }
func (h *edgeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// orderByDeviation sorts edges worst-first by absolute deviation from mean.
func orderByDeviation(m *topomesh.Mesh, edges []topomesh.EdgeID, mean float64) []topomesh.EdgeID {
	h := make(edgeHeap, len(edges))
	for i, e := range edges {
		h[i] = edgeHeapItem{edge: e, badness: math.Abs(m.Edge(e).Length - mean)}
	}
	heap.Init(&h)
	out := make([]topomesh.EdgeID, 0, len(edges))
	for h.Len() > 0 {
		out = append(out, heap.Pop(&h).(edgeHeapItem).edge)
	}
	return out
}
