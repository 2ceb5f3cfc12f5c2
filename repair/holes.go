package repair

import "github.com/nonmanifold/topomesh"

// HoleFillerOp extracts boundary loops and triangulates each by ear
// clipping, skipping loops with more than MaxHoleSize edges. Ear-clipping
// in 3D uses an area-positive, no-other-vertex-inside test without explicit
// plane projection — results depend on vertex ordering for highly
// non-planar holes; this is accepted as-is.
type HoleFillerOp struct {
	MaxHoleSize int
}

func (HoleFillerOp) Name() string { return "HoleFiller" }

func (op HoleFillerOp) maxSize() int {
	if op.MaxHoleSize <= 0 {
		return 100
	}
	return op.MaxHoleSize
}

func (op HoleFillerOp) Detect(m *topomesh.Mesh) int {
	loops := boundaryLoops(m)
	count := 0
	for _, loop := range loops {
		if len(loop) <= op.maxSize() {
			count++
		}
	}
	return count
}

func (op HoleFillerOp) Repair(m *topomesh.Mesh) int {
	loops := boundaryLoops(m)
	fixed := 0
	for _, loop := range loops {
		if len(loop) > op.maxSize() {
			continue
		}
		if fillHole(m, loop) {
			fixed++
		}
	}
	return fixed
}

// boundaryLoops walks boundary edges into closed vertex loops.
func boundaryLoops(m *topomesh.Mesh) [][]topomesh.VertexID {
	nextAlongBoundary := make(map[topomesh.VertexID]topomesh.VertexID)
	m.EachEdge(func(id topomesh.EdgeID) {
		if m.Edge(id).Kind != topomesh.EdgeBoundary {
			return
		}
		h := boundaryHalfedge(m, id)
		if h == topomesh.NoHalfedge {
			return
		}
		// A boundary halfedge's dangling side runs opposite its bounded
		// face; the hole loop follows target->source of the *missing*
		// side, i.e. source->target of the existing one reversed.
		src := m.Source(h)
		tgt := m.Halfedge(h).Target
		nextAlongBoundary[tgt] = src
	})

	visited := make(map[topomesh.VertexID]bool)
	var loops [][]topomesh.VertexID
	for start := range nextAlongBoundary {
		if visited[start] {
			continue
		}
		var loop []topomesh.VertexID
		cur := start
		for {
			if visited[cur] {
				break
			}
			visited[cur] = true
			loop = append(loop, cur)
			next, exists := nextAlongBoundary[cur]
			if !exists {
				break
			}
			cur = next
			if cur == start {
				break
			}
		}
		if len(loop) >= 3 {
			loops = append(loops, loop)
		}
	}
	return loops
}

// boundaryHalfedge returns the single halfedge of a boundary edge (it has
// exactly one).
func boundaryHalfedge(m *topomesh.Mesh, id topomesh.EdgeID) topomesh.HalfedgeID {
	hs := m.Edge(id).Halfedges
	if len(hs) != 1 {
		return topomesh.NoHalfedge
	}
	return hs[0]
}

// fillHole triangulates a boundary loop (given in hole-boundary order, i.e.
// counter-clockwise as seen from outside the missing material) by ear
// clipping: repeatedly cut the first ear found with positive area and no
// other loop vertex inside it.
func fillHole(m *topomesh.Mesh, loop []topomesh.VertexID) bool {
	ring := append([]topomesh.VertexID(nil), loop...)
	const maxIterations = 10000
	iterations := 0
	for len(ring) > 3 && iterations < maxIterations {
		iterations++
		cut := false
		for i := range ring {
			n := len(ring)
			prev := ring[(i-1+n)%n]
			cur := ring[i]
			next := ring[(i+1)%n]
			if isEar(m, ring, prev, cur, next) {
				m.AddFace(prev, cur, next)
				ring = append(ring[:i], ring[i+1:]...)
				cut = true
				break
			}
		}
		if !cut {
			return false // no valid ear found; leave the remaining loop unfilled
		}
	}
	if len(ring) == 3 {
		m.AddFace(ring[0], ring[1], ring[2])
	}
	return true
}

func isEar(m *topomesh.Mesh, ring []topomesh.VertexID, prev, cur, next topomesh.VertexID) bool {
	pa := m.Vertex(prev).Position
	pb := m.Vertex(cur).Position
	pc := m.Vertex(next).Position
	if topomesh.TriangleArea(pa, pb, pc) < 1e-10 {
		return false
	}
	for _, v := range ring {
		if v == prev || v == cur || v == next {
			continue
		}
		if topomesh.PointInTriangle(m.Vertex(v).Position, pa, pb, pc) {
			return false
		}
	}
	return true
}
