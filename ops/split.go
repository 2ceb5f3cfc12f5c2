// Package ops implements the local topological operators: split, collapse,
// flip and tangential smoothing. Each returns a topomesh.Outcome rather
// than a Go error — operators decline rather than abort the caller.
package ops

import (
	"github.com/nonmanifold/topomesh"
	"github.com/nonmanifold/topomesh/skeleton"
)

// Split inserts a new vertex at lerp(v0,v1,t) on edge id, subdividing every
// face incident to the edge into two triangles joining the new vertex to
// the opposite vertex. The edge's classification is inherited by both
// halves.
func Split(m *topomesh.Mesh, id topomesh.EdgeID, t float64) (topomesh.VertexID, topomesh.Outcome) {
	e := m.Edge(id)
	if e.Removed() {
		return topomesh.NoVertex, topomesh.Reject(topomesh.KindMissingNeighbor, "edge already removed")
	}
	v0, v1 := m.EdgeEndpoints(id)
	p0, p1 := m.Vertex(v0).Position, m.Vertex(v1).Position
	newPos := topomesh.Lerp(p0, p1, t)
	wasFeature := e.Feature

	corners := incidentCorners(m, id, v0, v1)

	for _, f := range corners {
		m.RemoveFace(f.face)
	}

	newV := m.NewVertex(newPos)

	var newEdges []topomesh.EdgeID
	for _, c := range corners {
		f1 := m.AddFace(c.src, newV, c.opposite)
		f2 := m.AddFace(newV, c.tgt, c.opposite)
		newEdges = append(newEdges, edgeBetween(m, c.src, newV), edgeBetween(m, newV, c.tgt))
		_ = f1
		_ = f2
	}

	if wasFeature {
		for _, ne := range newEdges {
			if ne == topomesh.NoEdge {
				continue
			}
			m.Edge(ne).Feature = true
			if m.Edge(ne).Kind == topomesh.EdgeManifold {
				m.Edge(ne).Kind = topomesh.EdgeFeature
			}
		}
	}

	topomesh.ClassifyVertex(m, v0)
	topomesh.ClassifyVertex(m, v1)
	topomesh.ClassifyVertex(m, newV)

	return newV, topomesh.Ok()
}

// corner describes one face incident to the split edge: src->tgt is the
// edge's own direction within that face's winding, opposite is the third
// corner.
type corner struct {
	face     topomesh.FaceID
	src, tgt topomesh.VertexID
	opposite topomesh.VertexID
}

// incidentCorners captures, before any mutation, the winding-consistent
// corner data for every face bounded by edge id.
func incidentCorners(m *topomesh.Mesh, id topomesh.EdgeID, v0, v1 topomesh.VertexID) []corner {
	var out []corner
	for _, h := range m.Edge(id).Halfedges {
		f := m.Halfedge(h).Face
		if f == topomesh.NoFace {
			continue
		}
		src := m.Source(h)
		tgt := m.Halfedge(h).Target
		opposite := m.Halfedge(m.Halfedge(h).Next).Target
		out = append(out, corner{face: f, src: src, tgt: tgt, opposite: opposite})
	}
	return out
}

func edgeBetween(m *topomesh.Mesh, a, b topomesh.VertexID) topomesh.EdgeID {
	return m.FindEdge(a, b)
}

// SplitAtMidpoint is a convenience used by the remesher.
func SplitAtMidpoint(m *topomesh.Mesh, id topomesh.EdgeID) (topomesh.VertexID, topomesh.Outcome) {
	return Split(m, id, 0.5)
}

// SplitPreservingSkeleton behaves like Split, but if the edge belongs to a
// skeleton segment, re-projects the new vertex onto the segment afterward
// so that feature geometry isn't coarsened by the linear interpolation.
func SplitPreservingSkeleton(m *topomesh.Mesh, sk *skeleton.Skeleton, id topomesh.EdgeID, t float64) (topomesh.VertexID, topomesh.Outcome) {
	// sk has no entry for the new vertex, so the segment is looked up
	// through the edge's endpoints before Split removes the edge.
	var seg *skeleton.Segment
	if e := m.Edge(id); sk != nil && !e.Removed() && e.Kind.IsSkeleton() {
		v0, v1 := m.EdgeEndpoints(id)
		if seg = sk.SegmentFor(v0); seg == nil {
			seg = sk.SegmentFor(v1)
		}
	}
	newV, outcome := Split(m, id, t)
	if !outcome.Success || seg == nil {
		return newV, outcome
	}
	if proj, ok := seg.ProjectPoint(m, m.Vertex(newV).Position); ok {
		m.Vertex(newV).Position = proj.Point
	}
	return newV, outcome
}
