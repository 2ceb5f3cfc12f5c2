package ops

import (
	"github.com/nonmanifold/topomesh"
)

// Flip replaces the two triangles sharing manifold edge id with the
// triangles formed by the quad's other diagonal, rejecting when the edge
// is a skeleton edge (feature, boundary and non-manifold edges are locked),
// isn't shared by exactly two faces, when either endpoint has degree <=1,
// or when the resulting quad isn't convex.
func Flip(m *topomesh.Mesh, id topomesh.EdgeID) topomesh.Outcome {
	e := m.Edge(id)
	if e.Removed() {
		return topomesh.Reject(topomesh.KindMissingNeighbor, "edge already removed")
	}
	if e.Kind.IsSkeleton() {
		return topomesh.Reject(topomesh.KindNotFlippable, "skeleton edges are locked")
	}
	faces := incidentFacesOfEdge(m, id)
	if len(faces) != 2 {
		return topomesh.Reject(topomesh.KindNotFlippable, "edge is not shared by exactly two faces")
	}

	a, b, oppA, oppB, ok := quadCorners(m, id, faces[0], faces[1])
	if !ok {
		return topomesh.Reject(topomesh.KindNotFlippable, "could not resolve quad corners")
	}
	if len(m.VertexNeighbors(a)) <= 1 || len(m.VertexNeighbors(b)) <= 1 {
		return topomesh.Reject(topomesh.KindNotFlippable, "shared edge endpoint has degree <= 1")
	}

	pa, pb := m.Vertex(a).Position, m.Vertex(b).Position
	pOppA, pOppB := m.Vertex(oppA).Position, m.Vertex(oppB).Position
	if !topomesh.IsConvexQuad(pa, pb, pOppA, pOppB) {
		return topomesh.Reject(topomesh.KindNonConvexQuad, "quad is non-convex or degenerate across this edge")
	}
	if m.FindEdge(oppA, oppB) != topomesh.NoEdge {
		return topomesh.Reject(topomesh.KindNotFlippable, "flipped diagonal already exists")
	}

	m.RemoveFace(faces[0])
	m.RemoveFace(faces[1])
	m.AddFace(oppA, oppB, a)
	m.AddFace(oppB, oppA, b)

	topomesh.ClassifyVertex(m, a)
	topomesh.ClassifyVertex(m, b)
	topomesh.ClassifyVertex(m, oppA)
	topomesh.ClassifyVertex(m, oppB)

	return topomesh.Ok()
}

// quadCorners returns the shared edge's endpoints a,b and the two opposite
// tips oppA (in f0), oppB (in f1).
func quadCorners(m *topomesh.Mesh, id topomesh.EdgeID, f0, f1 topomesh.FaceID) (a, b, oppA, oppB topomesh.VertexID, ok bool) {
	a, b = m.EdgeEndpoints(id)
	oppA = thirdVertex(m, f0, a, b)
	oppB = thirdVertex(m, f1, a, b)
	if oppA == topomesh.NoVertex || oppB == topomesh.NoVertex {
		return 0, 0, 0, 0, false
	}
	return a, b, oppA, oppB, true
}

func thirdVertex(m *topomesh.Mesh, f topomesh.FaceID, a, b topomesh.VertexID) topomesh.VertexID {
	v0, v1, v2 := m.FaceVertices(f)
	for _, v := range []topomesh.VertexID{v0, v1, v2} {
		if v != a && v != b {
			return v
		}
	}
	return topomesh.NoVertex
}

// IsDelaunay reports whether edge id already satisfies the Delaunay
// condition: the sum of the two angles opposite it is <= pi.
func IsDelaunay(m *topomesh.Mesh, id topomesh.EdgeID) bool {
	faces := incidentFacesOfEdge(m, id)
	if len(faces) != 2 {
		return true
	}
	a, b, oppA, oppB, ok := quadCorners(m, id, faces[0], faces[1])
	if !ok {
		return true
	}
	pa, pb := m.Vertex(a).Position, m.Vertex(b).Position
	pOppA, pOppB := m.Vertex(oppA).Position, m.Vertex(oppB).Position
	angleA := topomesh.OppositeAngle(pOppA, pa, pb)
	angleB := topomesh.OppositeAngle(pOppB, pa, pb)
	const pi = 3.14159265358979323846
	return angleA+angleB <= pi+1e-9
}

// DelaunayPass flips every non-Delaunay, non-skeleton edge once, repeating
// until no flip improves the mesh or a cap of 10x the edge count is hit.
func DelaunayPass(m *topomesh.Mesh) int {
	flips := 0
	limit := 10 * m.EdgeCount()
	for pass := 0; pass < limit; pass++ {
		var candidates []topomesh.EdgeID
		m.EachEdge(func(id topomesh.EdgeID) {
			if !m.Edge(id).Kind.IsSkeleton() && !IsDelaunay(m, id) {
				candidates = append(candidates, id)
			}
		})
		if len(candidates) == 0 {
			break
		}
		// Worst violators first: the larger the opposite-angle excess over
		// pi, the more a flip there improves overall mesh quality.
		order := newEdgeHeap(candidates, delaunayBadness(m))
		flipped := false
		for _, id := range drainByBadness(order) {
			if m.Edge(id).Removed() {
				continue
			}
			if Flip(m, id).Success {
				flips++
				flipped = true
			}
		}
		if !flipped {
			break
		}
	}
	return flips
}

func delaunayBadness(m *topomesh.Mesh) func(topomesh.EdgeID) float64 {
	const pi = 3.14159265358979323846
	return func(id topomesh.EdgeID) float64 {
		faces := incidentFacesOfEdge(m, id)
		if len(faces) != 2 {
			return 0
		}
		a, b, oppA, oppB, ok := quadCorners(m, id, faces[0], faces[1])
		if !ok {
			return 0
		}
		pa, pb := m.Vertex(a).Position, m.Vertex(b).Position
		pOppA, pOppB := m.Vertex(oppA).Position, m.Vertex(oppB).Position
		angleA := topomesh.OppositeAngle(pOppA, pa, pb)
		angleB := topomesh.OppositeAngle(pOppB, pa, pb)
		return angleA + angleB - pi
	}
}
