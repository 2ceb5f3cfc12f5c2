package ops

import (
	"github.com/nonmanifold/topomesh"
)

// Collapse merges edge id's two endpoints into one, removing every face
// incident to the edge and replacing the two vertices with a single
// survivor. It rejects rather than mutates when the link condition fails or
// when collapsing would relocate a position-fixed vertex.
func Collapse(m *topomesh.Mesh, id topomesh.EdgeID) topomesh.Outcome {
	e := m.Edge(id)
	if e.Removed() {
		return topomesh.Reject(topomesh.KindMissingNeighbor, "edge already removed")
	}
	v0, v1 := m.EdgeEndpoints(id)

	if !linkConditionHolds(m, v0, v1) {
		return topomesh.Reject(topomesh.KindLinkConditionViolated, "shared neighborhood would create a non-manifold vertex")
	}

	survivor, doomed, ok := choosePositions(m, v0, v1)
	if !ok {
		return topomesh.Reject(topomesh.KindRelocationInvalid, "both endpoints are position-fixed")
	}

	facesToRemove := incidentFacesOfEdge(m, id)
	otherFaces := facesContaining(m, doomed, facesToRemove)

	for _, f := range facesToRemove {
		m.RemoveFace(f)
	}

	rebuild := make([]rebuildTriangle, 0, len(otherFaces))
	for _, f := range otherFaces {
		a, b, c := m.FaceVertices(f)
		rebuild = append(rebuild, rebuildTriangle{a: substitute(a, doomed, survivor), b: substitute(b, doomed, survivor), c: substitute(c, doomed, survivor)})
	}
	for _, f := range otherFaces {
		m.RemoveFace(f)
	}
	for _, tri := range rebuild {
		if tri.a == tri.b || tri.b == tri.c || tri.a == tri.c {
			continue // would collapse to zero area after the merge; drop it
		}
		m.AddFace(tri.a, tri.b, tri.c)
	}

	m.RemoveVertex(doomed)

	topomesh.ClassifyVertex(m, survivor)
	for _, tri := range rebuild {
		topomesh.ClassifyVertex(m, tri.a)
		topomesh.ClassifyVertex(m, tri.b)
		topomesh.ClassifyVertex(m, tri.c)
	}

	return topomesh.Ok()
}

type rebuildTriangle struct {
	a, b, c topomesh.VertexID
}

func substitute(v, from, to topomesh.VertexID) topomesh.VertexID {
	if v == from {
		return to
	}
	return v
}

// linkConditionHolds tests that the neighbor sets of v0 and v1 (excluding
// themselves) share no more vertices than the number of faces incident to
// the edge between them — 2 for an interior manifold edge, 1 for a
// boundary edge. A larger overlap means collapsing would weld together
// parts of the mesh not already joined through this edge.
func linkConditionHolds(m *topomesh.Mesh, v0, v1 topomesh.VertexID) bool {
	n0 := neighborSet(m, v0)
	n1 := neighborSet(m, v1)
	shared := 0
	for v := range n0 {
		if v != v0 && v != v1 && n1[v] {
			shared++
		}
	}

	id := m.FindEdge(v0, v1)
	faceCount := 0
	if id != topomesh.NoEdge {
		faceCount = len(incidentFacesOfEdge(m, id))
	}
	return shared <= faceCount
}

func neighborSet(m *topomesh.Mesh, v topomesh.VertexID) map[topomesh.VertexID]bool {
	set := make(map[topomesh.VertexID]bool)
	for _, n := range m.VertexNeighbors(v) {
		set[n] = true
	}
	return set
}

// choosePositions picks the surviving endpoint by kind priority
// (Branching/Other > OpenBook > Manifold) and decides its resting
// position: unchanged if the survivor is position-fixed, unchanged if the
// survivor is OpenBook and the other endpoint is Manifold, otherwise the
// midpoint. Rejects only when both
// endpoints are position-fixed, since then neither may move to merge with
// the other.
func choosePositions(m *topomesh.Mesh, v0, v1 topomesh.VertexID) (survivor, doomed topomesh.VertexID, ok bool) {
	k0, k1 := m.Vertex(v0).Kind, m.Vertex(v1).Kind
	if k0.PositionFixed() && k1.PositionFixed() {
		return topomesh.NoVertex, topomesh.NoVertex, false
	}

	survivor, doomed = v0, v1
	survivorKind, doomedKind := k0, k1
	if rank(k1) > rank(k0) {
		survivor, doomed = v1, v0
		survivorKind, doomedKind = k1, k0
	}

	switch {
	case survivorKind.PositionFixed():
		// keep survivor's own position
	case survivorKind == topomesh.VertexOpenBook && doomedKind == topomesh.VertexManifold:
		// keep survivor's own position
	default:
		m.Vertex(survivor).Position = topomesh.Lerp(m.Vertex(v0).Position, m.Vertex(v1).Position, 0.5)
	}
	return survivor, doomed, true
}

func rank(k topomesh.VertexKind) int {
	switch k {
	case topomesh.VertexSkeletonBranching, topomesh.VertexNonManifoldOther:
		return 2
	case topomesh.VertexOpenBook:
		return 1
	default:
		return 0
	}
}

func incidentFacesOfEdge(m *topomesh.Mesh, id topomesh.EdgeID) []topomesh.FaceID {
	var faces []topomesh.FaceID
	for _, h := range m.Edge(id).Halfedges {
		f := m.Halfedge(h).Face
		if f != topomesh.NoFace {
			faces = append(faces, f)
		}
	}
	return faces
}

// facesContaining returns every face touching v that isn't already in skip.
func facesContaining(m *topomesh.Mesh, v topomesh.VertexID, skip []topomesh.FaceID) []topomesh.FaceID {
	skipSet := make(map[topomesh.FaceID]bool, len(skip))
	for _, f := range skip {
		skipSet[f] = true
	}
	var out []topomesh.FaceID
	for _, f := range m.VertexFaces(v) {
		if !skipSet[f] {
			out = append(out, f)
		}
	}
	return out
}
