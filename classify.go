package topomesh

// ClassifyVertices reclassifies every live vertex: k=0 -> Manifold; k=2 ->
// OpenBook; k=1 or k>2 -> SkeletonBranching, where k is the count of
// incident skeleton edges. Isolated vertices (no outgoing halfedge) are
// Manifold by convention.
func ClassifyVertices(m *Mesh) {
	m.EachVertex(func(id VertexID) {
		ClassifyVertex(m, id)
	})
}

// ClassifyVertex reclassifies a single vertex; used by operators that only
// touch a handful of vertices instead of paying for a full mesh scan.
func ClassifyVertex(m *Mesh, id VertexID) {
	v := &m.vertices[id]
	if v.IsIsolated() {
		v.Kind = VertexManifold
		return
	}
	k := 0
	for _, e := range m.VertexEdges(id) {
		if m.edges[e].Kind.IsSkeleton() {
			k++
		}
	}
	switch {
	case k == 0:
		v.Kind = VertexManifold
	case k == 2:
		v.Kind = VertexOpenBook
	default:
		v.Kind = VertexSkeletonBranching
	}
}

// IsManifold reports whether the mesh has any non-manifold edges.
func (m *Mesh) IsManifold() bool {
	manifold := true
	m.EachEdge(func(id EdgeID) {
		if m.edges[id].Kind == EdgeNonManifold {
			manifold = false
		}
	})
	return manifold
}

// HasBoundary reports whether the mesh has any boundary edges.
func (m *Mesh) HasBoundary() bool {
	hasBoundary := false
	m.EachEdge(func(id EdgeID) {
		if m.edges[id].Kind == EdgeBoundary {
			hasBoundary = true
		}
	})
	return hasBoundary
}
