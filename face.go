package topomesh

// Face is triangular; it owns one representative halfedge, the other two
// being reachable via Next.
type Face struct {
	Halfedge HalfedgeID
	removed  bool
}

func (f *Face) Removed() bool { return f.removed }

// FaceVertices returns the three corner vertices of a triangular face in loop
// order, starting from its representative halfedge's target.
func (m *Mesh) FaceVertices(id FaceID) (v0, v1, v2 VertexID) {
	h0 := m.faces[id].Halfedge
	h1 := m.halfedges[h0].Next
	h2 := m.halfedges[h1].Next
	return m.halfedges[h0].Target, m.halfedges[h1].Target, m.halfedges[h2].Target
}

// FaceHalfedges returns the three halfedges bounding a face in loop order.
func (m *Mesh) FaceHalfedges(id FaceID) (h0, h1, h2 HalfedgeID) {
	h0 = m.faces[id].Halfedge
	h1 = m.halfedges[h0].Next
	h2 = m.halfedges[h1].Next
	return
}

// FacePositions returns the three corner positions of a triangular face.
func (m *Mesh) FacePositions(id FaceID) (a, b, c Vec3) {
	v0, v1, v2 := m.FaceVertices(id)
	return m.vertices[v0].Position, m.vertices[v1].Position, m.vertices[v2].Position
}
