package topomesh

// This file holds the low-level mutation primitives that every local
// operator (ops package) and repair step is built from: creating an
// isolated vertex, creating a triangular face (finding-or-creating its
// three edges and incrementally pairing twins), and removing a face
// (detaching and, where an edge is left with no halfedges, removing that
// edge too). Keeping these in the core package means every caller shares
// one implementation of the non-manifold twin-pairing rule.

// NewVertex allocates an isolated vertex at the given position.
func (m *Mesh) NewVertex(pos Vec3) VertexID {
	return m.allocVertex(Vertex{Position: pos, Halfedge: NoHalfedge})
}

// AddFace creates a new triangular face a->b->c->a, resolving or creating
// each of its three edges and incrementally pairing twins the same way
// import's assignTwins does in bulk. Returns the new face's id. The caller is responsible for reclassifying any vertices whose
// skeleton-edge count may have changed.
func (m *Mesh) AddFace(a, b, c VertexID) FaceID {
	face := m.allocFace(Face{})
	corners := [3]VertexID{a, b, c}
	var h [3]HalfedgeID
	for k := 0; k < 3; k++ {
		src, tgt := corners[k], corners[(k+1)%3]
		id := m.allocHalfedge(Halfedge{Target: tgt, Face: face, Twin: NoHalfedge, Next: NoHalfedge, Prev: NoHalfedge})
		h[k] = id
		m.wireHalfedgeToEdge(id, src, tgt)
		if m.vertices[src].Halfedge == NoHalfedge {
			m.vertices[src].Halfedge = id
		}
	}
	for k := 0; k < 3; k++ {
		m.halfedges[h[k]].Next = h[(k+1)%3]
		m.halfedges[h[k]].Prev = h[(k+2)%3]
	}
	m.faces[face].Halfedge = h[0]
	for k := 0; k < 3; k++ {
		classifyEdge(m, m.halfedges[h[k]].Edge)
	}
	assert("new face's halfedge loop closes in three steps", func() bool {
		return m.halfedges[h[2]].Next == h[0]
	})
	return face
}

// wireHalfedgeToEdge resolves-or-creates the undirected edge between src and
// tgt, appends h to it, and attempts to pair h with an existing twin-less
// halfedge running the opposite direction (tgt->src).
func (m *Mesh) wireHalfedgeToEdge(h HalfedgeID, src, tgt VertexID) {
	edgeID := m.findEdgeIgnoring(src, tgt, h)
	if edgeID == NoEdge {
		edgeID = m.allocEdge(Edge{Rep: h})
	}
	e := &m.edges[edgeID]
	e.Halfedges = append(e.Halfedges, h)
	e.Rep = h
	m.halfedges[h].Edge = edgeID

	for _, other := range e.Halfedges {
		if other == h || m.halfedges[other].Twin != NoHalfedge {
			continue
		}
		if m.halfedges[other].Target == src && m.Source(other) == tgt {
			m.halfedges[other].Twin = h
			m.halfedges[h].Twin = other
			break
		}
	}
}

// findEdgeIgnoring is FindEdge but tolerant of a not-yet-fully-wired
// halfedge h (so it can be called mid-construction before h has Prev set).
func (m *Mesh) findEdgeIgnoring(a, b VertexID, ignore HalfedgeID) EdgeID {
	found := NoEdge
	m.EachEdge(func(id EdgeID) {
		if found != NoEdge {
			return
		}
		for _, he := range m.edges[id].Halfedges {
			if he == ignore {
				continue
			}
			s, t := m.endpointsOf(he)
			if (s == a && t == b) || (s == b && t == a) {
				found = id
				return
			}
		}
	})
	return found
}

// endpointsOf returns (source, target) of a halfedge, tolerating a halfedge
// whose Prev isn't wired yet by falling back to the edge's other member.
func (m *Mesh) endpointsOf(h HalfedgeID) (VertexID, VertexID) {
	he := &m.halfedges[h]
	if he.Prev != NoHalfedge {
		return m.halfedges[m.halfedges[h].Prev].Target, he.Target
	}
	// Prev not wired yet (mid face-construction): derive source from any
	// sibling halfedge's twin info if possible, else leave source unknown
	// by returning NoVertex, which never matches a real query.
	return NoVertex, he.Target
}

// RemoveFace detaches face f: each of its three halfedges is unlinked from
// its edge (and has its twin's twin pointer cleared), then deleted; any
// edge left with zero halfedges is deleted too. The face slot itself is
// deleted last. Before anything is detached, each corner vertex whose
// Halfedge lies in f is re-pointed at another outgoing halfedge, or at
// NoHalfedge when f was its last face. Callers must reclassify any
// vertices/edges whose incident-face counts changed.
func (m *Mesh) RemoveFace(f FaceID) {
	h0, h1, h2 := m.FaceHalfedges(f)
	for _, h := range []HalfedgeID{h0, h1, h2} {
		if src := m.Source(h); m.vertices[src].Halfedge == h {
			m.vertices[src].Halfedge = m.firstRemainingOutgoing(src, h)
		}
	}
	for _, h := range []HalfedgeID{h0, h1, h2} {
		m.detachHalfedge(h)
	}
	m.deleteFace(f)
}

// detachHalfedge removes h from its edge's halfedge list, clears any twin's
// back-reference, deletes h, and deletes the edge if it is now empty.
// Reclassifies the edge otherwise.
func (m *Mesh) detachHalfedge(h HalfedgeID) {
	he := m.halfedges[h]
	if he.Twin != NoHalfedge {
		m.halfedges[he.Twin].Twin = NoHalfedge
	}
	e := &m.edges[he.Edge]
	for i, member := range e.Halfedges {
		if member == h {
			e.Halfedges = append(e.Halfedges[:i], e.Halfedges[i+1:]...)
			break
		}
	}
	if len(e.Halfedges) == 0 {
		m.deleteEdge(he.Edge)
	} else {
		if e.Rep == h {
			e.Rep = e.Halfedges[0]
		}
		classifyEdge(m, he.Edge)
	}
	// Fix up vertex.Halfedge if it pointed at the halfedge being removed.
	src := NoVertex
	if he.Prev != NoHalfedge && !m.halfedges[he.Prev].removed {
		src = m.halfedges[he.Prev].Target
	}
	if src != NoVertex && m.vertices[src].Halfedge == h {
		m.vertices[src].Halfedge = m.firstRemainingOutgoing(src, h)
	}
	m.deleteHalfedge(h)
}

// firstRemainingOutgoing finds a replacement outgoing halfedge for src after
// excluding one that is about to be deleted, or NoHalfedge if src becomes
// isolated.
func (m *Mesh) firstRemainingOutgoing(src VertexID, excluding HalfedgeID) HalfedgeID {
	for _, h := range m.OutgoingHalfedges(src) {
		if h != excluding && !m.halfedges[h].removed {
			return h
		}
	}
	return NoHalfedge
}

// RemoveVertex deletes an isolated vertex. Reports false and does nothing if
// the vertex still has an outgoing halfedge.
func (m *Mesh) RemoveVertex(id VertexID) bool {
	if !m.vertices[id].IsIsolated() {
		return false
	}
	m.deleteVertex(id)
	return true
}

// ReverseFace flips the winding of face f (a,b,c -> a,c,b), used by normal
// unification repair. Implemented as remove+recreate to reuse the same
// edge/twin wiring logic everywhere else; returns the new face id since the
// old one no longer exists.
func (m *Mesh) ReverseFace(f FaceID) FaceID {
	a, b, c := m.FaceVertices(f)
	m.RemoveFace(f)
	return m.AddFace(a, c, b)
}
