package topomesh

import "github.com/google/uuid"

// Mesh owns four arenas — vertices, halfedges, edges, faces — plus a
// content-free instance id used only for log correlation. No cross-
// reference is a pointer: every relation between elements is an id into one
// of these arenas. A single Mesh is not safe for concurrent mutation.
type Mesh struct {
	InstanceID uuid.UUID

	vertices   []Vertex
	halfedges  []Halfedge
	edges      []Edge
	faces      []Face

	freeVertices   []VertexID
	freeHalfedges  []HalfedgeID
	freeEdges      []EdgeID
	freeFaces      []FaceID
}

// New returns an empty mesh ready for construction via AddFace/Import.
func New() *Mesh {
	return &Mesh{InstanceID: uuid.New()}
}

// --- arena accessors -------------------------------------------------

func (m *Mesh) Vertex(id VertexID) *Vertex     { return &m.vertices[id] }
func (m *Mesh) Halfedge(id HalfedgeID) *Halfedge { return &m.halfedges[id] }
func (m *Mesh) Edge(id EdgeID) *Edge            { return &m.edges[id] }
func (m *Mesh) Face(id FaceID) *Face            { return &m.faces[id] }

// VertexCount, EdgeCount, FaceCount return the number of live (non-
// tombstoned) elements in each arena. They scan the arena; callers doing
// this in a hot loop should cache the result.
func (m *Mesh) VertexCount() int {
	count := 0
	for i := range m.vertices {
		if !m.vertices[i].removed {
			count++
		}
	}
	return count
}

func (m *Mesh) EdgeCount() int {
	count := 0
	for i := range m.edges {
		if !m.edges[i].removed {
			count++
		}
	}
	return count
}

func (m *Mesh) FaceCount() int {
	count := 0
	for i := range m.faces {
		if !m.faces[i].removed {
			count++
		}
	}
	return count
}

// EulerCharacteristic returns V - E + F over live elements.
func (m *Mesh) EulerCharacteristic() int {
	return m.VertexCount() - m.EdgeCount() + m.FaceCount()
}

// EachVertex, EachEdge, EachFace call cb for every live element id.
func (m *Mesh) EachVertex(cb func(VertexID)) {
	for i := range m.vertices {
		if !m.vertices[i].removed {
			cb(VertexID(i))
		}
	}
}

func (m *Mesh) EachEdge(cb func(EdgeID)) {
	for i := range m.edges {
		if !m.edges[i].removed {
			cb(EdgeID(i))
		}
	}
}

func (m *Mesh) EachFace(cb func(FaceID)) {
	for i := range m.faces {
		if !m.faces[i].removed {
			cb(FaceID(i))
		}
	}
}

// --- allocation --------------------------------------------------------

func (m *Mesh) allocVertex(v Vertex) VertexID {
	if n := len(m.freeVertices); n > 0 {
		id := m.freeVertices[n-1]
		m.freeVertices = m.freeVertices[:n-1]
		v.removed = false
		m.vertices[id] = v
		return id
	}
	m.vertices = append(m.vertices, v)
	return VertexID(len(m.vertices) - 1)
}

func (m *Mesh) allocHalfedge(h Halfedge) HalfedgeID {
	if n := len(m.freeHalfedges); n > 0 {
		id := m.freeHalfedges[n-1]
		m.freeHalfedges = m.freeHalfedges[:n-1]
		h.removed = false
		m.halfedges[id] = h
		return id
	}
	m.halfedges = append(m.halfedges, h)
	return HalfedgeID(len(m.halfedges) - 1)
}

func (m *Mesh) allocEdge(e Edge) EdgeID {
	if n := len(m.freeEdges); n > 0 {
		id := m.freeEdges[n-1]
		m.freeEdges = m.freeEdges[:n-1]
		e.removed = false
		m.edges[id] = e
		return id
	}
	m.edges = append(m.edges, e)
	return EdgeID(len(m.edges) - 1)
}

func (m *Mesh) allocFace(f Face) FaceID {
	if n := len(m.freeFaces); n > 0 {
		id := m.freeFaces[n-1]
		m.freeFaces = m.freeFaces[:n-1]
		f.removed = false
		m.faces[id] = f
		return id
	}
	m.faces = append(m.faces, f)
	return FaceID(len(m.faces) - 1)
}

// --- deletion ------------------------------------------------------------
// Deletion tombstones a slot. Deleted ids are not pushed onto the free
// lists, so the free lists stay empty, alloc* always appends, and an id
// stays unambiguous (and removed) for the rest of the mesh's lifetime.

func (m *Mesh) deleteVertex(id VertexID) {
	m.vertices[id] = Vertex{removed: true}
}

func (m *Mesh) deleteHalfedge(id HalfedgeID) {
	m.halfedges[id] = Halfedge{removed: true}
}

func (m *Mesh) deleteEdge(id EdgeID) {
	m.edges[id] = Edge{removed: true}
}

func (m *Mesh) deleteFace(id FaceID) {
	m.faces[id] = Face{removed: true}
}

// --- traversal helpers ---------------------------------------------------

// OutgoingHalfedges returns every halfedge whose source is v, by walking
// prev.twin around the vertex. Tolerates missing twins (boundary /
// non-manifold leftovers): when a gap is hit the walk falls back to
// vertexHalfedgesFull, which scans the halfedge lists of the edges at v,
// so the outgoing halfedges of every face linked to the start face through
// an edge at v are still visited where the fast walk cannot complete a
// full cycle.
func (m *Mesh) OutgoingHalfedges(v VertexID) []HalfedgeID {
	start := m.vertices[v].Halfedge
	if start == NoHalfedge {
		return nil
	}
	seen := make(map[HalfedgeID]bool)
	var out []HalfedgeID
	h := start
	for {
		if seen[h] {
			break
		}
		seen[h] = true
		out = append(out, h)
		prev := m.halfedges[h].Prev
		twin := m.halfedges[prev].Twin
		if twin == NoHalfedge {
			break
		}
		h = twin
		if h == start {
			return out
		}
	}
	// Fast walk couldn't close the loop (boundary or non-manifold vertex).
	// Also walk backwards from start to pick up the other fan, then fall
	// back to a full scan to catch any fan reachable only through a
	// twin-less partner elsewhere on this edge's non-manifold bundle.
	return m.vertexHalfedgesFull(v, out)
}

// vertexHalfedgesFull augments a partial fast-walk result with any outgoing
// halfedges reachable by scanning every edge incident to halfedges already
// found — necessary because a non-manifold edge's extra halfedges are not
// all reachable purely via single twin pointers.
func (m *Mesh) vertexHalfedgesFull(v VertexID, partial []HalfedgeID) []HalfedgeID {
	seen := make(map[HalfedgeID]bool, len(partial))
	queue := make([]HalfedgeID, len(partial))
	copy(queue, partial)
	for _, h := range partial {
		seen[h] = true
	}
	result := append([]HalfedgeID(nil), partial...)
	for len(queue) > 0 {
		h := queue[0]
		queue = queue[1:]
		edgeID := m.halfedges[h].Edge
		for _, other := range m.edges[edgeID].Halfedges {
			if other == h || seen[other] {
				continue
			}
			if m.Source(other) != v {
				continue
			}
			seen[other] = true
			result = append(result, other)
			queue = append(queue, other)
		}
		prev := m.halfedges[h].Prev
		twin := m.halfedges[prev].Twin
		if twin != NoHalfedge && !seen[twin] {
			seen[twin] = true
			result = append(result, twin)
			queue = append(queue, twin)
		}
		// A halfedge ending at v on h's edge or on h.Prev's edge is followed
		// by an outgoing halfedge of its own face: this walks the fan the
		// other way and across twin-less non-manifold bundles.
		for _, e := range []EdgeID{edgeID, m.halfedges[prev].Edge} {
			for _, in := range m.edges[e].Halfedges {
				if next := m.halfedges[in].Next; m.halfedges[in].Target == v && !seen[next] {
					seen[next] = true
					result = append(result, next)
					queue = append(queue, next)
				}
			}
		}
	}
	return result
}

// VertexFaces returns the faces incident to v (no duplicates).
func (m *Mesh) VertexFaces(v VertexID) []FaceID {
	var out []FaceID
	seen := make(map[FaceID]bool)
	for _, h := range m.OutgoingHalfedges(v) {
		f := m.halfedges[h].Face
		if f != NoFace && !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

// VertexNeighbors returns the distinct vertices adjacent to v via an edge.
func (m *Mesh) VertexNeighbors(v VertexID) []VertexID {
	var out []VertexID
	seen := make(map[VertexID]bool)
	for _, h := range m.OutgoingHalfedges(v) {
		// h reaches one neighbour; h.Next's target is the face's third
		// corner, joined to v by h.Prev, which on a boundary has no
		// outgoing partner at v.
		for _, t := range []VertexID{m.halfedges[h].Target, m.halfedges[m.halfedges[h].Next].Target} {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

// VertexEdges returns the distinct edges incident to v.
func (m *Mesh) VertexEdges(v VertexID) []EdgeID {
	var out []EdgeID
	seen := make(map[EdgeID]bool)
	for _, h := range m.OutgoingHalfedges(v) {
		// h leaves v and h.Prev enters it; on a boundary the incoming edge
		// has no outgoing partner at v, so both are taken.
		for _, e := range []EdgeID{m.halfedges[h].Edge, m.halfedges[m.halfedges[h].Prev].Edge} {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

// HalfedgeBetween returns a halfedge whose source is a and target is b, if
// one exists among the edge shared by a and b.
func (m *Mesh) HalfedgeBetween(a, b VertexID) HalfedgeID {
	for _, h := range m.OutgoingHalfedges(a) {
		if m.halfedges[h].Target == b {
			return h
		}
	}
	return NoHalfedge
}

// FindEdge returns the edge between a and b, if one exists.
func (m *Mesh) FindEdge(a, b VertexID) EdgeID {
	h := m.HalfedgeBetween(a, b)
	if h == NoHalfedge {
		h = m.HalfedgeBetween(b, a)
	}
	if h == NoHalfedge {
		return NoEdge
	}
	return m.halfedges[h].Edge
}

// RecomputeEdgeLength updates an edge's cached length from current vertex
// positions.
func (m *Mesh) RecomputeEdgeLength(id EdgeID) {
	v0, v1 := m.EdgeEndpoints(id)
	m.edges[id].Length = m.vertices[v0].Position.Sub(m.vertices[v1].Position).Norm()
}

// BoundingBox returns the axis-aligned bounding box over all live vertices.
func (m *Mesh) BoundingBox() (min, max Vec3) {
	first := true
	m.EachVertex(func(id VertexID) {
		p := m.vertices[id].Position
		if first {
			min, max = p, p
			first = false
			return
		}
		min = Vec3{X: minF(min.X, p.X), Y: minF(min.Y, p.Y), Z: minF(min.Z, p.Z)}
		max = Vec3{X: maxF(max.X, p.X), Y: maxF(max.Y, p.Y), Z: maxF(max.Z, p.Z)}
	})
	return
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxF(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
