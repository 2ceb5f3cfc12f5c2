package topomesh

import (
	"fmt"
	"math"
)

// VertexPair is an unordered pair of vertex indices, used as a map key when
// resolving-or-creating edges during import.
type VertexPair struct {
	Lo, Hi int
}

func MakeVertexPair(a, b int) VertexPair {
	if a <= b {
		return VertexPair{a, b}
	}
	return VertexPair{b, a}
}

// Import builds a Mesh from a flat position array (3 floats per vertex) and
// a flat triangle index array (3 indices per triangle), with an optional
// set of user-marked feature-edge vertex pairs.
func Import(positions []float64, indices []int, featureEdges []VertexPair) (*Mesh, error) {
	if len(positions)%3 != 0 {
		return nil, MalformedInputError("positions length must be divisible by 3")
	}
	if len(indices)%3 != 0 {
		return nil, MalformedInputError("indices length must be divisible by 3")
	}
	n := len(positions) / 3
	for i, p := range positions {
		if math.IsNaN(p) || math.IsInf(p, 0) {
			return nil, MalformedInputError(indexedReason("non-finite position component", i))
		}
	}
	for i, idx := range indices {
		if idx < 0 || idx >= n {
			return nil, MalformedInputError(indexedReason("triangle index out of range", i))
		}
	}

	m := New()
	m.vertices = make([]Vertex, n)
	for i := 0; i < n; i++ {
		m.vertices[i] = Vertex{
			Position: Vec3{X: positions[i*3], Y: positions[i*3+1], Z: positions[i*3+2]},
			Halfedge: NoHalfedge,
		}
	}

	edgeIndex := make(map[VertexPair]EdgeID)
	triCount := len(indices) / 3
	for t := 0; t < triCount; t++ {
		i0, i1, i2 := indices[t*3], indices[t*3+1], indices[t*3+2]
		if i0 == i1 || i1 == i2 || i0 == i2 {
			return nil, MalformedInputError(indexedReason("degenerate triangle with repeated vertex", t))
		}
		m.addTriangle(VertexID(i0), VertexID(i1), VertexID(i2), edgeIndex)
	}

	assignTwins(m)
	for id := range m.edges {
		if !m.edges[id].removed {
			classifyEdge(m, EdgeID(id))
		}
	}
	for _, fe := range featureEdges {
		id := m.FindEdge(VertexID(fe.Lo), VertexID(fe.Hi))
		if id == NoEdge {
			continue
		}
		m.edges[id].Feature = true
		if m.edges[id].Kind == EdgeManifold {
			m.edges[id].Kind = EdgeFeature
		}
	}
	ClassifyVertices(m)
	return m, nil
}

func indexedReason(msg string, i int) string {
	return fmt.Sprintf("%s (at index %d)", msg, i)
}

// addTriangle resolves-or-creates the three undirected edges of a triangle,
// creates three halfedges wired into a 3-cycle, and a new Face.
func (m *Mesh) addTriangle(i0, i1, i2 VertexID, edgeIndex map[VertexPair]EdgeID) FaceID {
	face := m.allocFace(Face{})

	corners := [3]VertexID{i0, i1, i2}
	halfedgeIDs := [3]HalfedgeID{}
	for k := 0; k < 3; k++ {
		src := corners[k]
		tgt := corners[(k+1)%3]
		h := m.allocHalfedge(Halfedge{
			Target: tgt,
			Face:   face,
			Next:   NoHalfedge,
			Prev:   NoHalfedge,
			Twin:   NoHalfedge,
		})
		halfedgeIDs[k] = h

		pair := MakeVertexPair(int(src), int(tgt))
		edgeID, exists := edgeIndex[pair]
		if !exists {
			edgeID = m.allocEdge(Edge{Rep: h})
			edgeIndex[pair] = edgeID
		}
		m.edges[edgeID].Halfedges = append(m.edges[edgeID].Halfedges, h)
		m.edges[edgeID].Rep = h
		m.halfedges[h].Edge = edgeID

		if m.vertices[src].Halfedge == NoHalfedge {
			m.vertices[src].Halfedge = h
		}
	}
	for k := 0; k < 3; k++ {
		m.halfedges[halfedgeIDs[k]].Next = halfedgeIDs[(k+1)%3]
		m.halfedges[halfedgeIDs[k]].Prev = halfedgeIDs[(k+2)%3]
	}
	m.faces[face].Halfedge = halfedgeIDs[0]
	return face
}

// assignTwins pairs halfedges of each edge: 1 halfedge -> no twin
// (boundary); 2 -> mutual twins; >2 -> partition by direction into two
// bags keyed by target vertex, pair positionally, leftovers in the larger
// bag get no twin.
func assignTwins(m *Mesh) {
	for id := range m.edges {
		e := &m.edges[id]
		if e.removed {
			continue
		}
		switch len(e.Halfedges) {
		case 0:
			continue
		case 1:
			m.halfedges[e.Halfedges[0]].Twin = NoHalfedge
		case 2:
			a, b := e.Halfedges[0], e.Halfedges[1]
			m.halfedges[a].Twin = b
			m.halfedges[b].Twin = a
		default:
			v0, _ := m.EdgeEndpoints(EdgeID(id))
			var towardV0, towardV1 []HalfedgeID
			for _, h := range e.Halfedges {
				if m.halfedges[h].Target == v0 {
					towardV0 = append(towardV0, h)
				} else {
					towardV1 = append(towardV1, h)
				}
			}
			n := len(towardV0)
			if len(towardV1) < n {
				n = len(towardV1)
			}
			for i := 0; i < n; i++ {
				m.halfedges[towardV0[i]].Twin = towardV1[i]
				m.halfedges[towardV1[i]].Twin = towardV0[i]
			}
			for i := n; i < len(towardV0); i++ {
				m.halfedges[towardV0[i]].Twin = NoHalfedge
			}
			for i := n; i < len(towardV1); i++ {
				m.halfedges[towardV1[i]].Twin = NoHalfedge
			}
		}
	}
}

// classifyEdge sets e.Kind from its incident-face count (Feature dominates
// Manifold when user-marked).
func classifyEdge(m *Mesh, id EdgeID) {
	e := &m.edges[id]
	count := m.EdgeFaceCount(id)
	switch {
	case count > 2:
		e.Kind = EdgeNonManifold
	case count == 1:
		e.Kind = EdgeBoundary
	default:
		if e.Feature {
			e.Kind = EdgeFeature
		} else {
			e.Kind = EdgeManifold
		}
	}
	m.RecomputeEdgeLength(id)
}

// ReclassifyEdge is classifyEdge exposed for operators that change an
// edge's incident face count (split, collapse, flip, repair).
func (m *Mesh) ReclassifyEdge(id EdgeID) {
	classifyEdge(m, id)
}
