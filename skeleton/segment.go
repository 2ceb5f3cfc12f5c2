// Package skeleton extracts and parameterizes the feature skeleton of a
// topomesh.Mesh: the union of non-manifold, feature and boundary edges,
// partitioned into segments between branching vertices or closed loops.
package skeleton

import (
	"github.com/samber/lo"

	"github.com/nonmanifold/topomesh"
)

// Segment is an ordered sequence of vertices connected by skeleton edges,
// between two branching vertices, or forming a closed loop. It holds weak
// references to mesh vertices/edges and cumulative arc lengths for
// parameterization.
type Segment struct {
	Vertices []topomesh.VertexID
	Edges    []topomesh.EdgeID
	Closed   bool
	arcLen   []float64 // cumulative arc length at each vertex; a closed loop has one extra entry, its full length
}

// Length returns the total arc length of the segment.
func (s *Segment) Length() float64 {
	if len(s.arcLen) == 0 {
		return 0
	}
	return s.arcLen[len(s.arcLen)-1]
}

// Skeleton is the derived feature skeleton of a mesh: its segments, plus a
// lookup from each interior open-book vertex to the segment it belongs to.
// It is rebuilt on demand after topology changes — it never owns the mesh
// entities it references.
type Skeleton struct {
	Segments []*Segment
	byVertex map[topomesh.VertexID]*Segment
}

// SegmentFor returns the segment an interior (non-branching) open-book
// vertex belongs to, or nil if v is a branching vertex (endpoints don't map
// to a single segment) or not on the skeleton at all.
func (sk *Skeleton) SegmentFor(v topomesh.VertexID) *Segment {
	return sk.byVertex[v]
}

// Extract builds the skeleton of m: seeds a trace from every unvisited
// skeleton edge incident to a branching vertex, then sweeps any remaining
// unvisited skeleton edges as closed loops containing no branching vertex.
func Extract(m *topomesh.Mesh) *Skeleton {
	visited := make(map[topomesh.EdgeID]bool)
	var segments []*Segment

	m.EachVertex(func(v topomesh.VertexID) {
		if m.Vertex(v).Kind != topomesh.VertexSkeletonBranching {
			return
		}
		for _, e := range skeletonEdgesOf(m, v) {
			if visited[e] {
				continue
			}
			seg := trace(m, v, e, visited)
			segments = append(segments, seg)
		}
	})

	// Any remaining unvisited skeleton edges form closed loops with no
	// branching vertex at all.
	m.EachEdge(func(e topomesh.EdgeID) {
		if visited[e] || !m.Edge(e).Kind.IsSkeleton() {
			return
		}
		v0, _ := m.EdgeEndpoints(e)
		seg := trace(m, v0, e, visited)
		segments = append(segments, seg)
	})

	return &Skeleton{Segments: segments, byVertex: buildIndex(segments)}
}

func buildIndex(segments []*Segment) map[topomesh.VertexID]*Segment {
	index := make(map[topomesh.VertexID]*Segment)
	for _, seg := range segments {
		n := len(seg.Vertices)
		start := 0
		end := n
		if !seg.Closed {
			// endpoints are branching vertices; they don't map to this segment
			start, end = 1, n-1
		}
		for i := start; i < end; i++ {
			index[seg.Vertices[i]] = seg
		}
	}
	return index
}

func skeletonEdgesOf(m *topomesh.Mesh, v topomesh.VertexID) []topomesh.EdgeID {
	return lo.Filter(m.VertexEdges(v), func(e topomesh.EdgeID, _ int) bool {
		return m.Edge(e).Kind.IsSkeleton()
	})
}

// otherEndpoint returns the endpoint of e that isn't v.
func otherEndpoint(m *topomesh.Mesh, e topomesh.EdgeID, v topomesh.VertexID) topomesh.VertexID {
	a, b := m.EdgeEndpoints(e)
	if a == v {
		return b
	}
	return a
}

// trace walks from v along e, continuing while the current vertex is
// OpenBook (exactly one unused skeleton edge to follow), terminating at a
// branching vertex or when no continuation exists. If the walk returns to
// its own start, it is marked closed and the duplicated end vertex dropped.
func trace(m *topomesh.Mesh, start topomesh.VertexID, first topomesh.EdgeID, visited map[topomesh.EdgeID]bool) *Segment {
	vertices := []topomesh.VertexID{start}
	var edges []topomesh.EdgeID

	current := start
	edge := first
	for {
		visited[edge] = true
		edges = append(edges, edge)
		next := otherEndpoint(m, edge, current)
		vertices = append(vertices, next)
		current = next

		if current == start {
			// closed loop
			vertices = vertices[:len(vertices)-1]
			seg := &Segment{Vertices: vertices, Edges: edges, Closed: true}
			computeArcLengths(m, seg)
			return seg
		}
		if m.Vertex(current).Kind != topomesh.VertexOpenBook {
			break
		}
		nextEdge, ok := soleUnusedSkeletonEdge(m, current, edge, visited)
		if !ok {
			break
		}
		edge = nextEdge
	}

	seg := &Segment{Vertices: vertices, Edges: edges, Closed: false}
	computeArcLengths(m, seg)
	return seg
}

// soleUnusedSkeletonEdge returns the one skeleton edge incident to v other
// than incoming, if v truly has exactly one unused continuation.
func soleUnusedSkeletonEdge(m *topomesh.Mesh, v topomesh.VertexID, incoming topomesh.EdgeID, visited map[topomesh.EdgeID]bool) (topomesh.EdgeID, bool) {
	candidates := lo.Filter(skeletonEdgesOf(m, v), func(e topomesh.EdgeID, _ int) bool {
		return e != incoming && !visited[e]
	})
	if len(candidates) != 1 {
		return topomesh.NoEdge, false
	}
	return candidates[0], true
}

func computeArcLengths(m *topomesh.Mesh, seg *Segment) {
	seg.arcLen = make([]float64, len(seg.Vertices))
	total := 0.0
	for i := 1; i < len(seg.Vertices); i++ {
		p0 := m.Vertex(seg.Vertices[i-1]).Position
		p1 := m.Vertex(seg.Vertices[i]).Position
		total += p0.Sub(p1).Norm()
		seg.arcLen[i] = total
	}
	if seg.Closed && len(seg.Vertices) > 0 {
		p0 := m.Vertex(seg.Vertices[len(seg.Vertices)-1]).Position
		p1 := m.Vertex(seg.Vertices[0]).Position
		seg.arcLen = append(seg.arcLen, total+p0.Sub(p1).Norm())
	}
}
