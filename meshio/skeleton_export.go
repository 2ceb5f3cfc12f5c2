package meshio

import (
	"github.com/nonmanifold/topomesh"
	"github.com/nonmanifold/topomesh/skeleton"
)

// ExportSkeletonLines returns a flat line-segment position buffer (6
// floats per skeleton edge: start xyz, end xyz), for the skeleton
// visualization variant.
func ExportSkeletonLines(m *topomesh.Mesh, sk *skeleton.Skeleton) []float64 {
	var out []float64
	for _, seg := range sk.Segments {
		n := len(seg.Vertices)
		segCount := n - 1
		if seg.Closed {
			segCount = n
		}
		for i := 0; i < segCount; i++ {
			a := m.Vertex(seg.Vertices[i]).Position
			b := m.Vertex(seg.Vertices[(i+1)%n]).Position
			out = append(out, a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}
	return out
}

// CrossCheckSkeletonAlignment is a read-only diagnostic: for every OpenBook
// vertex, confirms its position still projects back onto its own recorded
// segment within tolerance. Smoothing and SplitPreservingSkeleton both
// project their relocated/inserted vertex back onto the live skeleton
// before returning, but this offers one cheap whole-mesh check a caller can
// run after a batch of operations against a Skeleton captured before the
// batch — generalizing a cross-mesh "do two meshes' borders still align"
// consistency pass into "does this mesh's skeleton still align with
// itself".
func CrossCheckSkeletonAlignment(m *topomesh.Mesh, sk *skeleton.Skeleton, tolerance float64) []Misalignment {
	var out []Misalignment
	m.EachVertex(func(id topomesh.VertexID) {
		if m.Vertex(id).Kind != topomesh.VertexOpenBook {
			return
		}
		seg := sk.SegmentFor(id)
		if seg == nil {
			return
		}
		proj, ok := seg.ProjectPoint(m, m.Vertex(id).Position)
		if !ok {
			return
		}
		if proj.Distance > tolerance {
			out = append(out, Misalignment{Vertex: id, Distance: proj.Distance})
		}
	})
	return out
}

// Misalignment reports one vertex whose position has drifted off its
// skeleton segment beyond tolerance.
type Misalignment struct {
	Vertex   topomesh.VertexID
	Distance float64
}
