package skeleton

import (
	"testing"

	"github.com/nonmanifold/topomesh"
)

// quadMesh builds two triangles sharing a manifold diagonal, with a closed
// 4-edge boundary loop and no branching vertex.
func quadMesh(t *testing.T) *topomesh.Mesh {
	t.Helper()
	positions := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	indices := []int{0, 1, 2, 0, 2, 3}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return m
}

// seamMesh builds three triangles fanned around a shared non-manifold edge
// (0,1), with vertices 0 and 1 branching and 2, 3, 4 each an interior
// open-book vertex of its own spoke segment.
func seamMesh(t *testing.T) *topomesh.Mesh {
	t.Helper()
	positions := []float64{
		0, 0, 0,
		1, 0, 0,
		0.5, 1, 0,
		0.5, -1, 0,
		0.5, 0.5, 1,
	}
	indices := []int{0, 1, 2, 0, 1, 3, 0, 1, 4}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return m
}

func TestExtractClosedLoopHasNoBranchingVertex(t *testing.T) {
	m := quadMesh(t)
	sk := Extract(m)
	if len(sk.Segments) != 1 {
		t.Fatalf("Segments = %d, want 1", len(sk.Segments))
	}
	seg := sk.Segments[0]
	if !seg.Closed {
		t.Error("boundary loop with no branching vertex should be closed")
	}
	if len(seg.Vertices) != 4 {
		t.Errorf("Vertices = %d, want 4", len(seg.Vertices))
	}
	if len(seg.Edges) != 4 {
		t.Errorf("Edges = %d, want 4", len(seg.Edges))
	}
}

func TestExtractSeamProducesFourSegmentsBetweenBranchPoints(t *testing.T) {
	m := seamMesh(t)
	sk := Extract(m)
	// Three two-edge spokes (0 -> apex -> 1) plus the direct non-manifold
	// edge (0,1) itself: four segments total, none closed.
	if len(sk.Segments) != 4 {
		t.Fatalf("Segments = %d, want 4", len(sk.Segments))
	}
	for _, seg := range sk.Segments {
		if seg.Closed {
			t.Error("no segment should be closed when both ends are branching vertices")
		}
		first, last := seg.Vertices[0], seg.Vertices[len(seg.Vertices)-1]
		if m.Vertex(first).Kind != topomesh.VertexSkeletonBranching {
			t.Errorf("segment start %d should be branching", first)
		}
		if m.Vertex(last).Kind != topomesh.VertexSkeletonBranching {
			t.Errorf("segment end %d should be branching", last)
		}
	}
}

func TestSegmentForMapsInteriorVertexButNotBranchEndpoints(t *testing.T) {
	m := seamMesh(t)
	sk := Extract(m)
	if sk.SegmentFor(0) != nil {
		t.Error("branching vertex 0 should not map to a single segment")
	}
	if sk.SegmentFor(1) != nil {
		t.Error("branching vertex 1 should not map to a single segment")
	}
	for _, apex := range []topomesh.VertexID{2, 3, 4} {
		if sk.SegmentFor(apex) == nil {
			t.Errorf("interior open-book vertex %d should map to a segment", apex)
		}
	}
}

func TestSegmentLengthMatchesArcLength(t *testing.T) {
	m := seamMesh(t)
	sk := Extract(m)
	seg := sk.SegmentFor(2)
	if seg == nil {
		t.Fatal("expected a segment through vertex 2")
	}
	want := m.Vertex(0).Position.Sub(m.Vertex(2).Position).Norm() +
		m.Vertex(2).Position.Sub(m.Vertex(1).Position).Norm()
	if got := seg.Length(); got < want-1e-9 || got > want+1e-9 {
		t.Errorf("Length() = %v, want %v", got, want)
	}
}
