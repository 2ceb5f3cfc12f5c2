package meshio

import (
	"testing"

	"github.com/nonmanifold/topomesh"
	"github.com/nonmanifold/topomesh/skeleton"
)

func TestExportSkeletonLinesCoversEveryLoopEdge(t *testing.T) {
	m, err := Import(quadContainer(), ImportOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	sk := skeleton.Extract(m)
	lines := ExportSkeletonLines(m, sk)
	// One closed 4-edge boundary loop, 6 floats per edge.
	if len(lines) != 4*6 {
		t.Errorf("lines length = %d, want %d", len(lines), 4*6)
	}
}

func TestCrossCheckSkeletonAlignmentFindsNothingOnAFreshImport(t *testing.T) {
	m, err := Import(quadContainer(), ImportOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	sk := skeleton.Extract(m)
	if got := CrossCheckSkeletonAlignment(m, sk, 1e-9); len(got) != 0 {
		t.Errorf("CrossCheckSkeletonAlignment = %v, want none", got)
	}
}

func TestCrossCheckSkeletonAlignmentIgnoresInteriorManifoldVertex(t *testing.T) {
	positions := []float64{
		0, 0, 0.5,
		1, 0, 0,
		0.3, 1, 0,
		-0.8, 0.2, 0,
		-0.5, -0.9, 0,
		0.6, -0.8, 0,
	}
	indices := []int{
		0, 1, 2,
		0, 2, 3,
		0, 3, 4,
		0, 4, 5,
		0, 5, 1,
	}
	m, err := Import(Container{Positions: positions, Indices: uint32sOf(indices)}, ImportOptions{})
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	// Vertex 0 is the interior hub of the closed fan: no incident skeleton
	// edges, so it's never considered by the alignment check no matter how
	// far it moves.
	m.Vertex(0).Position = m.Vertex(0).Position.Add(topomesh.Vec3{X: 100})
	sk := skeleton.Extract(m)
	got := CrossCheckSkeletonAlignment(m, sk, 1e-9)
	for _, mis := range got {
		if mis.Vertex == 0 {
			t.Error("interior manifold vertex should never be reported")
		}
	}
}

func uint32sOf(indices []int) []uint32 {
	out := make([]uint32, len(indices))
	for i, idx := range indices {
		out[i] = uint32(idx)
	}
	return out
}
