package repair

import (
	"testing"

	"github.com/nonmanifold/topomesh"
)

func TestScanDefectsCountsEachKind(t *testing.T) {
	positions := []float64{
		0, 0, 0, 1, 0, 0, 0.5, 1, 0, // valid triangle
		0, 0, 0, 0, 0, 0, 0, 0, 0, // degenerate triangle
		9, 9, 9, // isolated vertex (index 6), never referenced below
	}
	indices := []int{
		0, 1, 2,
		0, 1, 2,
		3, 4, 5,
	}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	counts, err := ScanDefects(m, 1e-10)
	if err != nil {
		t.Fatalf("ScanDefects: %v", err)
	}
	if counts.IsolatedVertices != 1 {
		t.Errorf("IsolatedVertices = %d, want 1", counts.IsolatedVertices)
	}
	if counts.DuplicateFaces != 1 {
		t.Errorf("DuplicateFaces = %d, want 1", counts.DuplicateFaces)
	}
	if counts.DegenerateFaces != 1 {
		t.Errorf("DegenerateFaces = %d, want 1", counts.DegenerateFaces)
	}
}
