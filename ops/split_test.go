package ops

import (
	"testing"

	"github.com/nonmanifold/topomesh"
)

func quadMesh() (*topomesh.Mesh, topomesh.EdgeID) {
	positions := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	indices := []int{0, 1, 2, 0, 2, 3}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		panic(err)
	}
	return m, m.FindEdge(0, 2)
}

func TestSplitAtMidpointPreservesFaceCount(t *testing.T) {
	m, diag := quadMesh()
	before := m.FaceCount()
	newV, outcome := SplitAtMidpoint(m, diag)
	if !outcome.Success {
		t.Fatalf("split rejected: %v", outcome.Reason)
	}
	// Splitting a 2-face edge produces 4 faces in place of the original 2.
	if got := m.FaceCount(); got != before+2 {
		t.Errorf("face count after split = %d, want %d", got, before+2)
	}
	if m.Vertex(newV).Removed() {
		t.Error("new vertex should be live")
	}
}

func TestSplitBoundaryEdgeProducesOneNewFacePerIncidentFace(t *testing.T) {
	m, _ := quadMesh()
	boundary := m.FindEdge(0, 1)
	before := m.FaceCount()
	_, outcome := SplitAtMidpoint(m, boundary)
	if !outcome.Success {
		t.Fatalf("split rejected: %v", outcome.Reason)
	}
	if got := m.FaceCount(); got != before+1 {
		t.Errorf("face count after boundary split = %d, want %d", got, before+1)
	}
}

func TestSplitRejectsRemovedEdge(t *testing.T) {
	m, diag := quadMesh()
	_, first := Split(m, diag, 0.5)
	if !first.Success {
		t.Fatalf("first split rejected: %v", first.Reason)
	}
	_, second := Split(m, diag, 0.5)
	if second.Success {
		t.Error("splitting an already-removed edge should be rejected")
	}
}
