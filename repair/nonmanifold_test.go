package repair

import (
	"testing"

	"github.com/nonmanifold/topomesh"
)

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

func TestNonManifoldEdgeOpDetectsSeam(t *testing.T) {
	m := seamMesh(t)
	op := NonManifoldEdgeOp{}
	if found := op.Detect(m); found != 1 {
		t.Errorf("Detect = %d, want 1", found)
	}
}

func TestNonManifoldEdgeOpCollapseStrategyDeletesExtraFaces(t *testing.T) {
	m := seamMesh(t)
	op := NonManifoldEdgeOp{Strategy: StrategyCollapse}
	before := m.FaceCount()
	fixed := op.Repair(m)
	if fixed != 1 {
		t.Fatalf("Repair = %d, want 1", fixed)
	}
	if got := m.FaceCount(); got != before-1 {
		t.Errorf("face count after collapse strategy = %d, want %d", got, before-1)
	}
	id := m.FindEdge(0, 1)
	if m.EdgeFaceCount(id) != 2 {
		t.Errorf("seam edge face count = %d, want 2", m.EdgeFaceCount(id))
	}
}

func TestNonManifoldEdgeOpSplitStrategyDuplicatesVertex(t *testing.T) {
	m := seamMesh(t)
	op := NonManifoldEdgeOp{Strategy: StrategySplit}
	beforeVerts := m.VertexCount()
	beforeFaces := m.FaceCount()
	fixed := op.Repair(m)
	if fixed != 1 {
		t.Fatalf("Repair = %d, want 1", fixed)
	}
	if got := m.VertexCount(); got != beforeVerts+1 {
		t.Errorf("vertex count after split strategy = %d, want %d", got, beforeVerts+1)
	}
	if got := m.FaceCount(); got != beforeFaces {
		t.Errorf("face count after split strategy = %d, want unchanged %d", got, beforeFaces)
	}
	if !m.IsManifold() {
		t.Error("splitting off the third face should leave the mesh manifold")
	}
}

func TestOrderByDeviationOrdersWorstFirst(t *testing.T) {
	m := seamMesh(t)
	var edges []topomesh.EdgeID
	m.EachEdge(func(id topomesh.EdgeID) { edges = append(edges, id) })
	ordered := orderByDeviation(m, edges, 0)
	for i := 1; i < len(ordered); i++ {
		prevLen := m.Edge(ordered[i-1]).Length
		curLen := m.Edge(ordered[i]).Length
		if prevLen < curLen {
			t.Errorf("edges not ordered by descending deviation from 0: %v then %v", prevLen, curLen)
		}
	}
}
