package topomesh

import "testing"

func countEdgeKinds(m *Mesh) map[EdgeKind]int {
	counts := make(map[EdgeKind]int)
	m.EachEdge(func(id EdgeID) {
		counts[m.Edge(id).Kind]++
	})
	return counts
}

func countVertexKinds(m *Mesh) map[VertexKind]int {
	counts := make(map[VertexKind]int)
	m.EachVertex(func(id VertexID) {
		counts[m.Vertex(id).Kind]++
	})
	return counts
}

func TestImportSingleTriangle(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 0.5, 1, 0}
	indices := []int{0, 1, 2}
	m, err := Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !m.IsManifold() {
		t.Error("single triangle should be manifold")
	}
	if !m.HasBoundary() {
		t.Error("single triangle should have boundary edges")
	}
	edgeKinds := countEdgeKinds(m)
	if edgeKinds[EdgeBoundary] != 3 || edgeKinds[EdgeNonManifold] != 0 {
		t.Errorf("edge kinds = %v, want 3 boundary, 0 non-manifold", edgeKinds)
	}
	vertexKinds := countVertexKinds(m)
	if vertexKinds[VertexOpenBook] != 3 {
		t.Errorf("vertex kinds = %v, want 3 open-book", vertexKinds)
	}
	if got := m.EulerCharacteristic(); got != 1 {
		t.Errorf("euler characteristic = %d, want 1", got)
	}
}

func TestImportTwoTriangleQuad(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	indices := []int{0, 1, 2, 0, 2, 3}
	m, err := Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if !m.IsManifold() {
		t.Error("quad should be manifold")
	}
	edgeKinds := countEdgeKinds(m)
	if edgeKinds[EdgeBoundary] != 4 {
		t.Errorf("boundary edges = %d, want 4", edgeKinds[EdgeBoundary])
	}
	if edgeKinds[EdgeManifold] != 1 {
		t.Errorf("manifold edges = %d, want 1", edgeKinds[EdgeManifold])
	}
	if edgeKinds[EdgeNonManifold] != 0 {
		t.Errorf("non-manifold edges = %d, want 0", edgeKinds[EdgeNonManifold])
	}
}

func TestImportNonManifoldSeam(t *testing.T) {
	positions := []float64{
		0, 0, 0,
		1, 0, 0,
		0.5, 1, 0,
		0.5, -1, 0,
		0.5, 0.5, 1,
	}
	indices := []int{0, 1, 2, 0, 1, 3, 0, 1, 4}
	m, err := Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	id := m.FindEdge(0, 1)
	if id == NoEdge {
		t.Fatal("expected edge (0,1) to exist")
	}
	if m.EdgeFaceCount(id) != 3 {
		t.Errorf("edge (0,1) face count = %d, want 3", m.EdgeFaceCount(id))
	}
	if m.Edge(id).Kind != EdgeNonManifold {
		t.Errorf("edge (0,1) kind = %v, want non-manifold", m.Edge(id).Kind)
	}
	if m.IsManifold() {
		t.Error("mesh with a 3-face edge should not be manifold")
	}
}

func TestImportRejectsMalformedInput(t *testing.T) {
	if _, err := Import([]float64{0, 0}, nil, nil); err == nil {
		t.Error("positions not divisible by 3 should error")
	}
	if _, err := Import([]float64{0, 0, 0}, []int{0, 0, 1}, nil); err == nil {
		t.Error("degenerate triangle (repeated vertex) should error")
	}
	if _, err := Import([]float64{0, 0, 0}, []int{0, 1, 2}, nil); err == nil {
		t.Error("out-of-range index should error")
	}
}

func TestImportFeatureEdgeSticksDespiteTwoFaces(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 0.5, 1, 0, 0.5, -1, 0}
	indices := []int{0, 1, 2, 0, 1, 3}
	feature := []VertexPair{MakeVertexPair(0, 1)}
	m, err := Import(positions, indices, feature)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	id := m.FindEdge(0, 1)
	if m.Edge(id).Kind != EdgeFeature {
		t.Errorf("marked edge kind = %v, want feature", m.Edge(id).Kind)
	}
	if !m.Edge(id).Feature {
		t.Error("marked edge should carry Feature=true")
	}
}

func TestInvariantHalfedgeLoopsCloseInThreeSteps(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	indices := []int{0, 1, 2, 0, 2, 3}
	m, _ := Import(positions, indices, nil)
	m.EachFace(func(id FaceID) {
		h0, h1, h2 := m.FaceHalfedges(id)
		if m.Halfedge(h2).Next != h0 {
			t.Errorf("face %d halfedge loop does not close in three steps", id)
		}
		if m.Halfedge(h0).Prev != h2 || m.Halfedge(h1).Prev != h0 {
			t.Errorf("face %d prev links inconsistent", id)
		}
	})
}

func TestInvariantTwinIsReciprocal(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	indices := []int{0, 1, 2, 0, 2, 3}
	m, _ := Import(positions, indices, nil)
	for i := range m.halfedges {
		h := HalfedgeID(i)
		if m.Halfedge(h).Removed() {
			continue
		}
		twin := m.Halfedge(h).Twin
		if twin == NoHalfedge {
			continue
		}
		if m.Halfedge(twin).Twin != h {
			t.Errorf("halfedge %d's twin %d does not point back", h, twin)
		}
	}
}
