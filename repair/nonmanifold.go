package repair

import "github.com/nonmanifold/topomesh"

// NonManifoldStrategy selects how NonManifoldEdgeOp resolves an edge with
// more than two incident faces.
type NonManifoldStrategy int

const (
	StrategyAuto NonManifoldStrategy = iota
	StrategySplit
	StrategyCollapse
)

// NonManifoldEdgeOp resolves edges with more than two incident faces,
// either by duplicating a shared vertex per extra face (split) or by
// deleting the extra faces outright (collapse); auto picks split for
// edges longer than the mesh's mean edge length, collapse otherwise.
// It is not part of RepairAll's fixed order — the caller
// chooses when to run it, and with what strategy.
type NonManifoldEdgeOp struct {
	Strategy NonManifoldStrategy
}

func (NonManifoldEdgeOp) Name() string { return "NonManifoldEdge" }

func (NonManifoldEdgeOp) Detect(m *topomesh.Mesh) int {
	count := 0
	m.EachEdge(func(id topomesh.EdgeID) {
		if m.EdgeFaceCount(id) > 2 {
			count++
		}
	})
	return count
}

func (op NonManifoldEdgeOp) Repair(m *topomesh.Mesh) int {
	var targets []topomesh.EdgeID
	m.EachEdge(func(id topomesh.EdgeID) {
		if m.EdgeFaceCount(id) > 2 {
			targets = append(targets, id)
		}
	})
	if len(targets) == 0 {
		return 0
	}

	mean := meanEdgeLength(m)

	// Worst violators first: edges whose length deviates most from the
	// mesh's mean are the likeliest seams and get resolved before the
	// marginal cases, the same container/heap badness-ordering idiom
	// DelaunayPass uses.
	ordered := orderByDeviation(m, targets, mean)

	fixed := 0
	for _, id := range ordered {
		if m.Edge(id).Removed() {
			continue
		}
		strategy := op.Strategy
		if strategy == StrategyAuto {
			if m.Edge(id).Length > mean {
				strategy = StrategySplit
			} else {
				strategy = StrategyCollapse
			}
		}
		if strategy == StrategySplit {
			fixed += resolveBySplitting(m, id)
		} else {
			fixed += resolveByCollapsing(m, id)
		}
	}
	return fixed
}

func meanEdgeLength(m *topomesh.Mesh) float64 {
	total, count := 0.0, 0
	m.EachEdge(func(id topomesh.EdgeID) {
		total += m.Edge(id).Length
		count++
	})
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// resolveBySplitting peels off every face beyond the first two, duplicating
// the edge's v0 endpoint (at the same position) for each peeled face and
// rebuilding it with the duplicate in place of v0: duplicating a single
// endpoint per extra face, not the symmetric alternative of splitting both.
func resolveBySplitting(m *topomesh.Mesh, id topomesh.EdgeID) int {
	v0, _ := m.EdgeEndpoints(id)
	extra := extraFaces(m, id)
	fixed := 0
	for _, f := range extra {
		a, b, c := m.FaceVertices(f)
		dup := m.NewVertex(m.Vertex(v0).Position)
		m.RemoveFace(f)
		m.AddFace(substitute(a, v0, dup), substitute(b, v0, dup), substitute(c, v0, dup))
		fixed++
	}
	reclassifyEndpoints(m, id)
	return fixed
}

func substitute(v, from, to topomesh.VertexID) topomesh.VertexID {
	if v == from {
		return to
	}
	return v
}

// resolveByCollapsing deletes every face beyond the first two outright.
func resolveByCollapsing(m *topomesh.Mesh, id topomesh.EdgeID) int {
	extra := extraFaces(m, id)
	for _, f := range extra {
		m.RemoveFace(f)
	}
	reclassifyEndpoints(m, id)
	return len(extra)
}

// extraFaces returns every face incident to id beyond the first two.
func extraFaces(m *topomesh.Mesh, id topomesh.EdgeID) []topomesh.FaceID {
	var faces []topomesh.FaceID
	for _, h := range m.Edge(id).Halfedges {
		if f := m.Halfedge(h).Face; f != topomesh.NoFace {
			faces = append(faces, f)
		}
	}
	if len(faces) <= 2 {
		return nil
	}
	return faces[2:]
}

func reclassifyEndpoints(m *topomesh.Mesh, id topomesh.EdgeID) {
	if m.Edge(id).Removed() {
		return
	}
	v0, v1 := m.EdgeEndpoints(id)
	topomesh.ClassifyVertex(m, v0)
	topomesh.ClassifyVertex(m, v1)
}
