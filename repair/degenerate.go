package repair

import "github.com/nonmanifold/topomesh"

// DegenerateFaceOp removes faces with near-zero area or a repeated vertex.
type DegenerateFaceOp struct {
	AreaEps float64
}

func (DegenerateFaceOp) Name() string { return "DegenerateFace" }

func (op DegenerateFaceOp) eps() float64 {
	if op.AreaEps <= 0 {
		return 1e-10
	}
	return op.AreaEps
}

func (op DegenerateFaceOp) isDegenerate(m *topomesh.Mesh, id topomesh.FaceID) bool {
	a, b, c := m.FaceVertices(id)
	if a == b || b == c || a == c {
		return true
	}
	pa, pb, pc := m.FacePositions(id)
	return topomesh.TriangleArea(pa, pb, pc) < op.eps()
}

func (op DegenerateFaceOp) Detect(m *topomesh.Mesh) int {
	count := 0
	m.EachFace(func(id topomesh.FaceID) {
		if op.isDegenerate(m, id) {
			count++
		}
	})
	return count
}

func (op DegenerateFaceOp) Repair(m *topomesh.Mesh) int {
	var bad []topomesh.FaceID
	m.EachFace(func(id topomesh.FaceID) {
		if op.isDegenerate(m, id) {
			bad = append(bad, id)
		}
	})
	for _, id := range bad {
		m.RemoveFace(id)
	}
	return len(bad)
}
