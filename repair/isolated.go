package repair

import "github.com/nonmanifold/topomesh"

// IsolatedVertexOp removes vertices with no outgoing halfedge.
type IsolatedVertexOp struct{}

func (IsolatedVertexOp) Name() string { return "IsolatedVertex" }

func (IsolatedVertexOp) Detect(m *topomesh.Mesh) int {
	count := 0
	m.EachVertex(func(id topomesh.VertexID) {
		if m.Vertex(id).IsIsolated() {
			count++
		}
	})
	return count
}

func (IsolatedVertexOp) Repair(m *topomesh.Mesh) int {
	var isolated []topomesh.VertexID
	m.EachVertex(func(id topomesh.VertexID) {
		if m.Vertex(id).IsIsolated() {
			isolated = append(isolated, id)
		}
	})
	fixed := 0
	for _, id := range isolated {
		if m.RemoveVertex(id) {
			fixed++
		}
	}
	return fixed
}
