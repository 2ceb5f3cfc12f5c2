package repair

import "github.com/nonmanifold/topomesh"

// DuplicateFaceOp removes every face but one among those sharing the same
// canonical sorted vertex-id triple.
type DuplicateFaceOp struct{}

func (DuplicateFaceOp) Name() string { return "DuplicateFace" }

type triple struct{ a, b, c topomesh.VertexID }

func canonicalTriple(a, b, c topomesh.VertexID) triple {
	if a > b {
		a, b = b, a
	}
	if b > c {
		b, c = c, b
	}
	if a > b {
		a, b = b, a
	}
	return triple{a, b, c}
}

func groupByTriple(m *topomesh.Mesh) map[triple][]topomesh.FaceID {
	groups := make(map[triple][]topomesh.FaceID)
	m.EachFace(func(id topomesh.FaceID) {
		a, b, c := m.FaceVertices(id)
		key := canonicalTriple(a, b, c)
		groups[key] = append(groups[key], id)
	})
	return groups
}

func (DuplicateFaceOp) Detect(m *topomesh.Mesh) int {
	count := 0
	for _, faces := range groupByTriple(m) {
		if len(faces) > 1 {
			count += len(faces) - 1
		}
	}
	return count
}

func (DuplicateFaceOp) Repair(m *topomesh.Mesh) int {
	fixed := 0
	for _, faces := range groupByTriple(m) {
		if len(faces) <= 1 {
			continue
		}
		for _, id := range faces[1:] {
			m.RemoveFace(id)
			fixed++
		}
	}
	return fixed
}
