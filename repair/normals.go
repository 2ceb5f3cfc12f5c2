package repair

import "github.com/nonmanifold/topomesh"

// NormalUnifierOp makes face winding consistent across each connected
// component via a BFS flood from a seed face, reversing any face whose
// winding disagrees with its already-visited neighbor across a shared
// manifold edge.
type NormalUnifierOp struct{}

func (NormalUnifierOp) Name() string { return "NormalUnifier" }

func (NormalUnifierOp) Detect(m *topomesh.Mesh) int {
	return len(inconsistentFaces(m))
}

func (NormalUnifierOp) Repair(m *topomesh.Mesh) int {
	bad := inconsistentFaces(m)
	for _, f := range bad {
		if !m.Face(f).Removed() {
			m.ReverseFace(f)
		}
	}
	return len(bad)
}

// inconsistentFaces runs the same BFS flood as Repair but only reports
// which faces it would flip, without mutating anything.
func inconsistentFaces(m *topomesh.Mesh) []topomesh.FaceID {
	visited := make(map[topomesh.FaceID]bool)
	orientation := make(map[topomesh.FaceID]bool) // true = keep as-is, false = should flip
	var toFlip []topomesh.FaceID

	m.EachFace(func(seed topomesh.FaceID) {
		if visited[seed] {
			return
		}
		queue := []topomesh.FaceID{seed}
		visited[seed] = true
		orientation[seed] = true

		for len(queue) > 0 {
			f := queue[0]
			queue = queue[1:]
			h0, h1, h2 := m.FaceHalfedges(f)
			for _, h := range []topomesh.HalfedgeID{h0, h1, h2} {
				twin := m.Halfedge(h).Twin
				if twin == topomesh.NoHalfedge {
					continue
				}
				neighbor := m.Halfedge(twin).Face
				if neighbor == topomesh.NoFace || visited[neighbor] {
					continue
				}
				// Consistent orientation means the two halfedges sharing
				// this edge run in opposite directions (standard halfedge
				// invariant). Twin assignment during import pairs
				// halfedges by the edge they share regardless of
				// direction, so same-direction twins are exactly the
				// inconsistent-orientation signal this flood looks for.
				hSrc, hTgt := m.Source(h), m.Halfedge(h).Target
				tSrc, tTgt := m.Source(twin), m.Halfedge(twin).Target
				consistent := hSrc == tTgt && hTgt == tSrc

				visited[neighbor] = true
				if consistent {
					orientation[neighbor] = orientation[f]
				} else {
					orientation[neighbor] = !orientation[f]
				}
				queue = append(queue, neighbor)
			}
		}
	})

	for f, keep := range orientation {
		if !keep {
			toFlip = append(toFlip, f)
		}
	}
	return toFlip
}
