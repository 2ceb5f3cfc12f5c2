package ops

import (
	"github.com/nonmanifold/topomesh"
	"github.com/nonmanifold/topomesh/skeleton"
)

// Smooth relocates v toward the centroid (plain average) of its one-ring
// neighbours, projected back onto the tangent plane at v, whose normal is
// the area-weighted average of the incident face normals; the move is
// damped by damping and rejected
// if it would invert or degenerate an incident triangle. Position-fixed
// vertices (branching / non-manifold-other) are left untouched; open-book
// vertices are constrained to their skeleton segment: the target is
// projected onto the segment sk.SegmentFor(v) returns, falling back to the
// nearest segment in sk when v isn't recorded against one. sk may be nil,
// in which case open-book vertices
// are rejected rather than moved off their feature geometry.
func Smooth(m *topomesh.Mesh, sk *skeleton.Skeleton, v topomesh.VertexID, damping float64) topomesh.Outcome {
	vert := m.Vertex(v)
	if vert.Kind.PositionFixed() {
		return topomesh.Reject(topomesh.KindRelocationInvalid, "vertex position is fixed by its classification")
	}
	faces := m.VertexFaces(v)
	if len(faces) == 0 {
		return topomesh.Reject(topomesh.KindMissingNeighbor, "vertex has no incident faces")
	}

	centroid, normal, ok := areaWeightedCentroid(m, v, faces)
	if !ok {
		return topomesh.Reject(topomesh.KindRelocationInvalid, "degenerate one-ring, no usable normal")
	}

	target := centroid
	if vert.Kind == topomesh.VertexOpenBook {
		if sk == nil {
			return topomesh.Reject(topomesh.KindRelocationInvalid, "open-book vertex requires a skeleton to stay constrained to")
		}
		proj, ok := projectToSkeleton(m, sk, v, centroid)
		if !ok {
			return topomesh.Reject(topomesh.KindRelocationInvalid, "open-book vertex has no skeleton segment to project onto")
		}
		target = proj
	} else {
		// Project the centroid back onto v's tangent plane so smoothing
		// doesn't pull the surface off its normal.
		offset := centroid.Sub(vert.Position)
		offset = offset.Sub(normal.Mul(offset.Dot(normal)))
		target = vert.Position.Add(offset)
	}

	newPos := topomesh.Lerp(vert.Position, target, damping)

	if wouldInvert(m, v, faces, newPos) {
		return topomesh.Reject(topomesh.KindRelocationInvalid, "relocation would invert or degenerate an incident triangle")
	}

	vert.Position = newPos
	for _, e := range m.VertexEdges(v) {
		m.RecomputeEdgeLength(e)
	}
	return topomesh.Ok()
}

func areaWeightedCentroid(m *topomesh.Mesh, v topomesh.VertexID, faces []topomesh.FaceID) (centroid, normal topomesh.Vec3, ok bool) {
	sumPos := topomesh.Vec3{}
	sumNormal := topomesh.Vec3{}
	totalWeight := 0.0
	neighbors := m.VertexNeighbors(v)
	for _, n := range neighbors {
		sumPos = sumPos.Add(m.Vertex(n).Position)
	}
	for _, f := range faces {
		a, b, c := m.FacePositions(f)
		w := topomesh.TriangleArea(a, b, c)
		totalWeight += w
		sumNormal = sumNormal.Add(topomesh.TriangleNormal(a, b, c).Mul(w))
	}
	if len(neighbors) == 0 || sumNormal.Norm() < 1e-12 {
		return topomesh.Vec3{}, topomesh.Vec3{}, false
	}
	centroid = sumPos.Mul(1 / float64(len(neighbors)))
	normal = sumNormal.Normalize()
	return centroid, normal, true
}

// projectToSkeleton returns the point on v's own skeleton segment nearest
// to target, falling back to the nearest segment in sk as a whole when v
// isn't recorded against one (a branching-adjacent edge case the segment
// index doesn't cover).
func projectToSkeleton(m *topomesh.Mesh, sk *skeleton.Skeleton, v topomesh.VertexID, target topomesh.Vec3) (topomesh.Vec3, bool) {
	if seg := sk.SegmentFor(v); seg != nil {
		if proj, ok := seg.ProjectPoint(m, target); ok {
			return proj.Point, true
		}
	}
	if proj, ok := sk.ProjectPoint(m, target); ok {
		return proj.Point, true
	}
	return topomesh.Vec3{}, false
}

// wouldInvert reports whether moving v to newPos flips the orientation (or
// collapses the area) of any incident face relative to its current normal.
func wouldInvert(m *topomesh.Mesh, v topomesh.VertexID, faces []topomesh.FaceID, newPos topomesh.Vec3) bool {
	for _, f := range faces {
		a, b, c := m.FaceVertices(f)
		pa, pb, pc := m.FacePositions(f)
		before := topomesh.TriangleNormal(pa, pb, pc)

		pa2, pb2, pc2 := pa, pb, pc
		switch v {
		case a:
			pa2 = newPos
		case b:
			pb2 = newPos
		case c:
			pc2 = newPos
		}
		after := topomesh.TriangleNormal(pa2, pb2, pc2)
		if after.Norm() < 1e-12 {
			return true
		}
		if before.Dot(after) <= 0 {
			return true
		}
	}
	return false
}

// SmoothAll runs one damped smoothing pass over every movable vertex,
// returning the number of vertices actually relocated.
func SmoothAll(m *topomesh.Mesh, sk *skeleton.Skeleton, damping float64) int {
	var moved int
	m.EachVertex(func(v topomesh.VertexID) {
		if Smooth(m, sk, v, damping).Success {
			moved++
		}
	})
	return moved
}
