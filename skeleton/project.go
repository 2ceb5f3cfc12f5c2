package skeleton

import (
	"math"

	"github.com/nonmanifold/topomesh"
)

// Projection is the result of projecting a point onto a skeleton segment.
type Projection struct {
	Segment  *Segment
	Point    topomesh.Vec3
	T        float64 // arc-length parameter in [0,1]
	Distance float64
}

// ProjectPoint returns the closest point on any segment edge in the
// skeleton, with its arc-length parameter in [0,1] and the distance.
func (sk *Skeleton) ProjectPoint(m *topomesh.Mesh, p topomesh.Vec3) (Projection, bool) {
	best := Projection{Distance: math.Inf(1)}
	found := false
	for _, seg := range sk.Segments {
		proj, ok := seg.ProjectPoint(m, p)
		if ok && proj.Distance < best.Distance {
			best = proj
			found = true
		}
	}
	return best, found
}

// ProjectPoint returns the closest point on this segment's polyline to p.
func (s *Segment) ProjectPoint(m *topomesh.Mesh, p topomesh.Vec3) (Projection, bool) {
	n := len(s.Vertices)
	if n < 2 {
		return Projection{}, false
	}
	segCount := n - 1
	if s.Closed {
		segCount = n
	}
	total := s.Length()

	best := Projection{Distance: math.Inf(1)}
	found := false
	for i := 0; i < segCount; i++ {
		a := m.Vertex(s.Vertices[i]).Position
		bIdx := (i + 1) % n
		b := m.Vertex(s.Vertices[bIdx]).Position

		t, proj := topomesh.ProjectPointOnSegment(p, a, b)
		dist := proj.Sub(p).Norm()
		if dist < best.Distance {
			segStart := s.arcLen[i]
			var segEnd float64
			if i+1 < len(s.arcLen) {
				segEnd = s.arcLen[i+1]
			} else {
				segEnd = total
			}
			arc := segStart + t*(segEnd-segStart)
			param := 0.0
			if total > 0 {
				param = arc / total
			}
			best = Projection{Segment: s, Point: proj, T: param, Distance: dist}
			found = true
		}
	}
	return best, found
}
