package topomesh

import (
	"math"
	"testing"
)

func TestTriangleQualityEquilateralIsOne(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 1, Y: 0, Z: 0}
	c := Vec3{X: 0.5, Y: math.Sqrt(3) / 2, Z: 0}
	q := TriangleQuality(a, b, c)
	if math.Abs(q-1) > 1e-9 {
		t.Errorf("equilateral triangle quality = %v, want 1", q)
	}
}

func TestTriangleQualityDegenerateIsZero(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 1, Y: 0, Z: 0}
	c := Vec3{X: 2, Y: 0, Z: 0}
	if q := TriangleQuality(a, b, c); q != 0 {
		t.Errorf("collinear triangle quality = %v, want 0", q)
	}
}

func TestOppositeAngleDelaunaySquare(t *testing.T) {
	// Square split along one diagonal: the two opposite corners subtend
	// pi/2 each, summing to exactly pi (Delaunay-neutral).
	p := Vec3{X: 1, Y: 0, Z: 0}
	q := Vec3{X: 0, Y: 0, Z: 0}
	r := Vec3{X: 1, Y: 1, Z: 0}
	angle := OppositeAngle(p, q, r)
	if math.Abs(angle-math.Pi/2) > 1e-9 {
		t.Errorf("opposite angle = %v, want pi/2", angle)
	}
}

func TestIsConvexQuadSquareSplitByDiagonal(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 1, Y: 1, Z: 0}
	c := Vec3{X: 1, Y: 0, Z: 0}
	d := Vec3{X: 0, Y: 1, Z: 0}
	if !IsConvexQuad(a, b, c, d) {
		t.Error("axis-aligned square quad should be convex")
	}
}

func TestIsConvexQuadRejectsDartShape(t *testing.T) {
	// c sits inside triangle a,b,d instead of opposite it: the quad is a
	// non-convex dart, so the diagonals cannot separate opposite corners.
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 2, Y: 0, Z: 0}
	d := Vec3{X: 1, Y: 2, Z: 0}
	c := Vec3{X: 1, Y: 0.2, Z: 0}
	if IsConvexQuad(a, b, c, d) {
		t.Error("dart-shaped quad should not be convex")
	}
}

func TestLerpMidpoint(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 2, Y: 4, Z: 6}
	mid := Lerp(a, b, 0.5)
	if mid.X != 1 || mid.Y != 2 || mid.Z != 3 {
		t.Errorf("Lerp midpoint = %v, want (1,2,3)", mid)
	}
}

func TestProjectPointOnSegmentClamps(t *testing.T) {
	a := Vec3{X: 0, Y: 0, Z: 0}
	b := Vec3{X: 10, Y: 0, Z: 0}
	tBefore, _ := ProjectPointOnSegment(Vec3{X: -5}, a, b)
	if tBefore != 0 {
		t.Errorf("t before segment start = %v, want 0", tBefore)
	}
	tAfter, _ := ProjectPointOnSegment(Vec3{X: 15}, a, b)
	if tAfter != 1 {
		t.Errorf("t after segment end = %v, want 1", tAfter)
	}
	tMid, proj := ProjectPointOnSegment(Vec3{X: 3, Y: 4}, a, b)
	if math.Abs(tMid-0.3) > 1e-9 {
		t.Errorf("t at x=3 = %v, want 0.3", tMid)
	}
	if proj.X != 3 || proj.Y != 0 {
		t.Errorf("projected point = %v, want (3,0,0)", proj)
	}
}
