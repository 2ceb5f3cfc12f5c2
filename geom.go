package topomesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/golang/geo/r3"
)

// Vec3 aliases the geo library's vector type, matching the "Vec3" naming
// convention used throughout this corpus for 3D points/directions.
type Vec3 = r3.Vector

const epsArea = 1e-10

// TriangleNormal returns the (unnormalized) cross-product normal of the
// triangle a,b,c. Its length is twice the triangle's area.
func TriangleNormal(a, b, c r3.Vector) r3.Vector {
	return b.Sub(a).Cross(c.Sub(a))
}

// TriangleArea returns the area of triangle a,b,c.
func TriangleArea(a, b, c r3.Vector) float64 {
	return 0.5 * TriangleNormal(a, b, c).Norm()
}

// UnitNormal returns the normalized face normal, or the zero vector if the
// triangle is degenerate.
func UnitNormal(a, b, c r3.Vector) r3.Vector {
	n := TriangleNormal(a, b, c)
	length := n.Norm()
	if length < epsArea {
		return r3.Vector{}
	}
	return n.Mul(1 / length)
}

// edgeLengths returns the three side lengths opposite a, b, c respectively:
// lenA = |b-c|, lenB = |a-c|, lenC = |a-b|.
func edgeLengths(a, b, c r3.Vector) (lenA, lenB, lenC float64) {
	return b.Sub(c).Norm(), a.Sub(c).Norm(), a.Sub(b).Norm()
}

// Circumradius returns the radius of the circle through a, b, c.
func Circumradius(a, b, c r3.Vector) float64 {
	la, lb, lc := edgeLengths(a, b, c)
	area := TriangleArea(a, b, c)
	if area < epsArea {
		return 0
	}
	return (la * lb * lc) / (4 * area)
}

// Inradius returns the radius of the circle inscribed in a, b, c.
func Inradius(a, b, c r3.Vector) float64 {
	la, lb, lc := edgeLengths(a, b, c)
	area := TriangleArea(a, b, c)
	semiPerimeter := (la + lb + lc) / 2
	if semiPerimeter < epsArea {
		return 0
	}
	return area / semiPerimeter
}

// TriangleQuality is 2*inradius/circumradius, clamped to [0,1]: 1 for
// equilateral, 0 for degenerate.
func TriangleQuality(a, b, c r3.Vector) float64 {
	circ := Circumradius(a, b, c)
	if circ < epsArea {
		return 0
	}
	q := 2 * Inradius(a, b, c) / circ
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// Cotangent returns cot(angle at b) in the triangle a,b,c — i.e. the
// cotangent of the angle opposite side a-c.
func Cotangent(a, b, c r3.Vector) float64 {
	u := a.Sub(b)
	v := c.Sub(b)
	cross := u.Cross(v).Norm()
	if cross < epsArea {
		return 0
	}
	return u.Dot(v) / cross
}

// OppositeAngle returns the interior angle at vertex p of triangle (p, q, r),
// i.e. the angle subtended by edge q-r as seen from p. An edge is Delaunay
// iff the sum of the two opposite angles across it is <= pi.
func OppositeAngle(p, q, r r3.Vector) float64 {
	u := q.Sub(p)
	v := r.Sub(p)
	denom := u.Norm() * v.Norm()
	if denom < epsArea {
		return 0
	}
	cos := u.Dot(v) / denom
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// PointInTriangle reports whether p lies within (or on the boundary of)
// triangle a,b,c, assuming p is already coplanar with the triangle.
func PointInTriangle(p, a, b, c r3.Vector) bool {
	n := TriangleNormal(a, b, c)
	if n.Norm() < epsArea {
		return false
	}
	// Same-side test using the triangle's own normal as the reference axis.
	side := func(u, v, w r3.Vector) float64 {
		return TriangleNormal(u, v, w).Dot(n)
	}
	d1 := side(a, b, p)
	d2 := side(b, c, p)
	d3 := side(c, a, p)
	hasNeg := d1 < -epsArea || d2 < -epsArea || d3 < -epsArea
	hasPos := d1 > epsArea || d2 > epsArea || d3 > epsArea
	return !(hasNeg && hasPos)
}

// tangentBasis builds an orthonormal (u, v) basis spanning the plane
// perpendicular to normal n, for projecting 3D points to 2D.
func tangentBasis(n r3.Vector) (u, v r3.Vector) {
	ref := r3.Vector{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = r3.Vector{Y: 1}
	}
	u = n.Cross(ref)
	if u.Norm() < epsArea {
		ref = r3.Vector{Z: 1}
		u = n.Cross(ref)
	}
	u = u.Normalize()
	v = n.Cross(u).Normalize()
	return u, v
}

func project2D(p, origin, u, v r3.Vector) mgl32.Vec2 {
	rel := p.Sub(origin)
	return mgl32.Vec2{float32(rel.Dot(u)), float32(rel.Dot(v))}
}

// cross2 is the 2D cross product (z component) of (b-a) and (c-a).
func cross2(a, b, c mgl32.Vec2) float32 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return ab.X()*ac.Y() - ab.Y()*ac.X()
}

// IsConvexQuad reports whether quadrilateral a,c,b,d (vertices in that
// cyclic order, as produced by the two triangles sharing edge a-b with
// opposite tips c and d) is convex when projected onto the tangent plane of
// the average of the two triangles' normals. Convexity here means: the
// diagonals a-b and c-d cross, i.e. c and d fall on opposite sides of a-b,
// and a and b fall on opposite sides of c-d.
func IsConvexQuad(a, b, c, d r3.Vector) bool {
	n1 := TriangleNormal(a, b, c)
	n2 := TriangleNormal(b, a, d)
	avg := n1.Add(n2)
	if avg.Norm() < epsArea {
		return false
	}
	normal := avg.Normalize()
	u, v := tangentBasis(normal)
	origin := a
	pa := project2D(a, origin, u, v)
	pb := project2D(b, origin, u, v)
	pc := project2D(c, origin, u, v)
	pd := project2D(d, origin, u, v)

	sideCD1 := cross2(pc, pd, pa)
	sideCD2 := cross2(pc, pd, pb)
	sideAB1 := cross2(pa, pb, pc)
	sideAB2 := cross2(pa, pb, pd)

	const eps = 1e-7
	if sideCD1*sideCD2 >= -eps*eps {
		return false
	}
	if sideAB1*sideAB2 >= -eps*eps {
		return false
	}
	return true
}

// ProjectPointOnSegment projects p onto the segment a-b, returning the
// clamped parameter t in [0,1] and the projected point.
func ProjectPointOnSegment(p, a, b r3.Vector) (t float64, proj r3.Vector) {
	ab := b.Sub(a)
	length2 := ab.Dot(ab)
	if length2 < epsArea {
		return 0, a
	}
	t = p.Sub(a).Dot(ab) / length2
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t, a.Add(ab.Mul(t))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b r3.Vector, t float64) r3.Vector {
	return a.Add(b.Sub(a).Mul(t))
}
