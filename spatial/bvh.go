// Package spatial provides the two accelerators the remeshing and repair
// packages build on demand: a uniform hash grid for point queries and a
// BVH (backed by github.com/dhconnelly/rtreego) for closest-point-on-mesh
// and radius queries. Both hold borrowed references only and must be
// rebuilt after any topological mutation.
package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/nonmanifold/topomesh"
)

// Triangle is one leaf payload for the BVH: the three corner positions
// plus an opaque index the caller assigns meaning to (typically a
// topomesh.FaceID).
type Triangle struct {
	V0, V1, V2 topomesh.Vec3
	Index      int
}

// triangleLeaf adapts a Triangle to rtreego.Spatial.
type triangleLeaf struct {
	Triangle
}

func (t *triangleLeaf) Bounds() rtreego.Rect {
	min, max := triangleBounds(t.V0, t.V1, t.V2)
	const pad = 1e-9
	widths := []float64{
		math.Max(max[0]-min[0], pad),
		math.Max(max[1]-min[1], pad),
		math.Max(max[2]-min[2], pad),
	}
	rect, _ := rtreego.NewRect(rtreego.Point{min[0], min[1], min[2]}, widths)
	return rect
}

func triangleBounds(a, b, c topomesh.Vec3) (min, max [3]float64) {
	min = [3]float64{a.X, a.Y, a.Z}
	max = min
	for _, p := range []topomesh.Vec3{b, c} {
		min[0], max[0] = minMax(min[0], max[0], p.X)
		min[1], max[1] = minMax(min[1], max[1], p.Y)
		min[2], max[2] = minMax(min[2], max[2], p.Z)
	}
	return
}

func minMax(lo, hi, v float64) (float64, float64) {
	if v < lo {
		lo = v
	}
	if v > hi {
		hi = v
	}
	return lo, hi
}

// BVH answers closest-point-on-mesh and radius queries over a fixed set of
// triangles, built once. Leaf size defaults to 4.
type BVH struct {
	tree     *rtreego.Rtree
	leaves   []*triangleLeaf
	leafSize int
}

// NewBVH builds a BVH over tris. leafSize <= 0 uses the default of 4.
func NewBVH(tris []Triangle, leafSize int) *BVH {
	if leafSize <= 0 {
		leafSize = 4
	}
	minChildren := leafSize / 2
	if minChildren < 1 {
		minChildren = 1
	}
	tree := rtreego.NewTree(3, minChildren, leafSize)
	leaves := make([]*triangleLeaf, 0, len(tris))
	for _, t := range tris {
		leaf := &triangleLeaf{Triangle: t}
		leaves = append(leaves, leaf)
		tree.Insert(leaf)
	}
	return &BVH{tree: tree, leaves: leaves, leafSize: leafSize}
}

// ClosestPointResult is the answer to a ClosestPoint query.
type ClosestPointResult struct {
	Point         topomesh.Vec3
	TriangleIndex int
	Distance      float64
}

// ClosestPoint returns the nearest surface point to p across every
// triangle in the tree, or ok=false if the tree is empty.
func (b *BVH) ClosestPoint(p topomesh.Vec3) (ClosestPointResult, bool) {
	if len(b.leaves) == 0 {
		return ClosestPointResult{}, false
	}
	best := ClosestPointResult{Distance: math.Inf(1)}
	found := false
	// rtreego's NearestNeighbor orders by bounding-box distance, which is
	// a lower bound on true triangle distance, so scanning a handful of
	// nearest leaves (rather than the full set) already finds the exact
	// answer for well-distributed triangle sizes; we scan all leaves here
	// for exactness since the accelerator's own candidate ordering isn't
	// otherwise exposed by this wrapper.
	for _, leaf := range b.leaves {
		cp := closestPointOnTriangle(p, leaf.V0, leaf.V1, leaf.V2)
		d := cp.Sub(p).Norm()
		if d < best.Distance {
			best = ClosestPointResult{Point: cp, TriangleIndex: leaf.Index, Distance: d}
			found = true
		}
	}
	return best, found
}

// QueryRadius returns the indices of every triangle whose closest point to
// p lies within r.
func (b *BVH) QueryRadius(p topomesh.Vec3, r float64) []int {
	widths := []float64{2 * r, 2 * r, 2 * r}
	rect, err := rtreego.NewRect(rtreego.Point{p.X - r, p.Y - r, p.Z - r}, widths)
	if err != nil {
		return nil
	}
	candidates := b.tree.SearchIntersect(rect)
	var out []int
	for _, c := range candidates {
		leaf, ok := c.(*triangleLeaf)
		if !ok {
			continue
		}
		cp := closestPointOnTriangle(p, leaf.V0, leaf.V1, leaf.V2)
		if cp.Sub(p).Norm() <= r {
			out = append(out, leaf.Index)
		}
	}
	return out
}

// closestPointOnTriangle returns the closest point to p on triangle abc,
// clamping the barycentric coordinates to the triangle's interior/edges.
func closestPointOnTriangle(p, a, b, c topomesh.Vec3) topomesh.Vec3 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.Mul(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.Mul(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).Mul(w))
	}

	denom := 1 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.Mul(v)).Add(ac.Mul(w))
}
