// Package remesh drives the adaptive split/collapse/flip/smooth loop that
// pushes a mesh toward a target edge length while preserving feature
// geometry.
package remesh

import (
	"math"

	"github.com/nonmanifold/topomesh"
	"github.com/nonmanifold/topomesh/ops"
	"github.com/nonmanifold/topomesh/skeleton"
)

// Options configures one run of the adaptive loop. A zero Options uses the
// auto target edge length and the numeric defaults noted below;
// PreserveFeatures is left as given, so a zero Options has it false.
type Options struct {
	TargetEdgeLength float64 // 0 means auto: bbox-diagonal / sqrt(|V|)
	MinLengthRatio   float64 // below target*ratio, collapse triggers; default 0.4
	MaxLengthRatio   float64 // above target*ratio, split triggers; default 1.333
	MinTriQuality    float64 // default 0.3; not read by Run and not reported in Stats
	Iterations       int     // default 5
	SmoothingDamping float64 // default 0.5
	PreserveFeatures bool    // true keeps skeleton edges out of collapse; withDefaults does not set it
}

func (o Options) withDefaults(m *topomesh.Mesh) Options {
	if o.TargetEdgeLength <= 0 {
		o.TargetEdgeLength = autoTargetLength(m)
	}
	if o.MinLengthRatio <= 0 {
		o.MinLengthRatio = 0.4
	}
	if o.MaxLengthRatio <= 0 {
		o.MaxLengthRatio = 1.333
	}
	if o.MinTriQuality <= 0 {
		o.MinTriQuality = 0.3
	}
	if o.Iterations <= 0 {
		o.Iterations = 5
	}
	if o.SmoothingDamping <= 0 {
		o.SmoothingDamping = 0.5
	}
	return o
}

func autoTargetLength(m *topomesh.Mesh) float64 {
	n := m.VertexCount()
	if n == 0 {
		return 1
	}
	min, max := m.BoundingBox()
	diag := max.Sub(min).Norm()
	if diag <= 0 {
		return 1
	}
	return diag / math.Sqrt(float64(n))
}

// IterationStats reports what happened in a single pass of the loop.
type IterationStats struct {
	Splits        int
	Collapses     int
	Flips         int
	Smoothed      int
	AvgQuality    float64
	QualityChange float64
}

// Stats aggregates every iteration run, plus whether the loop converged
// before hitting the iteration cap.
type Stats struct {
	Iterations []IterationStats
	Converged  bool
}

// Run executes the adaptive remeshing loop to convergence or the iteration
// cap, whichever comes first.
func Run(m *topomesh.Mesh, opt Options) Stats {
	opt = opt.withDefaults(m)
	var stats Stats
	prevQuality := averageQuality(m)

	for i := 0; i < opt.Iterations; i++ {
		iter := iterate(m, opt)
		iter.AvgQuality = averageQuality(m)
		iter.QualityChange = math.Abs(iter.AvgQuality - prevQuality)
		stats.Iterations = append(stats.Iterations, iter)

		if iter.QualityChange < 0.001 {
			stats.Converged = true
			break
		}
		prevQuality = iter.AvgQuality
	}
	return stats
}

// iterate runs one pass: split long edges, collapse short ones, a Delaunay
// flip pass, then a smoothing pass, then reclassification.
func iterate(m *topomesh.Mesh, opt Options) IterationStats {
	var iter IterationStats
	longThreshold := opt.TargetEdgeLength * opt.MaxLengthRatio
	shortThreshold := opt.TargetEdgeLength * opt.MinLengthRatio

	topologyChanged := false
	sk := skeleton.Extract(m)

	for _, id := range longEdges(m, longThreshold) {
		if m.Edge(id).Removed() {
			continue
		}
		if _, outcome := ops.SplitPreservingSkeleton(m, sk, id, 0.5); outcome.Success {
			iter.Splits++
			topologyChanged = true
		}
	}

	for _, id := range shortEdges(m, shortThreshold, opt.PreserveFeatures) {
		if m.Edge(id).Removed() {
			continue
		}
		if ops.Collapse(m, id).Success {
			iter.Collapses++
			topologyChanged = true
		}
	}

	iter.Flips = ops.DelaunayPass(m)
	if iter.Flips > 0 {
		topologyChanged = true
	}

	// Reclassify before smoothing if topology moved since sk was extracted,
	// so open-book vertices are constrained against a segment set that
	// matches the mesh's current skeleton edges.
	if topologyChanged {
		topomesh.ClassifyVertices(m)
		sk = skeleton.Extract(m)
	}

	m.EachVertex(func(v topomesh.VertexID) {
		kind := m.Vertex(v).Kind
		if kind == topomesh.VertexManifold || kind == topomesh.VertexOpenBook {
			if ops.Smooth(m, sk, v, opt.SmoothingDamping).Success {
				iter.Smoothed++
			}
		}
	})

	topomesh.ClassifyVertices(m)

	return iter
}

// longEdges includes skeleton edges: splitting preserves classification
// and (via SplitPreservingSkeleton) the segment geometry, so densifying a
// feature edge is safe even with features preserved.
func longEdges(m *topomesh.Mesh, threshold float64) []topomesh.EdgeID {
	var out []topomesh.EdgeID
	m.EachEdge(func(id topomesh.EdgeID) {
		if m.Edge(id).Length > threshold {
			out = append(out, id)
		}
	})
	return out
}

func shortEdges(m *topomesh.Mesh, threshold float64, preserveFeatures bool) []topomesh.EdgeID {
	var out []topomesh.EdgeID
	m.EachEdge(func(id topomesh.EdgeID) {
		e := m.Edge(id)
		if preserveFeatures && e.Kind.IsSkeleton() {
			return
		}
		if e.Length < threshold && e.Length > 0 {
			out = append(out, id)
		}
	})
	return out
}

func averageQuality(m *topomesh.Mesh) float64 {
	total := 0.0
	count := 0
	m.EachFace(func(id topomesh.FaceID) {
		a, b, c := m.FacePositions(id)
		total += topomesh.TriangleQuality(a, b, c)
		count++
	})
	if count == 0 {
		return 0
	}
	return total / float64(count)
}
