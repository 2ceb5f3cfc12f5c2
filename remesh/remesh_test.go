package remesh

import (
	"math"
	"testing"

	"github.com/nonmanifold/topomesh"
	"github.com/nonmanifold/topomesh/validate"
)

// gridMesh builds an n x n grid of unit-spaced vertices on z=0, triangulated
// two triangles per cell, as a flat, uniformly-spaced mesh whose cell
// diagonals (length sqrt(2)) exceed the split threshold of a unit target
// edge length.
func gridMesh(t *testing.T, n int) *topomesh.Mesh {
	t.Helper()
	var positions []float64
	index := func(i, j int) int { return j*n + i }
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			positions = append(positions, float64(i), float64(j), 0)
		}
	}
	var indices []int
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			a, b, c, d := index(i, j), index(i+1, j), index(i+1, j+1), index(i, j+1)
			indices = append(indices, a, b, c, a, c, d)
		}
	}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	return m
}

func totalArea(m *topomesh.Mesh) float64 {
	total := 0.0
	m.EachFace(func(id topomesh.FaceID) {
		a, b, c := m.FacePositions(id)
		total += topomesh.TriangleArea(a, b, c)
	})
	return total
}

func TestRunPreservesAreaAndLeavesAValidMesh(t *testing.T) {
	m := gridMesh(t, 6)
	before := totalArea(m)

	Run(m, Options{TargetEdgeLength: 1.0, Iterations: 3})

	after := totalArea(m)
	deviation := math.Abs(after-before) / before
	if deviation > 0.01 {
		t.Errorf("area changed by %.4f%%, want <= 1%%", deviation*100)
	}

	report := validate.Validate(m)
	if !report.Valid() {
		t.Errorf("mesh invalid after remeshing: %+v", report.Errors)
	}
}

func TestRunConvergesOrHitsIterationCap(t *testing.T) {
	m := gridMesh(t, 4)
	stats := Run(m, Options{TargetEdgeLength: 1.0, Iterations: 5})
	if len(stats.Iterations) == 0 {
		t.Fatal("expected at least one iteration to run")
	}
	if len(stats.Iterations) > 5 {
		t.Errorf("ran %d iterations, want at most 5", len(stats.Iterations))
	}
}

func TestAutoTargetLengthUsesBoundingBoxAndVertexCount(t *testing.T) {
	m := gridMesh(t, 6)
	got := autoTargetLength(m)
	if got <= 0 {
		t.Errorf("auto target length = %v, want positive", got)
	}
}
