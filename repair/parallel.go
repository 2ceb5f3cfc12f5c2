package repair

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/nonmanifold/topomesh"
)

// DefectCounts is the result of scanning a mesh for every defect kind the
// fixed-order pipeline handles, gathered concurrently.
type DefectCounts struct {
	IsolatedVertices int
	DegenerateFaces  int
	DuplicateFaces   int
	NonManifoldEdges int
}

// ScanDefects runs the read-only detect() phase of each operation
// concurrently via errgroup, since scanning distinct arenas (or the same
// arena read-only) is data-independent — unlike the repair phase, which
// mutates shared arenas and stays sequential. Returns the first detect error, though none of the current
// detectors can fail; the error return exists because errgroup requires
// it and a future detector (e.g. one backed by a spatial accelerator
// query) might.
func ScanDefects(m *topomesh.Mesh, degenerateEps float64) (DefectCounts, error) {
	var counts DefectCounts
	g, _ := errgroup.WithContext(context.Background())

	g.Go(func() error {
		counts.IsolatedVertices = IsolatedVertexOp{}.Detect(m)
		return nil
	})
	g.Go(func() error {
		counts.DegenerateFaces = DegenerateFaceOp{AreaEps: degenerateEps}.Detect(m)
		return nil
	})
	g.Go(func() error {
		counts.DuplicateFaces = DuplicateFaceOp{}.Detect(m)
		return nil
	})
	g.Go(func() error {
		counts.NonManifoldEdges = NonManifoldEdgeOp{}.Detect(m)
		return nil
	})

	if err := g.Wait(); err != nil {
		return DefectCounts{}, err
	}
	return counts, nil
}
