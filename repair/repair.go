// Package repair composes cheap variants of the local operators into
// repair operations for isolated vertices, degenerate and duplicate faces,
// non-manifold edges, holes, and inconsistent face orientations. The
// fixed-order RepairAll pipeline runs all of them except the non-manifold
// edge operation.
package repair

import (
	"time"

	"github.com/nonmanifold/topomesh"
	"github.com/nonmanifold/topomesh/validate"
)

// Operation is the common surface every repair step implements: a
// read-only defect count, a mutating fix count, and a name for reporting.
type Operation interface {
	Name() string
	Detect(m *topomesh.Mesh) int
	Repair(m *topomesh.Mesh) int
}

// Stats is the result of running one Operation to completion.
type Stats struct {
	Operation string
	Found     int
	Fixed     int
	Elapsed   time.Duration
	Success   bool
	Reason    string
}

// Execute runs one operation end to end: detect, repair, and report.
func Execute(m *topomesh.Mesh, op Operation) Stats {
	start := time.Now()
	found := op.Detect(m)
	fixed := op.Repair(m)
	topomesh.Debugf("repair op %s: found=%d fixed=%d", op.Name(), found, fixed)
	return Stats{
		Operation: op.Name(),
		Found:     found,
		Fixed:     fixed,
		Elapsed:   time.Since(start),
		Success:   true,
	}
}

// Options configures RepairAll.
type Options struct {
	NonManifoldStrategy NonManifoldStrategy // default StrategyAuto; not read by RepairAll
	MaxHoleSize         int                 // default 100
	DegenerateAreaEps   float64             // default 1e-10
	ValidateEachStep    bool                // default false
}

func (o Options) withDefaults() Options {
	if o.MaxHoleSize <= 0 {
		o.MaxHoleSize = 100
	}
	if o.DegenerateAreaEps <= 0 {
		o.DegenerateAreaEps = 1e-10
	}
	return o
}

// RepairAll runs every operation in a fixed order:
// isolated -> duplicate -> degenerate -> holes -> normals.
// A validation failure after a step downgrades that step's Success flag
// but never aborts the remaining steps.
func RepairAll(m *topomesh.Mesh, opt Options) []Stats {
	opt = opt.withDefaults()
	ops := []Operation{
		IsolatedVertexOp{},
		DuplicateFaceOp{},
		DegenerateFaceOp{AreaEps: opt.DegenerateAreaEps},
		HoleFillerOp{MaxHoleSize: opt.MaxHoleSize},
		NormalUnifierOp{},
	}

	var all []Stats
	for _, op := range ops {
		stats := Execute(m, op)
		if opt.ValidateEachStep {
			report := validate.Validate(m)
			if !report.Valid() {
				stats.Success = false
				stats.Reason = report.Errors[0].Error()
			}
		}
		all = append(all, stats)
	}
	return all
}
