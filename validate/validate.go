// Package validate traverses a mesh's arenas and reports structured
// invariant violations, scoped to the element that failed.
package validate

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"github.com/nonmanifold/topomesh"
)

// Severity distinguishes invariant violations (the mesh is invalid) from
// advisories that don't block use: degenerate faces raise warnings only.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Issue is one validator finding, scoped to the element that triggered it.
type Issue struct {
	Severity Severity
	Element  string // e.g. "vertex", "edge", "halfedge", "face"
	ID       int32
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s %d: %s", i.Element, i.ID, i.Message)
}

// Report is the aggregated result of validating a mesh.
type Report struct {
	Errors   []Issue
	Warnings []Issue
}

// Valid reports whether the mesh has no Errors (warnings don't invalidate
// it).
func (r Report) Valid() bool { return len(r.Errors) == 0 }

// AsError returns a wrapped error summarizing the report when it isn't
// valid, or nil otherwise — for callers at a Go-error boundary (the
// `ValidationFailed` outcome kind).
func (r Report) AsError() error {
	if r.Valid() {
		return nil
	}
	return errors.Wrapf(r.Errors[0], "validation failed with %d error(s)", len(r.Errors))
}

// Validate walks every arena and checks its core topological invariants.
func Validate(m *topomesh.Mesh) Report {
	var r Report

	m.EachVertex(func(id topomesh.VertexID) {
		v := m.Vertex(id)
		p := v.Position
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsNaN(p.Z) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) || math.IsInf(p.Z, 0) {
			r.Errors = append(r.Errors, Issue{SeverityError, "vertex", int32(id), "position is not finite"})
		}
		if v.Halfedge != topomesh.NoHalfedge {
			if m.Source(v.Halfedge) != id {
				r.Errors = append(r.Errors, Issue{SeverityError, "vertex", int32(id), "vertex.halfedge's source is not this vertex"})
			}
		}
	})

	m.EachEdge(func(id topomesh.EdgeID) {
		e := m.Edge(id)
		if len(e.Halfedges) == 0 {
			r.Errors = append(r.Errors, Issue{SeverityError, "edge", int32(id), "edge has no halfedges"})
			return
		}
		if math.IsNaN(e.Length) || math.IsInf(e.Length, 0) || e.Length < 0 {
			r.Errors = append(r.Errors, Issue{SeverityError, "edge", int32(id), "length is not finite/non-negative"})
		}
		repFound := false
		for _, h := range e.Halfedges {
			if h == e.Rep {
				repFound = true
			}
			if m.Halfedge(h).Edge != id {
				r.Errors = append(r.Errors, Issue{SeverityError, "edge", int32(id), fmt.Sprintf("halfedge %d does not point back to this edge", h)})
			}
		}
		if !repFound {
			r.Errors = append(r.Errors, Issue{SeverityError, "edge", int32(id), "representative halfedge is not in its own halfedge list"})
		}
		expected := expectedKind(m, id)
		if e.Kind != expected {
			r.Errors = append(r.Errors, Issue{SeverityError, "edge", int32(id), fmt.Sprintf("kind %s does not match incident-face-count rule (expected %s)", e.Kind, expected)})
		}
	})

	m.EachFace(func(id topomesh.FaceID) {
		h0, h1, h2 := m.FaceHalfedges(id)
		loop := []topomesh.HalfedgeID{h0, h1, h2}
		if m.Halfedge(h2).Next != h0 {
			r.Errors = append(r.Errors, Issue{SeverityError, "face", int32(id), "three-step next cycle does not close"})
		}
		for _, h := range loop {
			if m.Halfedge(h).Face != id {
				r.Errors = append(r.Errors, Issue{SeverityError, "face", int32(id), fmt.Sprintf("halfedge %d does not reference this face", h)})
			}
		}
		a, b, c := m.FacePositions(id)
		if topomesh.TriangleArea(a, b, c) < 1e-10 {
			r.Warnings = append(r.Warnings, Issue{SeverityWarning, "face", int32(id), "degenerate (near-zero area) triangle"})
		}
	})

	m.EachEdge(func(id topomesh.EdgeID) {
		for _, h := range m.Edge(id).Halfedges {
			validateHalfedge(m, h, &r)
		}
	})

	return r
}

func validateHalfedge(m *topomesh.Mesh, h topomesh.HalfedgeID, r *Report) {
	he := m.Halfedge(h)
	next := m.Halfedge(he.Next)
	prev := m.Halfedge(he.Prev)
	if next.Prev != h {
		r.Errors = append(r.Errors, Issue{SeverityError, "halfedge", int32(h), "next.prev does not point back to this halfedge"})
	}
	if prev.Next != h {
		r.Errors = append(r.Errors, Issue{SeverityError, "halfedge", int32(h), "prev.next does not point back to this halfedge"})
	}
	if he.Twin != topomesh.NoHalfedge {
		if m.Halfedge(he.Twin).Twin != h {
			r.Errors = append(r.Errors, Issue{SeverityError, "halfedge", int32(h), "twin.twin does not point back to this halfedge"})
		}
	}
	if !he.Target.Valid() {
		r.Errors = append(r.Errors, Issue{SeverityError, "halfedge", int32(h), "target vertex reference is invalid"})
	}
	if !he.Edge.Valid() {
		r.Errors = append(r.Errors, Issue{SeverityError, "halfedge", int32(h), "edge reference is invalid"})
	}
}

func expectedKind(m *topomesh.Mesh, id topomesh.EdgeID) topomesh.EdgeKind {
	count := m.EdgeFaceCount(id)
	switch {
	case count > 2:
		return topomesh.EdgeNonManifold
	case count == 1:
		return topomesh.EdgeBoundary
	default:
		if m.Edge(id).Feature {
			return topomesh.EdgeFeature
		}
		return topomesh.EdgeManifold
	}
}
