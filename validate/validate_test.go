package validate

import (
	"testing"

	"github.com/nonmanifold/topomesh"
)

func TestValidateCleanMeshIsValid(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}
	indices := []int{0, 1, 2, 0, 2, 3}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	report := Validate(m)
	if !report.Valid() {
		t.Errorf("clean mesh should validate, got errors: %+v", report.Errors)
	}
}

func TestValidateFlagsDegenerateFaceAsWarningOnly(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 2, 0, 0, 0.5, 1, 0}
	indices := []int{0, 1, 2, 0, 1, 3}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	report := Validate(m)
	if !report.Valid() {
		t.Errorf("a degenerate-area face should only warn, not invalidate: %+v", report.Errors)
	}
	if len(report.Warnings) == 0 {
		t.Error("expected at least one warning for the collinear (zero-area) face")
	}
}

func TestValidateCatchesMismatchedEdgeKind(t *testing.T) {
	positions := []float64{0, 0, 0, 1, 0, 0, 0.5, 1, 0}
	indices := []int{0, 1, 2}
	m, err := topomesh.Import(positions, indices, nil)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	id := m.FindEdge(0, 1)
	m.Edge(id).Kind = topomesh.EdgeManifold // actually Boundary (1 face)

	report := Validate(m)
	if report.Valid() {
		t.Error("expected a mismatched edge kind to be flagged as an error")
	}
}

func TestReportAsErrorNilWhenValid(t *testing.T) {
	var r Report
	if err := r.AsError(); err != nil {
		t.Errorf("AsError on an empty report = %v, want nil", err)
	}
}
