package topomesh

import "github.com/golang/geo/r3"

// Vertex holds a position, one outgoing halfedge (or NoHalfedge if
// isolated), a classification tag and a user mark flag.
type Vertex struct {
	Position  r3.Vector
	Halfedge  HalfedgeID
	Kind      VertexKind
	Marked    bool
	removed   bool
}

// Removed reports whether this arena slot has been tombstoned.
func (v *Vertex) Removed() bool { return v.removed }

// IsIsolated reports whether the vertex has no outgoing halfedge.
func (v *Vertex) IsIsolated() bool { return v.Halfedge == NoHalfedge }
