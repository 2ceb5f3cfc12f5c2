// Package meshio bridges topomesh to the host geometry container shape: a
// flat position buffer and a flat triangle-index buffer, plus optional
// visualization variants.
package meshio

import (
	"github.com/google/uuid"

	"github.com/nonmanifold/topomesh"
)

// Container is the host geometry shape: a flat position buffer (3 floats
// per vertex) and a flat triangle-index buffer (3 indices per triangle),
// matching the external vertex-buffer/index-buffer representation hosts
// typically pass across a language boundary.
type Container struct {
	Positions []float64
	Indices   []uint32
}

// ImportOptions carries the pieces of an import call that aren't part of
// the raw geometry itself.
type ImportOptions struct {
	// FeatureEdges names vertex pairs the host considers hard edges; their
	// edges are marked as features. Import does no angle-based feature
	// detection of its own, so these marks are the only feature edges.
	FeatureEdges []topomesh.VertexPair
	// InstanceID overrides the generated correlation id; the zero UUID
	// means "generate one".
	InstanceID uuid.UUID
}

// Import builds a Mesh from a Container and ImportOptions, stamping the
// result with a fresh instance id (or opts.InstanceID, if set) for log
// correlation.
func Import(c Container, opts ImportOptions) (*topomesh.Mesh, error) {
	indices := make([]int, len(c.Indices))
	for i, idx := range c.Indices {
		indices[i] = int(idx)
	}
	id := opts.InstanceID
	if id == uuid.Nil {
		id = NewInstanceID()
	}
	topomesh.Debugf("meshio import %s: %d positions, %d indices, %d feature edges", id, len(c.Positions), len(indices), len(opts.FeatureEdges))
	m, err := topomesh.Import(c.Positions, indices, opts.FeatureEdges)
	if err != nil {
		return nil, err
	}
	m.InstanceID = id
	return m, nil
}

// Export produces a Container from the live faces and vertices of m,
// renumbering vertices densely from 0; the round trip preserves adjacency
// up to that renumbering.
func Export(m *topomesh.Mesh) Container {
	remap, positions := renumberVertices(m)
	var indices []uint32
	m.EachFace(func(id topomesh.FaceID) {
		a, b, c := m.FaceVertices(id)
		indices = append(indices, uint32(remap[a]), uint32(remap[b]), uint32(remap[c]))
	})
	return Container{Positions: positions, Indices: indices}
}

// ExportWithNormals is Export plus a per-vertex averaged normal buffer (3
// floats per vertex, area-weighted over incident faces).
func ExportWithNormals(m *topomesh.Mesh) (Container, []float64) {
	remap, positions := renumberVertices(m)
	n := len(positions) / 3
	normals := make([]topomesh.Vec3, n)

	var indices []uint32
	m.EachFace(func(id topomesh.FaceID) {
		a, b, c := m.FaceVertices(id)
		pa, pb, pc := m.FacePositions(id)
		normal := topomesh.TriangleNormal(pa, pb, pc)
		for _, v := range []topomesh.VertexID{a, b, c} {
			normals[remap[v]] = normals[remap[v]].Add(normal)
		}
		indices = append(indices, uint32(remap[a]), uint32(remap[b]), uint32(remap[c]))
	})

	flat := make([]float64, 0, n*3)
	for _, nv := range normals {
		u := nv.Normalize()
		flat = append(flat, u.X, u.Y, u.Z)
	}
	return Container{Positions: positions, Indices: indices}, flat
}

// ExportClassificationColors returns a per-vertex RGB color buffer keyed
// by VertexKind, for debugging skeleton/classification visualizations.
func ExportClassificationColors(m *topomesh.Mesh) (Container, []float64) {
	remap, positions := renumberVertices(m)
	colors := make([]float64, len(positions))
	m.EachVertex(func(id topomesh.VertexID) {
		idx, ok := remap[id]
		if !ok {
			return
		}
		r, g, b := classificationColor(m.Vertex(id).Kind)
		colors[idx*3], colors[idx*3+1], colors[idx*3+2] = r, g, b
	})

	var indices []uint32
	m.EachFace(func(id topomesh.FaceID) {
		a, b, c := m.FaceVertices(id)
		indices = append(indices, uint32(remap[a]), uint32(remap[b]), uint32(remap[c]))
	})
	return Container{Positions: positions, Indices: indices}, colors
}

func classificationColor(k topomesh.VertexKind) (r, g, b float64) {
	switch k {
	case topomesh.VertexManifold:
		return 0.7, 0.7, 0.7
	case topomesh.VertexOpenBook:
		return 0.1, 0.6, 0.9
	case topomesh.VertexSkeletonBranching:
		return 0.9, 0.2, 0.1
	default:
		return 0.9, 0.8, 0.1
	}
}

// ExportQualityColors returns a per-face scalar buffer of triangle
// quality, duplicated per corner so it can ride along a flat-shaded
// vertex-color buffer.
func ExportQualityColors(m *topomesh.Mesh) (Container, []float64) {
	var positions []float64
	var indices []uint32
	var colors []float64
	next := uint32(0)
	m.EachFace(func(id topomesh.FaceID) {
		a, b, c := m.FacePositions(id)
		q := topomesh.TriangleQuality(a, b, c)
		for _, p := range []topomesh.Vec3{a, b, c} {
			positions = append(positions, p.X, p.Y, p.Z)
			colors = append(colors, q, q, q)
			indices = append(indices, next)
			next++
		}
	})
	return Container{Positions: positions, Indices: indices}, colors
}

func renumberVertices(m *topomesh.Mesh) (map[topomesh.VertexID]int, []float64) {
	remap := make(map[topomesh.VertexID]int)
	var positions []float64
	m.EachVertex(func(id topomesh.VertexID) {
		p := m.Vertex(id).Position
		remap[id] = len(positions) / 3
		positions = append(positions, p.X, p.Y, p.Z)
	})
	return remap, positions
}

// NewInstanceID returns a fresh correlation id, exposed for callers that
// want to stamp log lines before a mesh even exists (e.g. the line that
// reports an Import failure).
func NewInstanceID() uuid.UUID {
	return uuid.New()
}
