package spatial

import (
	"math"
	"sort"

	"github.com/nonmanifold/topomesh"
)

// cellKey identifies one cube of the uniform grid.
type cellKey struct{ x, y, z int64 }

// HashGrid is a uniform-cell point index. Item identity is by reference
// equality of the interface{} handed to Insert; there is no comparable
// ecosystem cell-hash library, so this is hand-rolled (see DESIGN.md).
type HashGrid struct {
	cellSize float64
	cells    map[cellKey][]entry
	index    map[interface{}]cellKey // current cell per item, for remove/update
}

type entry struct {
	item interface{}
	pos  topomesh.Vec3
}

// NewHashGrid builds an empty grid with the given (positive) cell size.
func NewHashGrid(cellSize float64) *HashGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &HashGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]entry),
		index:    make(map[interface{}]cellKey),
	}
}

func (g *HashGrid) keyFor(p topomesh.Vec3) cellKey {
	return cellKey{
		x: int64(math.Floor(p.X / g.cellSize)),
		y: int64(math.Floor(p.Y / g.cellSize)),
		z: int64(math.Floor(p.Z / g.cellSize)),
	}
}

// Insert adds item at pos.
func (g *HashGrid) Insert(item interface{}, pos topomesh.Vec3) {
	key := g.keyFor(pos)
	g.cells[key] = append(g.cells[key], entry{item, pos})
	g.index[item] = key
}

// Remove deletes item from the grid. No-op if item was never inserted.
func (g *HashGrid) Remove(item interface{}) {
	key, ok := g.index[item]
	if !ok {
		return
	}
	bucket := g.cells[key]
	for i, e := range bucket {
		if e.item == item {
			g.cells[key] = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	delete(g.index, item)
}

// Update moves item to a new position, relocating it between cells if
// needed.
func (g *HashGrid) Update(item interface{}, pos topomesh.Vec3) {
	g.Remove(item)
	g.Insert(item, pos)
}

// QueryRadius returns every item within r of center, scanning the cube of
// cells that could contain such a point.
func (g *HashGrid) QueryRadius(center topomesh.Vec3, r float64) []interface{} {
	if r <= 0 {
		return nil
	}
	reach := int64(math.Ceil(r / g.cellSize))
	origin := g.keyFor(center)
	var out []interface{}
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for dz := -reach; dz <= reach; dz++ {
				key := cellKey{origin.x + dx, origin.y + dy, origin.z + dz}
				for _, e := range g.cells[key] {
					if e.pos.Sub(center).Norm() <= r {
						out = append(out, e.item)
					}
				}
			}
		}
	}
	return out
}

// QueryKNearest returns up to k items nearest to center, optionally capped
// to maxRadius (0 means unbounded), sorted by distance ascending. Expands
// the search ring outward until k candidates are found or the grid is
// exhausted.
func (g *HashGrid) QueryKNearest(center topomesh.Vec3, k int, maxRadius float64) []interface{} {
	if k <= 0 {
		return nil
	}
	type scored struct {
		item interface{}
		dist float64
	}
	var candidates []scored
	reach := int64(1)
	origin := g.keyFor(center)

	for {
		candidates = candidates[:0]
		for dx := -reach; dx <= reach; dx++ {
			for dy := -reach; dy <= reach; dy++ {
				for dz := -reach; dz <= reach; dz++ {
					key := cellKey{origin.x + dx, origin.y + dy, origin.z + dz}
					for _, e := range g.cells[key] {
						d := e.pos.Sub(center).Norm()
						if maxRadius > 0 && d > maxRadius {
							continue
						}
						candidates = append(candidates, scored{e.item, d})
					}
				}
			}
		}
		searchedEverything := reach >= g.gridSpan(origin)
		if len(candidates) >= k || searchedEverything {
			break
		}
		reach *= 2
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].dist < candidates[j].dist })
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	out := make([]interface{}, len(candidates))
	for i, c := range candidates {
		out[i] = c.item
	}
	return out
}

// gridSpan is how many cells out from origin a search must reach to cover
// every occupied cell (the largest per-axis cell offset), used only to
// terminate QueryKNearest's ring expansion.
func (g *HashGrid) gridSpan(origin cellKey) int64 {
	var span int64
	for key := range g.cells {
		for _, d := range []int64{key.x - origin.x, key.y - origin.y, key.z - origin.z} {
			if d < 0 {
				d = -d
			}
			if d > span {
				span = d
			}
		}
	}
	return span
}
