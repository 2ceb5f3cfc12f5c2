package spatial

import (
	"testing"

	"github.com/nonmanifold/topomesh"
)

func TestHashGridQueryRadiusFindsNearbyPoints(t *testing.T) {
	g := NewHashGrid(1)
	g.Insert("a", topomesh.Vec3{X: 0, Y: 0, Z: 0})
	g.Insert("b", topomesh.Vec3{X: 0.5, Y: 0, Z: 0})
	g.Insert("far", topomesh.Vec3{X: 10, Y: 10, Z: 10})

	got := g.QueryRadius(topomesh.Vec3{}, 1)
	if len(got) != 2 {
		t.Fatalf("QueryRadius = %v, want 2 items", got)
	}
	seen := map[interface{}]bool{}
	for _, item := range got {
		seen[item] = true
	}
	if !seen["a"] || !seen["b"] {
		t.Errorf("QueryRadius missed an expected item: %v", got)
	}
}

func TestHashGridQueryRadiusRejectsNonPositiveRadius(t *testing.T) {
	g := NewHashGrid(1)
	g.Insert("a", topomesh.Vec3{})
	if got := g.QueryRadius(topomesh.Vec3{}, 0); got != nil {
		t.Errorf("QueryRadius with r=0 = %v, want nil", got)
	}
}

func TestHashGridRemoveDropsItem(t *testing.T) {
	g := NewHashGrid(1)
	g.Insert("a", topomesh.Vec3{})
	g.Remove("a")
	if got := g.QueryRadius(topomesh.Vec3{}, 1); len(got) != 0 {
		t.Errorf("QueryRadius after Remove = %v, want empty", got)
	}
}

func TestHashGridUpdateRelocatesItem(t *testing.T) {
	g := NewHashGrid(1)
	g.Insert("a", topomesh.Vec3{})
	g.Update("a", topomesh.Vec3{X: 50, Y: 50, Z: 50})

	if got := g.QueryRadius(topomesh.Vec3{}, 1); len(got) != 0 {
		t.Errorf("item should have moved away from its old cell, got %v", got)
	}
	if got := g.QueryRadius(topomesh.Vec3{X: 50, Y: 50, Z: 50}, 1); len(got) != 1 {
		t.Errorf("item should be found at its new cell, got %v", got)
	}
}

func TestHashGridQueryKNearestOrdersByDistance(t *testing.T) {
	g := NewHashGrid(1)
	g.Insert("near", topomesh.Vec3{X: 1, Y: 0, Z: 0})
	g.Insert("mid", topomesh.Vec3{X: 3, Y: 0, Z: 0})
	g.Insert("farthest", topomesh.Vec3{X: 6, Y: 0, Z: 0})

	got := g.QueryKNearest(topomesh.Vec3{}, 2, 0)
	if len(got) != 2 {
		t.Fatalf("QueryKNearest = %v, want 2 items", got)
	}
	if got[0] != "near" || got[1] != "mid" {
		t.Errorf("QueryKNearest order = %v, want [near mid]", got)
	}
}

func TestHashGridQueryKNearestHonorsMaxRadius(t *testing.T) {
	g := NewHashGrid(1)
	g.Insert("near", topomesh.Vec3{X: 1, Y: 0, Z: 0})
	g.Insert("far", topomesh.Vec3{X: 100, Y: 0, Z: 0})

	got := g.QueryKNearest(topomesh.Vec3{}, 5, 2)
	if len(got) != 1 || got[0] != "near" {
		t.Errorf("QueryKNearest with maxRadius=2 = %v, want [near]", got)
	}
}
