package world

import "testing"

func TestNewGridIsWalkable(t *testing.T) {
	g := NewGrid(4, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			if !g.IsWalkable(x, y) {
				t.Fatalf("cell (%d,%d) should be walkable", x, y)
			}
		}
	}
	if g.IsWalkable(-1, 0) || g.IsWalkable(4, 0) {
		t.Error("out-of-bounds cells must act as walls")
	}
	if got := g.At(10, 10).Texture; got != g.Boundary {
		t.Errorf("out-of-bounds texture = %d, want boundary %d", got, g.Boundary)
	}
}

func TestGridFloorAndCeilingDefaults(t *testing.T) {
	g := NewGrid(3, 3)
	g.DefaultFloor = 10
	g.DefaultCeiling = 11
	g.Set(1, 1, Cell{Texture: 12, Ceiling: 13, Walkable: true})
	g.SetWall(2, 2, 1)

	if got := g.FloorTexture(0, 0); got != 10 {
		t.Errorf("default floor = %d, want 10", got)
	}
	if got := g.CeilingTexture(0, 0); got != 11 {
		t.Errorf("default ceiling = %d, want 11", got)
	}
	if got := g.FloorTexture(1, 1); got != 12 {
		t.Errorf("cell floor = %d, want 12", got)
	}
	if got := g.CeilingTexture(1, 1); got != 13 {
		t.Errorf("cell ceiling = %d, want 13", got)
	}
	if got := g.FloorTexture(2, 2); got != 10 {
		t.Errorf("floor under a wall = %d, want the default", got)
	}
	if got := g.FloorTexture(-1, 0); got != TextureNone {
		t.Errorf("floor outside the grid = %d, want none", got)
	}
}

func TestClampPosition(t *testing.T) {
	g := NewGrid(10, 10)
	x, y, clamped := g.ClampPosition(5, 5)
	if clamped || x != 5 || y != 5 {
		t.Errorf("inside position changed: (%v,%v,%v)", x, y, clamped)
	}
	x, y, clamped = g.ClampPosition(-3, 14)
	if !clamped {
		t.Fatal("expected clamping")
	}
	if x != 0 || y >= 10 || y < 9.99 {
		t.Errorf("clamped to (%v,%v)", x, y)
	}
}

func TestGridValidate(t *testing.T) {
	known := func(id TextureID) bool { return id == 1 || id == 2 }

	g := NewGrid(3, 3)
	g.SetWall(0, 0, 1)
	if err := g.Validate(known); err != nil {
		t.Fatalf("valid grid rejected: %v", err)
	}

	g.SetWall(1, 0, 7)
	if err := g.Validate(known); err == nil {
		t.Error("expected an error for an unknown wall texture")
	}

	g.Set(1, 0, Cell{Texture: TextureEmpty})
	if err := g.Validate(known); err == nil {
		t.Error("expected an error for a wall without texture")
	}
}

func TestGridClone(t *testing.T) {
	g := NewGrid(2, 2)
	cp := g.Clone()
	cp.SetWall(0, 0, 1)
	if !g.IsWalkable(0, 0) {
		t.Error("editing the clone changed the original")
	}
}
