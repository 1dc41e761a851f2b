package collision

import (
	"testing"

	"raymode7/internal/world"
)

func roomGrid() *world.Grid {
	g := world.NewGrid(6, 6)
	for i := 0; i < 6; i++ {
		g.SetWall(i, 0, 1)
		g.SetWall(i, 5, 1)
		g.SetWall(0, i, 1)
		g.SetWall(5, i, 1)
	}
	return g
}

func TestCanMoveTo(t *testing.T) {
	cs := NewCollisionSystem(roomGrid(), 0.4)

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"centre", 3, 3, true},
		{"near wall", 1.25, 3, true},
		{"touching wall", 1.1, 3, false},
		{"inside wall", 0.5, 3, false},
		{"outside grid", -2, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cs.CanMoveTo(tt.x, tt.y); got != tt.want {
				t.Errorf("CanMoveTo(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestMoveSlidesAlongWalls(t *testing.T) {
	cs := NewCollisionSystem(roomGrid(), 0.4)

	// Moving diagonally into the west wall keeps the y component.
	x, y := cs.Move(1.5, 3, -0.5, 0.5)
	if x != 1.5 || y != 3.5 {
		t.Errorf("slide = (%v, %v), want (1.5, 3.5)", x, y)
	}

	// Straight into a corner does not move.
	x, y = cs.Move(1.3, 1.3, -0.5, -0.5)
	if x != 1.3 || y != 1.3 {
		t.Errorf("corner = (%v, %v), want no movement", x, y)
	}

	x, y = cs.Move(2, 2, 1, 1)
	if x != 3 || y != 3 {
		t.Errorf("free move = (%v, %v)", x, y)
	}
}

func TestSolidEntities(t *testing.T) {
	cs := NewCollisionSystem(roomGrid(), 0.4)
	cs.RegisterEntity(&Entity{ID: "pillar", BoundingBox: NewBoundingBox(3, 3, 0.5, 0.5), Solid: true})
	cs.RegisterEntity(&Entity{ID: "ghost", BoundingBox: NewBoundingBox(2, 2, 0.5, 0.5)})

	if cs.CanMoveTo(3.2, 3) {
		t.Error("walked into a solid entity")
	}
	if !cs.CanMoveTo(2, 2) {
		t.Error("non-solid entity blocked movement")
	}

	cs.UnregisterEntity("pillar")
	if !cs.CanMoveTo(3.2, 3) {
		t.Error("removed entity still blocks")
	}
}

func TestBoundingBox(t *testing.T) {
	a := NewBoundingBox(0, 0, 2, 2)
	b := NewBoundingBox(1.2, 0, 1, 1)
	if !a.Intersects(b) {
		t.Error("overlapping boxes should intersect")
	}
	// Touching edges do not count, so a body can slide flush along another.
	b.MoveTo(1.5, 0)
	if a.Intersects(b) || b.Intersects(a) {
		t.Error("touching boxes should not intersect")
	}
	b.MoveTo(0, 1.5)
	if a.Intersects(b) {
		t.Error("boxes touching on Y should not intersect")
	}
	b.MoveTo(3, 0)
	if a.Intersects(b) {
		t.Error("separated boxes should not intersect")
	}
	if a.Distance(b) != 3 {
		t.Errorf("distance = %v", a.Distance(b))
	}
	minX, minY, maxX, maxY := a.GetBounds()
	if minX != -1 || minY != -1 || maxX != 1 || maxY != 1 {
		t.Errorf("bounds = %v %v %v %v", minX, minY, maxX, maxY)
	}
}
