package collision

import (
	"math"
)

// TileChecker reports which grid cells block movement.
type TileChecker interface {
	IsWalkable(x, y int) bool
}

// Entity is a solid obstacle that is not part of the grid, such as a sprite
// the camera should not walk through.
type Entity struct {
	ID          string
	BoundingBox *BoundingBox
	Solid       bool
}

// CollisionSystem keeps the camera inside walkable cells and out of solid
// entities.
type CollisionSystem struct {
	tileChecker TileChecker
	entities    map[string]*Entity
	size        float64
}

// NewCollisionSystem creates a collision system for a body of the given
// size in grid units.
func NewCollisionSystem(tileChecker TileChecker, size float64) *CollisionSystem {
	return &CollisionSystem{
		tileChecker: tileChecker,
		entities:    make(map[string]*Entity),
		size:        size,
	}
}

// RegisterEntity adds an entity to the collision system
func (cs *CollisionSystem) RegisterEntity(entity *Entity) {
	cs.entities[entity.ID] = entity
}

// UnregisterEntity removes an entity from the collision system
func (cs *CollisionSystem) UnregisterEntity(id string) {
	delete(cs.entities, id)
}

// UpdateTileChecker updates the tile checker (used when switching maps)
func (cs *CollisionSystem) UpdateTileChecker(tileChecker TileChecker) {
	cs.tileChecker = tileChecker
}

// CanMoveTo checks whether the body fits at the given position
func (cs *CollisionSystem) CanMoveTo(x, y float64) bool {
	box := NewBoundingBox(x, y, cs.size, cs.size)
	return cs.fitsWorld(box) && cs.fitsEntities(box)
}

// Move tries to move from (x, y) by (dx, dy). A blocked move slides along
// the obstacle by applying each axis separately.
func (cs *CollisionSystem) Move(x, y, dx, dy float64) (float64, float64) {
	if cs.CanMoveTo(x+dx, y+dy) {
		return x + dx, y + dy
	}
	if dx != 0 && cs.CanMoveTo(x+dx, y) {
		return x + dx, y
	}
	if dy != 0 && cs.CanMoveTo(x, y+dy) {
		return x, y + dy
	}
	return x, y
}

func (cs *CollisionSystem) fitsWorld(box *BoundingBox) bool {
	minX, minY, maxX, maxY := box.GetBounds()

	// Check all tiles that the bounding box overlaps
	for tileY := int(math.Floor(minY)); tileY <= int(math.Floor(maxY)); tileY++ {
		for tileX := int(math.Floor(minX)); tileX <= int(math.Floor(maxX)); tileX++ {
			if !cs.tileChecker.IsWalkable(tileX, tileY) {
				return false
			}
		}
	}
	return true
}

func (cs *CollisionSystem) fitsEntities(box *BoundingBox) bool {
	for _, entity := range cs.entities {
		if entity.Solid && box.Intersects(entity.BoundingBox) {
			return false
		}
	}
	return true
}
