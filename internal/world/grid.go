package world

import (
	"fmt"
	"math"
)

// TextureID identifies a texture in the asset capability handed to the renderer.
type TextureID int

const (
	// TextureNone marks "no texture": sky, background or a flat fallback colour.
	TextureNone TextureID = -1
	// TextureEmpty is the empty cell identifier; on walkable cells it selects
	// the grid's default floor or ceiling.
	TextureEmpty TextureID = 0
)

// Cell is one grid square.
// Non-walkable cells are walls and Texture is the wall texture.
// Walkable cells use Texture for the floor and Ceiling for the ceiling.
type Cell struct {
	Texture  TextureID
	Ceiling  TextureID
	Walkable bool
}

// Grid is a dense, row-major 2D world map. It must not be mutated while a
// frame is being rendered from it.
type Grid struct {
	Width  int
	Height int
	cells  []Cell

	DefaultFloor   TextureID // floor texture for walkable cells with TextureEmpty
	DefaultCeiling TextureID // ceiling texture for walkable cells with TextureEmpty
	Boundary       TextureID // wall texture reported for rays leaving the grid
}

// NewGrid creates a width×height grid of empty walkable cells.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Cell{Walkable: true}
	}
	return &Grid{
		Width:          width,
		Height:         height,
		cells:          cells,
		DefaultFloor:   TextureNone,
		DefaultCeiling: TextureNone,
		Boundary:       1,
	}
}

// InBounds reports whether (x, y) is a valid cell coordinate.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// At returns the cell at (x, y). Out-of-bounds coordinates report a boundary wall.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return Cell{Texture: g.Boundary, Ceiling: TextureNone}
	}
	return g.cells[y*g.Width+x]
}

// Set replaces the cell at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.Width+x] = c
}

// SetWall places a wall with the given texture.
func (g *Grid) SetWall(x, y int, tex TextureID) {
	g.Set(x, y, Cell{Texture: tex, Ceiling: TextureEmpty})
}

// IsWalkable reports whether the cell at (x, y) can be entered.
func (g *Grid) IsWalkable(x, y int) bool {
	return g.At(x, y).Walkable
}

// IsWalkableAt reports whether the world position lies in a walkable cell.
func (g *Grid) IsWalkableAt(x, y float64) bool {
	return g.IsWalkable(int(math.Floor(x)), int(math.Floor(y)))
}

// FloorTexture resolves the floor texture for a cell, applying the grid default.
func (g *Grid) FloorTexture(x, y int) TextureID {
	if !g.InBounds(x, y) {
		return TextureNone
	}
	c := g.cells[y*g.Width+x]
	if !c.Walkable || c.Texture == TextureEmpty {
		return g.DefaultFloor
	}
	return c.Texture
}

// CeilingTexture resolves the ceiling texture for a cell, applying the grid default.
func (g *Grid) CeilingTexture(x, y int) TextureID {
	if !g.InBounds(x, y) {
		return TextureNone
	}
	c := g.cells[y*g.Width+x]
	if !c.Walkable || c.Ceiling == TextureEmpty {
		return g.DefaultCeiling
	}
	return c.Ceiling
}

// positionMargin keeps clamped positions strictly inside the last cell.
const positionMargin = 1e-6

// ClampPosition moves a world position into the grid bounds.
// The second result reports whether clamping was necessary.
func (g *Grid) ClampPosition(x, y float64) (float64, float64, bool) {
	if g.Width == 0 || g.Height == 0 {
		return x, y, false
	}
	cx := math.Min(math.Max(x, 0), float64(g.Width)-positionMargin)
	cy := math.Min(math.Max(y, 0), float64(g.Height)-positionMargin)
	if math.IsNaN(x) {
		cx = float64(g.Width) / 2
	}
	if math.IsNaN(y) {
		cy = float64(g.Height) / 2
	}
	return cx, cy, cx != x || cy != y
}

// Validate checks that every cell references a texture known to the asset
// layer. Walls must carry a texture; floors and ceilings may be empty.
func (g *Grid) Validate(known func(TextureID) bool) error {
	check := func(id TextureID) bool {
		return id == TextureNone || known(id)
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.cells[y*g.Width+x]
			if !c.Walkable {
				if c.Texture == TextureEmpty || !check(c.Texture) {
					return fmt.Errorf("cell (%d,%d): wall texture %d is unknown", x, y, c.Texture)
				}
				continue
			}
			if c.Texture != TextureEmpty && !check(c.Texture) {
				return fmt.Errorf("cell (%d,%d): floor texture %d is unknown", x, y, c.Texture)
			}
			if c.Ceiling != TextureEmpty && !check(c.Ceiling) {
				return fmt.Errorf("cell (%d,%d): ceiling texture %d is unknown", x, y, c.Ceiling)
			}
		}
	}
	for _, id := range []TextureID{g.DefaultFloor, g.DefaultCeiling, g.Boundary} {
		if id != TextureEmpty && !check(id) {
			return fmt.Errorf("default texture %d is unknown", id)
		}
	}
	return nil
}

// Clone returns a deep copy of the grid, for world edits between frames.
func (g *Grid) Clone() *Grid {
	cp := *g
	cp.cells = append([]Cell(nil), g.cells...)
	return &cp
}
