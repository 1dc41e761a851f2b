package engine

import (
	"math"

	"raymode7/internal/mathutil"
	"raymode7/internal/world"
)

// Epsilon is the smallest distance reported for a hit.
const Epsilon = 1e-4

const boundaryNudge = 1e-6

// Face identifies which side of a wall cell a ray struck.
type Face int

const (
	FaceNone  Face = iota
	FaceWest       // x-min side, struck moving +X
	FaceEast       // x-max side, struck moving -X
	FaceNorth      // y-min side, struck moving +Y
	FaceSouth      // y-max side, struck moving -Y
)

// YSide reports whether the face is perpendicular to the Y axis.
func (f Face) YSide() bool {
	return f == FaceNorth || f == FaceSouth
}

func (f Face) String() string {
	switch f {
	case FaceWest:
		return "west"
	case FaceEast:
		return "east"
	case FaceNorth:
		return "north"
	case FaceSouth:
		return "south"
	}
	return "none"
}

// RayHit is the wall intersection found for one screen column.
type RayHit struct {
	Hit          bool
	Distance     float64 // length along the ray
	PerpDistance float64 // depth along the facing direction
	Texture      world.TextureID
	U            float64 // horizontal texture coordinate in [0, 1)
	Face         Face
	CellX, CellY int
}

// RayCaster walks the grid with a DDA to find the nearest wall per column.
type RayCaster struct {
	MaxDistance float64
	Executor    Executor
}

// NewRayCaster creates a ray caster that gives up beyond maxDistance.
func NewRayCaster(maxDistance float64) *RayCaster {
	if maxDistance <= 0 {
		maxDistance = 64
	}
	return &RayCaster{MaxDistance: maxDistance}
}

// CastRays fills one hit per screen column, reusing out when it has capacity.
func (rc *RayCaster) CastRays(cam Camera, grid *world.Grid, tables *LookupTables, out []RayHit) ([]RayHit, error) {
	if !tables.Ready() {
		return out, notInitialized("tables")
	}
	if grid == nil {
		return out, &ConfigurationError{Field: "grid", Reason: "no grid to cast against"}
	}

	w := tables.Width()
	if cap(out) >= w {
		out = out[:w]
	} else {
		out = make([]RayHit, w)
	}

	x, y := nudge(cam.X), nudge(cam.Y)
	fx, fy := cam.Forward()
	rx, ry := cam.Right()

	runFor(rc.Executor, w, func(c int) {
		o := tables.Offset(c)
		// Unnormalized direction: the DDA distance is then the perpendicular depth.
		hit := rc.cast(x, y, fx+rx*o, fy+ry*o, grid)
		if hit.Hit {
			hit.Distance = hit.PerpDistance * tables.Secant(c)
		}
		out[c] = hit
	})
	return out, nil
}

// CastRay casts a single ray from (x, y) at an absolute angle. Distance and
// PerpDistance are equal because the direction is normalized.
func (rc *RayCaster) CastRay(x, y, angle float64, grid *world.Grid) RayHit {
	if grid == nil {
		return rc.miss()
	}
	return rc.cast(nudge(x), nudge(y), math.Cos(angle), math.Sin(angle), grid)
}

func (rc *RayCaster) miss() RayHit {
	return RayHit{
		Distance:     rc.MaxDistance,
		PerpDistance: rc.MaxDistance,
		Texture:      world.TextureNone,
		CellX:        -1,
		CellY:        -1,
	}
}

// nudge moves a coordinate that lies exactly on a grid line into the cell.
func nudge(v float64) float64 {
	if mathutil.Frac(v) == 0 {
		return v + boundaryNudge
	}
	return v
}

func (rc *RayCaster) cast(x, y, dx, dy float64, grid *world.Grid) RayHit {
	mapX := int(math.Floor(x))
	mapY := int(math.Floor(y))

	deltaX := 1e30
	if dx != 0 {
		deltaX = math.Abs(1 / dx)
	}
	deltaY := 1e30
	if dy != 0 {
		deltaY = math.Abs(1 / dy)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dx < 0 {
		stepX = -1
		sideX = (x - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - x) * deltaX
	}
	if dy < 0 {
		stepY = -1
		sideY = (y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - y) * deltaY
	}

	for {
		var perp float64
		var ySide bool
		if sideX < sideY {
			perp = sideX
			sideX += deltaX
			mapX += stepX
		} else {
			perp = sideY
			sideY += deltaY
			mapY += stepY
			ySide = true
		}

		if perp > rc.MaxDistance {
			return rc.miss()
		}

		cell := grid.At(mapX, mapY)
		if cell.Walkable {
			continue
		}

		perp = math.Max(perp, Epsilon)
		hit := RayHit{
			Hit:          true,
			Distance:     perp,
			PerpDistance: perp,
			Texture:      cell.Texture,
			CellX:        mapX,
			CellY:        mapY,
		}
		if ySide {
			hit.U = mathutil.Frac(x + perp*dx)
			if dy < 0 {
				hit.U = 1 - hit.U
				hit.Face = FaceSouth
			} else {
				hit.Face = FaceNorth
			}
		} else {
			hit.U = mathutil.Frac(y + perp*dy)
			if dx > 0 {
				hit.U = 1 - hit.U
				hit.Face = FaceWest
			} else {
				hit.Face = FaceEast
			}
		}
		if hit.U >= 1 {
			hit.U = 0
		}
		return hit
	}
}
