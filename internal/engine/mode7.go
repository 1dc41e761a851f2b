package engine

import (
	"math"

	"raymode7/internal/mathutil"
	"raymode7/internal/world"
)

// PlaneKind tells which horizontal plane a screen pixel looks at.
type PlaneKind uint8

const (
	PlaneNone PlaneKind = iota // horizon row
	PlaneFloor
	PlaneCeiling
)

// PlaneSample is the floor or ceiling point seen through one pixel.
type PlaneSample struct {
	Kind           PlaneKind
	WorldX, WorldY float64
	Texture        world.TextureID
	U, V           float64
	Distance       float64 // depth along the facing direction
}

// Mode7Renderer projects every pixel row onto the floor or ceiling plane.
type Mode7Renderer struct {
	MaxDistance float64
	Executor    Executor
}

// NewMode7Renderer creates a plane renderer that culls samples beyond maxDistance.
func NewMode7Renderer(maxDistance float64) *Mode7Renderer {
	if maxDistance <= 0 {
		maxDistance = 64
	}
	return &Mode7Renderer{MaxDistance: maxDistance}
}

// Horizon returns the screen row of the horizon for a camera.
func Horizon(cam Camera, height int) int {
	return height/2 + cam.Pitch
}

// RenderPlanes fills width*height samples in row-major order, reusing out
// when it has capacity.
func (m *Mode7Renderer) RenderPlanes(cam Camera, grid *world.Grid, tables *LookupTables, out []PlaneSample) ([]PlaneSample, error) {
	if !tables.Ready() {
		return out, notInitialized("tables")
	}
	if grid == nil {
		return out, &ConfigurationError{Field: "grid", Reason: "no grid to project"}
	}

	w, h := tables.Width(), tables.Height()
	n := w * h
	if cap(out) >= n {
		out = out[:n]
	} else {
		out = make([]PlaneSample, n)
	}

	horizon := Horizon(cam, h)
	eye := cam.EyeHeight()
	fx, fy := cam.Forward()
	rx, ry := cam.Right()

	runFor(m.Executor, h, func(r int) {
		row := out[r*w : (r+1)*w]
		d := r - horizon
		if d == 0 {
			for c := range row {
				row[c] = PlaneSample{Kind: PlaneNone, Texture: world.TextureNone, Distance: math.Inf(1)}
			}
			return
		}

		kind := PlaneFloor
		rowDist := eye * tables.Scale(d)
		if d < 0 {
			kind = PlaneCeiling
			rowDist = (1 - eye) * tables.Scale(d)
		}
		culled := rowDist > m.MaxDistance

		for c := range row {
			o := tables.Offset(c)
			wx := cam.X + rowDist*(fx+rx*o)
			wy := cam.Y + rowDist*(fy+ry*o)
			s := PlaneSample{
				Kind:     kind,
				WorldX:   wx,
				WorldY:   wy,
				Texture:  world.TextureNone,
				U:        mathutil.Frac(wx),
				V:        mathutil.Frac(wy),
				Distance: rowDist,
			}
			if !culled {
				cx, cy := int(math.Floor(wx)), int(math.Floor(wy))
				if kind == PlaneFloor {
					s.Texture = grid.FloorTexture(cx, cy)
				} else {
					s.Texture = grid.CeilingTexture(cx, cy)
				}
			}
			row[c] = s
		}
	})
	return out, nil
}
