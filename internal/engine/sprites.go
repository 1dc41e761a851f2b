package engine

import (
	"image/color"
	"math"
	"sort"

	"raymode7/internal/world"
)

// Sprite is a camera-facing billboard standing on the floor.
type Sprite struct {
	X, Y    float64
	Texture world.TextureID
	Scale   float64 // height relative to a wall; 0 means 1
}

type projectedSprite struct {
	sprite  Sprite
	depth   float64
	screenX float64
	size    float64
}

// drawSprites draws billboards far to near. A sprite column is drawn only where
// it is nearer than the wall in that column; sprites never write the z-buffer.
func (r *Renderer) drawSprites(cam Camera, sprites []Sprite) int {
	w, h := r.opts.Width, r.opts.Height
	focal := r.tables.Focal()
	horizon := float64(Horizon(cam, h))
	eye := cam.EyeHeight()

	// Camera-space depth along forward and lateral offset along right.
	fx, fy := cam.Forward()
	rx, ry := cam.Right()

	r.sorted = r.sorted[:0]
	for _, sp := range sprites {
		dx, dy := sp.X-cam.X, sp.Y-cam.Y
		depth := dx*fx + dy*fy
		if depth <= Epsilon || depth > r.caster.MaxDistance {
			continue
		}
		scale := sp.Scale
		if scale <= 0 {
			scale = 1
		}
		lateral := dx*rx + dy*ry
		r.sorted = append(r.sorted, projectedSprite{
			sprite:  sp,
			depth:   depth,
			screenX: float64(w)/2 + focal*lateral/depth,
			size:    scale * focal / depth,
		})
	}
	sort.SliceStable(r.sorted, func(i, j int) bool {
		return r.sorted[i].depth > r.sorted[j].depth
	})

	drawn := 0
	for _, ps := range r.sorted {
		left := ps.screenX - ps.size/2
		bottom := horizon + eye*focal/ps.depth
		top := bottom - ps.size

		x0 := int(math.Max(math.Floor(left), 0))
		x1 := int(math.Min(math.Ceil(left+ps.size), float64(w)))
		y0 := int(math.Max(math.Floor(top), 0))
		y1 := int(math.Min(math.Ceil(bottom), float64(h)))
		if x0 >= x1 || y0 >= y1 {
			continue
		}

		tex := r.textures[ps.sprite.Texture]
		visible := false
		for x := x0; x < x1; x++ {
			if ps.depth >= r.zbuf.At(x) {
				continue
			}
			u := (float64(x) + 0.5 - left) / ps.size
			if u < 0 || u >= 1 {
				continue
			}
			for y := y0; y < y1; y++ {
				v := (float64(y) + 0.5 - top) / ps.size
				if v < 0 || v >= 1 {
					continue
				}
				texel := r.opts.MissingColor
				if tex != nil {
					texel = tex.Sample(u, v)
				}
				if texel.A == 0 {
					continue
				}
				px := r.opts.Shader.Shade(texel, ps.depth, false)
				r.frame.Set(x, y, color.RGBA{px.R, px.G, px.B, 255})
				visible = true
			}
		}
		if visible {
			drawn++
		}
	}
	return drawn
}
