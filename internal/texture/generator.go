package texture

import (
	"hash/fnv"
	"image/color"
	"math"
	"math/rand"
)

// Procedural texture kinds.
const (
	KindStone   = "stone"
	KindBrick   = "brick"
	KindWood    = "wood"
	KindMetal   = "metal"
	KindFloor   = "floor"
	KindCeiling = "ceiling"
	KindOrb     = "orb"
	KindFlat    = "flat"
)

// DefaultSize is the edge length of generated textures.
const DefaultSize = 64

// Generator draws procedural textures. Output depends only on the kind, size
// and colour, so the same inputs always give the same pixels.
type Generator struct {
	Size int
}

// NewGenerator creates a generator for size×size textures.
func NewGenerator(size int) *Generator {
	if size <= 0 {
		size = DefaultSize
	}
	return &Generator{Size: size}
}

// Kinds lists every kind Generate understands.
func Kinds() []string {
	return []string{KindStone, KindBrick, KindWood, KindMetal, KindFloor, KindCeiling, KindOrb, KindFlat}
}

// Generate creates a texture of the given kind. base tints flat and orb
// textures; an unknown kind falls back to stone.
func (g *Generator) Generate(kind string, base color.RGBA) *Image {
	rng := rand.New(rand.NewSource(seed(kind, g.Size)))
	img := NewImage(g.Size, g.Size)
	switch kind {
	case KindBrick:
		g.brick(img, rng)
	case KindWood:
		g.wood(img, rng)
	case KindMetal:
		g.metal(img, rng)
	case KindFloor:
		g.floor(img, rng)
	case KindCeiling:
		g.ceiling(img, rng)
	case KindOrb:
		g.orb(img, base)
	case KindFlat:
		if base.A == 0 {
			base.A = 255
		}
		return Solid(g.Size, base)
	default:
		g.stone(img, rng)
	}
	return img
}

func seed(kind string, size int) int64 {
	h := fnv.New64a()
	h.Write([]byte(kind))
	return int64(h.Sum64()) ^ int64(size)
}

func grey(v float64) color.RGBA {
	c := uint8(math.Max(0, math.Min(255, v)))
	return color.RGBA{c, c, c, 255}
}

func tint(base color.RGBA, dr, dg, db float64) color.RGBA {
	clamp := func(v float64) uint8 { return uint8(math.Max(0, math.Min(255, v))) }
	return color.RGBA{clamp(float64(base.R) + dr), clamp(float64(base.G) + dg), clamp(float64(base.B) + db), 255}
}

// scaled maps a coordinate on a 64 texel reference grid to this size.
func (g *Generator) scaled(v int) int {
	return v * g.Size / DefaultSize
}

func (g *Generator) stone(img *Image, rng *rand.Rand) {
	n := g.Size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			noise := math.Sin(float64(x)*0.1)*math.Cos(float64(y)*0.1)*20 +
				math.Sin(float64(x)*0.3)*math.Cos(float64(y)*0.3)*10 +
				float64(rng.Intn(30)-15)
			img.Set(x, y, grey(120+noise))
		}
	}
	for _, y := range []int{15, 31, 47} {
		for x := 0; x < n; x++ {
			if rng.Float64() < 0.8 {
				img.Set(x, g.scaled(y), grey(80))
			}
		}
	}
	for _, x := range []int{20, 42} {
		for y := 0; y < n; y++ {
			if rng.Float64() < 0.7 {
				img.Set(g.scaled(x), y, grey(85))
			}
		}
	}
}

func (g *Generator) brick(img *Image, rng *rand.Rand) {
	n := g.Size
	mortar := color.RGBA{100, 90, 80, 255}
	brick := color.RGBA{150, 80, 60, 255}
	bh, bw, gap := g.scaled(8), g.scaled(16), max(1, g.scaled(2))
	bh, bw = max(bh, 2), max(bw, 2)

	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.Set(x, y, mortar)
		}
	}
	for row := 0; row*(bh+gap) < n; row++ {
		top := row * (bh + gap)
		offset := 0
		if row%2 == 1 {
			offset = bw / 2
		}
		for left := -offset; left < n; left += bw + gap {
			for y := top + gap; y < top+bh; y++ {
				for x := left + gap; x < left+bw; x++ {
					if x < 0 || x >= n || y >= n {
						continue
					}
					d := float64(rng.Intn(40) - 20)
					img.Set(x, y, tint(brick, d, d, d))
				}
			}
		}
	}
}

func (g *Generator) wood(img *Image, rng *rand.Rand) {
	n := g.Size
	base := color.RGBA{139, 115, 85, 255}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			grain := math.Sin(float64(y)*0.3+float64(x)*0.1)*15 +
				math.Sin(float64(y)*0.1)*20 +
				float64(rng.Intn(20)-10)
			img.Set(x, y, tint(base, grain, grain*0.8, grain*0.6))
		}
	}
	plank := g.scaled(16)
	if plank < 2 {
		return
	}
	for y := plank; y < n; y += plank {
		for x := 0; x < n; x++ {
			if rng.Float64() < 0.6 {
				img.Set(x, y, color.RGBA{100, 85, 65, 255})
				img.Set(x, y+1, color.RGBA{100, 85, 65, 255})
			}
		}
	}
}

func (g *Generator) metal(img *Image, rng *rand.Rand) {
	n := g.Size
	base := color.RGBA{160, 160, 180, 255}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			r := math.Sin(float64(x)*0.2)*math.Cos(float64(y)*0.2)*30 +
				math.Sin(float64(x+y)*0.1)*15 +
				float64(rng.Intn(20)-10)
			img.Set(x, y, tint(base, r, r, r*0.8))
		}
	}
	for _, p := range []int{21, 42} {
		for i := 0; i < n; i++ {
			img.Set(i, g.scaled(p), color.RGBA{120, 120, 140, 255})
			img.Set(g.scaled(p), i, color.RGBA{140, 140, 160, 255})
		}
	}
	for _, ry := range []int{10, 32, 54} {
		for _, rx := range []int{10, 32, 54} {
			x, y := g.scaled(rx), g.scaled(ry)
			img.Set(x, y, color.RGBA{200, 200, 220, 255})
			for _, d := range [][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}} {
				img.Set(x+d[0], y+d[1], color.RGBA{180, 180, 200, 255})
			}
		}
	}
}

func (g *Generator) floor(img *Image, rng *rand.Rand) {
	n := g.Size
	base := color.RGBA{101, 67, 33, 255}
	border := color.RGBA{80, 50, 20, 255}
	tile := max(1, n/4)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if x%tile == 0 || y%tile == 0 {
				img.Set(x, y, border)
				continue
			}
			d := float64(rng.Intn(30) - 15)
			img.Set(x, y, tint(base, d, d, d))
		}
	}
}

func (g *Generator) ceiling(img *Image, rng *rand.Rand) {
	n := g.Size
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			noise := math.Sin(float64(x)*0.2)*math.Cos(float64(y)*0.2)*15 + float64(rng.Intn(20)-10)
			img.Set(x, y, grey(math.Max(30, math.Min(100, 64+noise))))
		}
	}
}

// orb draws a shaded disc on a transparent background, for billboards.
func (g *Generator) orb(img *Image, base color.RGBA) {
	if base == (color.RGBA{}) {
		base = color.RGBA{230, 190, 60, 255}
	}
	n := float64(g.Size)
	r := n * 0.3
	cx, cy := n/2, n-r-1
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			d := math.Hypot(dx, dy)
			if d > r {
				continue
			}
			light := 1 - 0.5*d/r - 0.2*(dx+dy)/r
			img.Set(x, y, tint(base, float64(base.R)*(light-1), float64(base.G)*(light-1), float64(base.B)*(light-1)))
		}
	}
}
