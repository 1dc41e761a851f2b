package engine

import (
	"image/color"
	"math"

	"raymode7/internal/mathutil"
)

// Shading curves.
const (
	CurveLinear        = "linear"
	CurveInverse       = "inverse"
	CurveInverseSquare = "inverse_square"
)

// Shader darkens colours with distance.
type Shader struct {
	Curve        string  // linear, inverse or inverse_square
	ViewDistance float64 // distance at which linear shading reaches Min
	Min          float64 // brightness floor
	SideFactor   float64 // extra factor for walls facing north or south
}

// DefaultShader returns linear shading over the given view distance.
func DefaultShader(viewDistance float64) Shader {
	return Shader{Curve: CurveLinear, ViewDistance: viewDistance, Min: 0.2, SideFactor: 0.7}
}

// Brightness returns the light factor in [Min, 1] for a distance. It never
// increases with distance.
func (s Shader) Brightness(distance float64) float64 {
	if distance < 0 || math.IsNaN(distance) {
		distance = 0
	}
	var b float64
	switch s.Curve {
	case CurveInverse:
		b = 1 / math.Max(distance, 1)
	case CurveInverseSquare:
		d := math.Max(distance, 1)
		b = 1 / (d * d)
	default:
		if s.ViewDistance <= 0 {
			b = 1
		} else {
			b = 1 - distance/s.ViewDistance
		}
	}
	return mathutil.Clamp(b, s.Min, 1)
}

// Shade applies distance shading, and the side factor when ySide is set.
func (s Shader) Shade(c color.RGBA, distance float64, ySide bool) color.RGBA {
	f := s.Brightness(distance)
	if ySide {
		f *= s.SideFactor
	}
	if f >= 1 {
		return c
	}
	return color.RGBA{
		R: mathutil.ScaleByte(c.R, f),
		G: mathutil.ScaleByte(c.G, f),
		B: mathutil.ScaleByte(c.B, f),
		A: c.A,
	}
}
