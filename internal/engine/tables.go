package engine

import (
	"math"
)

// LookupTables holds the per-column and per-row values that only depend on
// the resolution and field of view. They are rebuilt when either changes and
// are shared read-only by the ray caster and the plane renderer.
type LookupTables struct {
	width  int
	height int
	fov    float64

	focal       float64
	verticalFOV float64

	offset []float64 // camera-plane offset per column
	angle  []float64 // ray angle relative to forward per column
	secant []float64 // 1/cos(angle) per column
	scale  []float64 // focal/d per row distance d from the horizon; scale[0] unused

	ready bool
}

// NewLookupTables returns an empty table set. Rebuild must be called before use.
func NewLookupTables() *LookupTables {
	return &LookupTables{}
}

// Rebuild recomputes the tables for a resolution and horizontal field of view
// in radians.
func (t *LookupTables) Rebuild(width, height int, fov float64) error {
	if width <= 0 || height <= 0 {
		return &ConfigurationError{Field: "resolution", Reason: "width and height must be positive"}
	}
	if !(fov > 0 && fov < math.Pi) {
		return &ConfigurationError{Field: "fov", Reason: "field of view must be between 0 and 180 degrees"}
	}

	t.width = width
	t.height = height
	t.fov = fov
	t.focal = (float64(width) / 2) / math.Tan(fov/2)
	t.verticalFOV = 2 * math.Atan((float64(height)/2)/t.focal)

	t.offset = resize(t.offset, width)
	t.angle = resize(t.angle, width)
	t.secant = resize(t.secant, width)
	half := float64(width) / 2
	for c := 0; c < width; c++ {
		o := (float64(c) - half) / t.focal
		t.offset[c] = o
		t.angle[c] = math.Atan(o)
		t.secant[c] = math.Sqrt(1 + o*o)
	}

	// Pitch can push the horizon off screen, so rows reach up to twice the height away.
	rows := 2*height + 1
	t.scale = resize(t.scale, rows)
	t.scale[0] = 0
	for d := 1; d < rows; d++ {
		t.scale[d] = t.focal / float64(d)
	}

	t.ready = true
	return nil
}

func resize(s []float64, n int) []float64 {
	if cap(s) >= n {
		return s[:n]
	}
	return make([]float64, n)
}

// Ready reports whether Rebuild has succeeded at least once.
func (t *LookupTables) Ready() bool {
	return t != nil && t.ready
}

// Matches reports whether the tables were built for exactly these parameters.
func (t *LookupTables) Matches(width, height int, fov float64) bool {
	return t.Ready() && t.width == width && t.height == height && t.fov == fov
}

// Width returns the column count the tables were built for.
func (t *LookupTables) Width() int { return t.width }

// Height returns the row count the tables were built for.
func (t *LookupTables) Height() int { return t.height }

// FOV returns the horizontal field of view in radians.
func (t *LookupTables) FOV() float64 { return t.fov }

// Focal returns the focal length in pixels.
func (t *LookupTables) Focal() float64 { return t.focal }

// VerticalFOV returns the vertical field of view implied by the aspect ratio.
func (t *LookupTables) VerticalFOV() float64 { return t.verticalFOV }

// Offset returns the camera-plane offset of column c.
func (t *LookupTables) Offset(c int) float64 { return t.offset[c] }

// Angle returns the ray angle of column c relative to the facing direction.
func (t *LookupTables) Angle(c int) float64 { return t.angle[c] }

// Secant converts a perpendicular depth in column c to a distance along the ray.
func (t *LookupTables) Secant(c int) float64 { return t.secant[c] }

// Scale returns focal/d for a row d pixels away from the horizon.
func (t *LookupTables) Scale(d int) float64 {
	if d < 0 {
		d = -d
	}
	if d == 0 {
		return 0
	}
	if d < len(t.scale) {
		return t.scale[d]
	}
	return t.focal / float64(d)
}
