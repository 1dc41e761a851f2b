package engine

import (
	"math"

	"raymode7/internal/mathutil"
)

// Default camera values.
const (
	DefaultFOV       = math.Pi / 3 // 60 degrees
	defaultEyeHeight = 0.5
	minEyeHeight     = 0.05
	maxEyeHeight     = 0.95
)

// Camera is the viewer pose. It is read-only for the duration of a render.
type Camera struct {
	X, Y         float64 // world position in grid units
	Angle        float64 // facing, radians; 0 looks along +X
	FOV          float64 // horizontal field of view, radians
	HeightOffset float64 // eye height offset from the half-wall default
	Pitch        int     // horizon shift in screen rows, positive looks down
}

// NewCamera creates a camera at eye level.
func NewCamera(x, y, angle, fov float64) Camera {
	if fov <= 0 {
		fov = DefaultFOV
	}
	return Camera{X: x, Y: y, Angle: angle, FOV: fov}
}

// Forward is the unit view direction.
func (c Camera) Forward() (x, y float64) {
	return math.Cos(c.Angle), math.Sin(c.Angle)
}

// Right is Forward turned a quarter clockwise on screen (+Y is down the map).
func (c Camera) Right() (x, y float64) {
	fx, fy := c.Forward()
	return -fy, fx
}

// Rotate turns the camera, keeping the angle in [0, 2π).
func (c *Camera) Rotate(angle float64) {
	c.Angle = mathutil.NormalizeAngle(c.Angle + angle)
}

// EyeHeight is the eye position as a fraction of the wall height.
func (c Camera) EyeHeight() float64 {
	return mathutil.Clamp(defaultEyeHeight+c.HeightOffset, minEyeHeight, maxEyeHeight)
}
