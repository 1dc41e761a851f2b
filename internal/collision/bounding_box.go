package collision

import "math"

// BoundingBox is an axis-aligned box in grid units, centred on (X, Y).
type BoundingBox struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// NewBoundingBox creates a new bounding box centered at the given position
func NewBoundingBox(x, y, width, height float64) *BoundingBox {
	return &BoundingBox{X: x, Y: y, Width: width, Height: height}
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb *BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	halfWidth := bb.Width / 2
	halfHeight := bb.Height / 2
	return bb.X - halfWidth, bb.Y - halfHeight, bb.X + halfWidth, bb.Y + halfHeight
}

// Intersects checks if this bounding box intersects with another
func (bb *BoundingBox) Intersects(other *BoundingBox) bool {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()

	return !(maxX1 <= minX2 || maxX2 <= minX1 || maxY1 <= minY2 || maxY2 <= minY1)
}

// MoveTo moves the bounding box to a new center position
func (bb *BoundingBox) MoveTo(x, y float64) {
	bb.X = x
	bb.Y = y
}

// Distance returns the distance between the centers of two bounding boxes
func (bb *BoundingBox) Distance(other *BoundingBox) float64 {
	return math.Hypot(bb.X-other.X, bb.Y-other.Y)
}
