package engine

import (
	"image"
	"image/color"
	"math"
)

// ZBuffer holds the nearest wall depth per screen column.
type ZBuffer []float64

// NewZBuffer creates a z-buffer for width columns, reset to +Inf.
func NewZBuffer(width int) ZBuffer {
	z := make(ZBuffer, width)
	z.Reset()
	return z
}

// Reset clears every column to +Inf.
func (z ZBuffer) Reset() {
	inf := math.Inf(1)
	for i := range z {
		z[i] = inf
	}
}

// TestAndSet stores depth when it is strictly nearer than the current value
// and reports whether it did. Each column must be written by one goroutine.
func (z ZBuffer) TestAndSet(col int, depth float64) bool {
	if col < 0 || col >= len(z) || !(depth < z[col]) {
		return false
	}
	z[col] = depth
	return true
}

// At returns the depth stored for a column, +Inf outside the buffer.
func (z ZBuffer) At(col int) float64 {
	if col < 0 || col >= len(z) {
		return math.Inf(1)
	}
	return z[col]
}

// FrameBuffer is a row-major RGBA pixel buffer.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewFrameBuffer allocates an opaque black frame.
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
	fb.Fill(color.RGBA{0, 0, 0, 255})
	return fb
}

// Fill sets every pixel to c.
func (fb *FrameBuffer) Fill(c color.RGBA) {
	for i := 0; i+3 < len(fb.Pix); i += 4 {
		fb.Pix[i] = c.R
		fb.Pix[i+1] = c.G
		fb.Pix[i+2] = c.B
		fb.Pix[i+3] = c.A
	}
}

// Set writes one pixel. Out-of-range coordinates are ignored.
func (fb *FrameBuffer) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = c.R
	fb.Pix[i+1] = c.G
	fb.Pix[i+2] = c.B
	fb.Pix[i+3] = c.A
}

// At reads one pixel. Out-of-range coordinates read transparent black.
func (fb *FrameBuffer) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return color.RGBA{}
	}
	i := (y*fb.Width + x) * 4
	return color.RGBA{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]}
}

// Image wraps the pixels as an *image.RGBA sharing the same memory.
func (fb *FrameBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    fb.Pix,
		Stride: fb.Width * 4,
		Rect:   image.Rect(0, 0, fb.Width, fb.Height),
	}
}

// Clone returns a copy that stays valid across renders.
func (fb *FrameBuffer) Clone() *FrameBuffer {
	return &FrameBuffer{
		Width:  fb.Width,
		Height: fb.Height,
		Pix:    append([]uint8(nil), fb.Pix...),
	}
}
