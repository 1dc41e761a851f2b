package texture

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// Image is a texture held as straight (non-premultiplied) RGBA pixels.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewImage allocates a transparent texture.
func NewImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pix: make([]uint8, width*height*4)}
}

// Solid creates a size×size texture of one colour.
func Solid(size int, c color.RGBA) *Image {
	img := NewImage(size, size)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

// FromImage copies any decoded image into a texture.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	n, ok := src.(*image.NRGBA)
	if !ok {
		n = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(n, n.Bounds(), src, b.Min, draw.Src)
		b = n.Bounds()
	}
	img := NewImage(b.Dx(), b.Dy())
	for y := 0; y < img.Height; y++ {
		row := n.Pix[n.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(img.Pix[y*img.Width*4:(y+1)*img.Width*4], row[:img.Width*4])
	}
	return img
}

// Set writes one texel. Out-of-range coordinates are ignored.
func (img *Image) Set(x, y int, c color.RGBA) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return
	}
	i := (y*img.Width + x) * 4
	img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
}

// At reads one texel, wrapping coordinates around the edges.
func (img *Image) At(x, y int) color.RGBA {
	if img.Width == 0 || img.Height == 0 {
		return color.RGBA{}
	}
	x %= img.Width
	if x < 0 {
		x += img.Width
	}
	y %= img.Height
	if y < 0 {
		y += img.Height
	}
	i := (y*img.Width + x) * 4
	return color.RGBA{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// Sample returns the nearest texel for wrapped coordinates.
func (img *Image) Sample(u, v float64) color.RGBA {
	x := int(math.Floor(u * float64(img.Width)))
	y := int(math.Floor(v * float64(img.Height)))
	return img.At(x, y)
}

// NRGBA returns a copy as a standard library image.
func (img *Image) NRGBA() *image.NRGBA {
	n := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(n.Pix, img.Pix)
	return n
}
