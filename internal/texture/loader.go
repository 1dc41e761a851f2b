package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Decoders by lower-case file extension. TGA has no magic number, so formats
// are picked by name instead of sniffed.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png": png.Decode,
	".tga": tga.Decode,
	".bmp": bmp.Decode,
}

// LoadFile decodes a PNG, TGA or BMP file. When size is positive the result
// is resampled to size×size.
func LoadFile(path string, size int) (*Image, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if decoders[ext] == nil {
		return nil, fmt.Errorf("texture: unsupported extension %q: %s", ext, path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}
	img, err := Decode(raw, ext, size)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return img, nil
}

// Decode decodes image bytes in the format named by ext (".png", ".tga" or
// ".bmp", case-insensitive).
func Decode(raw []byte, ext string, size int) (*Image, error) {
	decode := decoders[strings.ToLower(ext)]
	if decode == nil {
		return nil, fmt.Errorf("texture: unsupported format %q", ext)
	}
	src, err := decode(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if size > 0 {
		return Resample(src, size, size), nil
	}
	return FromImage(src), nil
}

// Resample scales an image with nearest-neighbour filtering so texel edges
// stay crisp at low resolutions.
func Resample(src image.Image, width, height int) *Image {
	b := src.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return FromImage(src)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return FromImage(dst)
}
