package capture

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
)

// Format is an image file format for exported frames.
type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
)

// FormatForPath picks the export format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webp":
		return FormatWebP, nil
	case ".png":
		return FormatPNG, nil
	}
	return "", fmt.Errorf("capture: unsupported image extension %q", filepath.Ext(path))
}

// Encode writes img in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatWebP:
		// Lossless, so captures compare pixel for pixel with the frame buffer.
		return nativewebp.Encode(w, img, nil)
	case FormatPNG:
		return png.Encode(w, img)
	}
	return fmt.Errorf("capture: unknown format %q", format)
}

// SaveImage writes img to path, choosing the format by extension.
func SaveImage(path string, img image.Image) error {
	format, err := FormatForPath(path)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("capture: create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("capture: create %s: %w", path, err)
	}
	if err := Encode(f, img, format); err != nil {
		f.Close()
		return fmt.Errorf("capture: encode %s: %w", path, err)
	}
	return f.Close()
}
