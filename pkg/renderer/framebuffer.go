package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-chunk-raytracer/pkg/core"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Framebuffer holds the 8-bit output image
type Framebuffer struct {
	img   *image.RGBA
	gamma float64
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int, gamma float64) *Framebuffer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 255
	}
	return &Framebuffer{img: img, gamma: gamma}
}

// Set stores a linear color. Out of bounds coordinates are ignored.
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	if !(image.Point{X: x, Y: y}).In(fb.img.Rect) {
		return
	}
	fb.img.SetRGBA(x, y, toRGBA(c, fb.gamma))
}

// Image returns the underlying image
func (fb *Framebuffer) Image() *image.RGBA {
	return fb.img
}

// Encode writes the image in the given format (png, bmp, tif or tiff)
func (fb *Framebuffer) Encode(w io.Writer, format string) error {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "png":
		return png.Encode(w, fb.img)
	case "bmp":
		return bmp.Encode(w, fb.img)
	case "tif", "tiff":
		return tiff.Encode(w, fb.img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the image to path, picking the encoder from the file extension
func (fb *Framebuffer) Save(path string) error {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".bmp", ".tif", ".tiff":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := fb.Encode(file, ext); err != nil {
		file.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return file.Close()
}

func toRGBA(c core.Vec3, gamma float64) color.RGBA {
	// Clamp first so pow never sees a negative base
	c = c.Clamp(0, 1).GammaCorrect(gamma).Clamp(0, 1)
	return color.RGBA{
		R: uint8(255*c.X + 0.5),
		G: uint8(255*c.Y + 0.5),
		B: uint8(255*c.Z + 0.5),
		A: 255,
	}
}
