// Package visualization renders filtered pixel arrays as grayscale images
// for inspection. It maps an intensity band onto the full 16-bit gray
// range and writes PNG or JPEG files.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Renderer converts a 2D pixel array into displayable grayscale images.
type Renderer struct {
	// pixels is the array being rendered; borrowed from the caller
	pixels *mat.Dense
}

// NewRenderer creates a renderer over the given pixel array.
func NewRenderer(pixels *mat.Dense) *Renderer {
	return &Renderer{pixels: pixels}
}

// Render maps the full intensity range of the array linearly onto 16-bit
// grayscale. A constant image renders as black.
func (r *Renderer) Render() *image.Gray16 {
	lo, hi := r.intensityRange()
	return r.RenderWindow(lo, hi)
}

// RenderWindow maps the [lo, hi] intensity band onto 16-bit grayscale,
// clamping values outside the band. hi <= lo renders as black.
func (r *Renderer) RenderWindow(lo, hi float64) *image.Gray16 {
	rows, cols := r.pixels.Dims()
	img := image.NewGray16(image.Rect(0, 0, cols, rows))

	span := hi - lo
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var scaled float64
			if span > 0 {
				scaled = (r.pixels.At(y, x) - lo) / span
			}
			value := uint16(math.Max(0, math.Min(65535, scaled*65535)))
			img.SetGray16(x, y, color.Gray16{Y: value})
		}
	}
	return img
}

// intensityRange returns the minimum and maximum pixel values.
func (r *Renderer) intensityRange() (float64, float64) {
	rows, cols := r.pixels.Dims()
	lo, hi := math.Inf(1), math.Inf(-1)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			v := r.pixels.At(y, x)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi
}

// SaveImage writes img to filename, choosing the encoder from the file
// extension (.png, .jpg, .jpeg).
func SaveImage(img image.Image, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return png.Encode(file, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
	default:
		return fmt.Errorf("unsupported image extension %q (must be .png, .jpg, or .jpeg)", filepath.Ext(filename))
	}
}

// Save renders the full intensity range and writes it to filename.
func (r *Renderer) Save(filename string) error {
	return SaveImage(r.Render(), filename)
}
