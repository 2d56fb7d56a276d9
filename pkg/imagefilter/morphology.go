package imagefilter

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
	"gonum.org/v1/gonum/mat"
)

// MorphOp selects the morphological operation applied by a Morphology
// filter.
type MorphOp int

const (
	// MorphDilate takes the per-pixel maximum over the kernel neighborhood.
	MorphDilate MorphOp = iota

	// MorphErode takes the per-pixel minimum over the kernel neighborhood.
	MorphErode
)

// MorphologyParams configures a Morphology filter: the structuring-element
// dimensions and how many times the operation is repeated.
type MorphologyParams struct {
	KernelX    int
	KernelY    int
	Iterations int
}

// DefaultMorphologyParams returns a 5x5 rectangular kernel applied once.
func DefaultMorphologyParams() MorphologyParams {
	return MorphologyParams{KernelX: 5, KernelY: 5, Iterations: 1}
}

// Morphology applies grayscale dilation or erosion with a rectangular
// all-ones structuring element, writing the result back into the input
// buffer.
type Morphology struct {
	op     MorphOp
	params MorphologyParams
}

// NewMorphology returns a morphology filter for the given operation with
// default parameters.
func NewMorphology(op MorphOp) *Morphology {
	return &Morphology{op: op, params: DefaultMorphologyParams()}
}

// Params returns the current morphology parameters.
func (f *Morphology) Params() MorphologyParams { return f.params }

// SetParams replaces the morphology parameters. Takes effect on the next
// Dispatch call.
func (f *Morphology) SetParams(p MorphologyParams) { f.params = p }

// DisplayName implements Filter.
func (f *Morphology) DisplayName() string {
	if f.op == MorphErode {
		return "Erode"
	}
	return "Dilate"
}

// DisplayDescription implements Filter.
func (f *Morphology) DisplayDescription() string {
	if f.op == MorphErode {
		return "Erode morphological operation"
	}
	return "Dilate morphological operation"
}

// Inplace implements Filter.
func (f *Morphology) Inplace() bool { return true }

// Dispatch runs the configured operation Iterations times over pixels and
// returns the same array with the result written in place. Kernel
// dimensions below 1 and negative iteration counts are rejected with
// ErrInvalidParameter; zero iterations leaves the input untouched.
func (f *Morphology) Dispatch(meta Metadata, pixels *mat.Dense) (*mat.Dense, error) {
	p := f.params
	if p.KernelX < 1 || p.KernelY < 1 {
		return nil, fmt.Errorf("%w: kernel %dx%d", ErrInvalidParameter, p.KernelX, p.KernelY)
	}
	if p.Iterations < 0 {
		return nil, fmt.Errorf("%w: iterations %d", ErrInvalidParameter, p.Iterations)
	}
	if p.Iterations == 0 {
		return pixels, nil
	}

	rows, cols := pixels.Dims()

	src := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64F)
	defer src.Close()
	dst := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64F)
	defer dst.Close()

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			src.SetDoubleAt(i, j, pixels.At(i, j))
		}
	}

	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Pt(p.KernelX, p.KernelY))
	defer kernel.Close()

	for it := 0; it < p.Iterations; it++ {
		switch f.op {
		case MorphErode:
			gocv.Erode(src, &dst, kernel)
		default:
			gocv.Dilate(src, &dst, kernel)
		}
		src, dst = dst, src
	}

	// After the final swap the result lives in src.
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			pixels.Set(i, j, src.GetDoubleAt(i, j))
		}
	}
	return pixels, nil
}
