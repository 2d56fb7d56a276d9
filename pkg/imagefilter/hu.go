package imagefilter

import (
	"gonum.org/v1/gonum/mat"
)

// TransformToHU rescales raw pixel values to Hounsfield units using the
// RescaleSlope and RescaleIntercept attributes of the image metadata.
// It has no parameters.
type TransformToHU struct{}

// NewTransformToHU returns a Hounsfield-unit rescale filter.
func NewTransformToHU() *TransformToHU {
	return &TransformToHU{}
}

// DisplayName implements Filter.
func (f *TransformToHU) DisplayName() string { return "Transform2HU" }

// DisplayDescription implements Filter.
func (f *TransformToHU) DisplayDescription() string { return "Transform to Hounsfield Unit" }

// Inplace implements Filter.
func (f *TransformToHU) Inplace() bool { return false }

// Dispatch computes pixels*slope + intercept element-wise into a new array.
// If the metadata lacks either rescale attribute the input is returned
// unchanged; a dataset without rescale information is valid and simply has
// nothing to transform.
func (f *TransformToHU) Dispatch(meta Metadata, pixels *mat.Dense) (*mat.Dense, error) {
	if meta == nil {
		return pixels, nil
	}
	slope, ok := meta.FloatValue(KeyRescaleSlope)
	if !ok {
		return pixels, nil
	}
	intercept, ok := meta.FloatValue(KeyRescaleIntercept)
	if !ok {
		return pixels, nil
	}

	rows, cols := pixels.Dims()
	out := mat.NewDense(rows, cols, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		return v*slope + intercept
	}, pixels)
	return out, nil
}
