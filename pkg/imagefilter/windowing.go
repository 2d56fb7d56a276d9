package imagefilter

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// WindowingParams configures the Windowing filter. Level is the center of
// the intensity band and Width its span, both in the same units as the
// pixel values (typically Hounsfield units).
type WindowingParams struct {
	Level int
	Width int
}

// DefaultWindowingParams returns the soft-tissue window used when no
// configuration overrides it.
func DefaultWindowingParams() WindowingParams {
	return WindowingParams{Level: 40, Width: 48}
}

// Windowing clamps pixel intensities to a band around a level, mapping the
// clinically relevant range onto the full displayed gray scale.
type Windowing struct {
	params WindowingParams
}

// NewWindowing returns a windowing filter with default parameters.
func NewWindowing() *Windowing {
	return &Windowing{params: DefaultWindowingParams()}
}

// Params returns the current window parameters.
func (f *Windowing) Params() WindowingParams { return f.params }

// SetParams replaces the window parameters. Takes effect on the next
// Dispatch call.
func (f *Windowing) SetParams(p WindowingParams) { f.params = p }

// DisplayName implements Filter.
func (f *Windowing) DisplayName() string { return "CTWindowing" }

// DisplayDescription implements Filter.
func (f *Windowing) DisplayDescription() string { return "Threshold-like HU gray level mapping" }

// Inplace implements Filter.
func (f *Windowing) Inplace() bool { return false }

// Dispatch clamps every element of pixels to [level-width/2, level+width/2]
// and returns the same array. The half-width uses floor division so that
// odd widths behave identically to the original tooling.
func (f *Windowing) Dispatch(meta Metadata, pixels *mat.Dense) (*mat.Dense, error) {
	p := f.params

	half := floorDiv(p.Width, 2)
	imgMin := float64(p.Level - half)
	imgMax := float64(p.Level + half)

	rows, cols := pixels.Dims()
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := pixels.At(i, j)
			if v < imgMin {
				pixels.Set(i, j, imgMin)
			} else if v > imgMax {
				pixels.Set(i, j, imgMax)
			}
		}
	}
	return pixels, nil
}

// EstimateWindow derives window parameters from the pixel statistics:
// the level is the mean intensity and the width spans two standard
// deviations either side. Useful as a starting point before manual
// adjustment; it never returns a width below 1.
func EstimateWindow(pixels *mat.Dense) WindowingParams {
	rows, cols := pixels.Dims()
	data := make([]float64, 0, rows*cols)
	for i := 0; i < rows; i++ {
		data = append(data, pixels.RawRowView(i)[:cols]...)
	}
	mean, std := stat.MeanStdDev(data, nil)
	if math.IsNaN(std) {
		std = 0
	}

	width := int(math.Round(4 * std))
	if width < 1 {
		width = 1
	}
	return WindowingParams{
		Level: int(math.Round(mean)),
		Width: width,
	}
}
