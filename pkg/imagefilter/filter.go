// Package imagefilter provides pluggable pixel-array transforms for DICOM
// images: Hounsfield-unit rescaling, intensity windowing, and grayscale
// morphological dilate/erode. Filters are single-pass, synchronous functions
// over a 2D pixel array and are selected from a fixed registry.
package imagefilter

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Metadata attribute names read by filters. They mirror the DICOM
// attribute keywords of the same name.
const (
	KeyRescaleSlope     = "RescaleSlope"
	KeyRescaleIntercept = "RescaleIntercept"
)

// Errors reported by the package. Callers match with errors.Is.
var (
	// ErrFilterOutOfRange is returned by New for a Kind outside the catalog.
	ErrFilterOutOfRange = errors.New("imagefilter: filter kind out of range")

	// ErrInvalidParameter is returned by Dispatch when a filter's current
	// parameters are outside their valid domain (e.g. a non-positive
	// morphology kernel dimension).
	ErrInvalidParameter = errors.New("imagefilter: invalid filter parameter")
)

// Metadata is a capability-checked lookup of optional numeric image
// attributes. FloatValue reports the value of the named attribute and
// whether it is present; absence is not an error.
type Metadata interface {
	FloatValue(name string) (float64, bool)
}

// MapMeta is a plain map-backed Metadata, convenient for tests and for
// callers that assemble attributes by hand.
type MapMeta map[string]float64

// FloatValue implements Metadata.
func (m MapMeta) FloatValue(name string) (float64, bool) {
	v, ok := m[name]
	return v, ok
}

// Filter is a single pixel-array transform. Implementations are pure
// functions of (metadata, pixel array, current parameters); they hold no
// shared state beyond their own parameter fields and must be used by one
// caller at a time.
type Filter interface {
	// DisplayName returns a short human-readable name for the filter.
	DisplayName() string

	// DisplayDescription returns a one-line description of the filter.
	DisplayDescription() string

	// Inplace reports whether Dispatch mutates the input buffer and
	// returns the same reference. Callers that need the original pixels
	// afterwards must copy before dispatching an in-place filter.
	Inplace() bool

	// Dispatch applies the filter to pixels and returns the result, which
	// is either a new array of identical shape or the input itself.
	// Parameters are read once, as a snapshot, at the start of the call.
	Dispatch(meta Metadata, pixels *mat.Dense) (*mat.Dense, error)
}

// floorDiv divides a by b rounding toward negative infinity. Go's integer
// division truncates toward zero, which differs for negative operands; the
// windowing bounds depend on floor semantics.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
