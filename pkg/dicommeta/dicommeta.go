// Package dicommeta adapts a parsed DICOM dataset to the imagefilter
// metadata interface and extracts native pixel data as a dense matrix.
// Parsing itself is delegated entirely to the dicom library; this package
// only resolves attributes and reshapes pixel frames.
package dicommeta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
	"gonum.org/v1/gonum/mat"
)

// ErrNoPixelData is returned when a dataset carries no usable native
// pixel-data frame.
var ErrNoPixelData = errors.New("dicommeta: dataset has no native pixel data")

// Dataset wraps a dicom.Dataset and implements imagefilter.Metadata by
// resolving attribute keywords against the standard tag dictionary.
type Dataset struct {
	ds *dicom.Dataset
}

// Wrap returns a metadata view over ds. The dataset is borrowed, not
// copied.
func Wrap(ds *dicom.Dataset) *Dataset {
	return &Dataset{ds: ds}
}

// FloatValue resolves the named DICOM attribute (e.g. "RescaleSlope") to a
// float64. Unknown keywords, absent elements, and non-numeric values all
// report ok=false; none of them is an error.
func (d *Dataset) FloatValue(name string) (float64, bool) {
	if d == nil || d.ds == nil {
		return 0, false
	}
	info, err := tag.FindByName(name)
	if err != nil {
		return 0, false
	}
	el, err := d.ds.FindElementByTag(info.Tag)
	if err != nil {
		return 0, false
	}
	return floatFromValue(el.Value.GetValue())
}

// floatFromValue coerces the first entry of a DICOM element value to
// float64. Decimal strings (DS/IS) arrive as []string and are parsed.
func floatFromValue(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return 0, false
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(val[0]), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case []float64:
		if len(val) == 0 {
			return 0, false
		}
		return val[0], true
	case []int:
		if len(val) == 0 {
			return 0, false
		}
		return float64(val[0]), true
	default:
		return 0, false
	}
}

// PixelArray extracts the first pixel-data frame as a rows x cols matrix,
// taking the first sample of each pixel. Signed pixel data
// (PixelRepresentation=1) is sign-extended from its stored bit width.
// Encapsulated (compressed) transfer syntaxes are not supported.
func (d *Dataset) PixelArray() (*mat.Dense, error) {
	el, err := d.ds.FindElementByTag(tag.PixelData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPixelData, err)
	}

	info := dicom.MustGetPixelDataInfo(el.Value)
	if info.IsEncapsulated {
		return nil, errors.New("dicommeta: encapsulated pixel data is not supported, decode it first")
	}
	if len(info.Frames) == 0 {
		return nil, ErrNoPixelData
	}

	native, err := info.Frames[0].GetNativeFrame()
	if err != nil {
		return nil, fmt.Errorf("reading native frame: %w", err)
	}
	if native.Rows <= 0 || native.Cols <= 0 {
		return nil, fmt.Errorf("dicommeta: invalid frame dimensions %dx%d", native.Rows, native.Cols)
	}

	signed := false
	if rep, ok := d.FloatValue("PixelRepresentation"); ok && rep == 1 {
		signed = true
	}

	out := mat.NewDense(native.Rows, native.Cols, nil)
	n := native.Rows * native.Cols
	if len(native.Data) < n {
		return nil, fmt.Errorf("dicommeta: frame has %d pixels, expected %d", len(native.Data), n)
	}
	for i := 0; i < n; i++ {
		v := native.Data[i][0]
		if signed {
			v = signExtend(v, native.BitsPerSample)
		}
		out.Set(i/native.Cols, i%native.Cols, float64(v))
	}
	return out, nil
}

// signExtend reinterprets v as a two's-complement value of the given bit
// width. The dicom library decodes samples as unsigned integers, so signed
// modalities (CT in particular) need this before rescaling.
func signExtend(v, bits int) int {
	if bits <= 0 || bits >= 64 {
		return v
	}
	if v >= 1<<(bits-1) {
		return v - 1<<bits
	}
	return v
}

// Load parses a DICOM file and returns its metadata view together with the
// first pixel frame.
func Load(path string) (*Dataset, *mat.Dense, error) {
	ds, err := dicom.ParseFile(path, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	meta := Wrap(&ds)
	pixels, err := meta.PixelArray()
	if err != nil {
		return nil, nil, err
	}
	return meta, pixels, nil
}
