package dicommeta

import (
	"testing"

	"github.com/suyashkumar/dicom"
	"github.com/suyashkumar/dicom/pkg/tag"
)

func mustElement(t *testing.T, tg tag.Tag, value interface{}) *dicom.Element {
	t.Helper()
	el, err := dicom.NewElement(tg, value)
	if err != nil {
		t.Fatalf("NewElement(%v) failed: %v", tg, err)
	}
	return el
}

// TestFloatValueRescaleAttributes verifies that the decimal-string rescale
// attributes resolve to floats by keyword.
func TestFloatValueRescaleAttributes(t *testing.T) {
	ds := &dicom.Dataset{Elements: []*dicom.Element{
		mustElement(t, tag.RescaleSlope, []string{"2.0"}),
		mustElement(t, tag.RescaleIntercept, []string{"-1024"}),
	}}
	meta := Wrap(ds)

	slope, ok := meta.FloatValue("RescaleSlope")
	if !ok {
		t.Fatalf("Expected RescaleSlope to be present")
	}
	if slope != 2.0 {
		t.Errorf("Expected slope=2.0, got %f", slope)
	}

	intercept, ok := meta.FloatValue("RescaleIntercept")
	if !ok {
		t.Fatalf("Expected RescaleIntercept to be present")
	}
	if intercept != -1024.0 {
		t.Errorf("Expected intercept=-1024.0, got %f", intercept)
	}
}

// TestFloatValueAbsent verifies that missing and unknown attributes report
// ok=false without erroring.
func TestFloatValueAbsent(t *testing.T) {
	meta := Wrap(&dicom.Dataset{})

	if _, ok := meta.FloatValue("RescaleSlope"); ok {
		t.Errorf("Expected absent RescaleSlope to report ok=false")
	}
	if _, ok := meta.FloatValue("NotADicomKeyword"); ok {
		t.Errorf("Expected unknown keyword to report ok=false")
	}

	var nilDataset *Dataset
	if _, ok := nilDataset.FloatValue("RescaleSlope"); ok {
		t.Errorf("Expected nil dataset to report ok=false")
	}
}

// TestFloatFromValue covers the value coercions seen in real datasets:
// decimal strings, floats, and unsigned shorts.
func TestFloatFromValue(t *testing.T) {
	cases := []struct {
		name   string
		in     interface{}
		want   float64
		wantOK bool
	}{
		{"decimal string", []string{"1.5"}, 1.5, true},
		{"padded decimal string", []string{" -3.25 "}, -3.25, true},
		{"float slice", []float64{0.75}, 0.75, true},
		{"int slice", []int{512}, 512, true},
		{"empty strings", []string{}, 0, false},
		{"non-numeric string", []string{"HFS"}, 0, false},
		{"unsupported type", "scalar", 0, false},
	}

	for _, tc := range cases {
		got, ok := floatFromValue(tc.in)
		if ok != tc.wantOK {
			t.Errorf("%s: expected ok=%v, got %v", tc.name, tc.wantOK, ok)
			continue
		}
		if ok && got != tc.want {
			t.Errorf("%s: expected %f, got %f", tc.name, tc.want, got)
		}
	}
}

// TestSignExtend verifies two's-complement reinterpretation at the widths
// CT data actually uses.
func TestSignExtend(t *testing.T) {
	cases := []struct {
		v, bits, want int
	}{
		{0, 16, 0},
		{1000, 16, 1000},
		{0xFFFF, 16, -1},
		{0x8000, 16, -32768},
		{0x7FFF, 16, 32767},
		{0xFFF, 12, -1},
		{100, 12, 100},
		{5, 0, 5},
	}
	for _, tc := range cases {
		if got := signExtend(tc.v, tc.bits); got != tc.want {
			t.Errorf("signExtend(%d, %d): expected %d, got %d", tc.v, tc.bits, tc.want, got)
		}
	}
}
