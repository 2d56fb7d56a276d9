package imagefilter

import (
	"errors"
	"testing"
)

// TestNewOutOfRange verifies that indices outside the catalog fail with
// ErrFilterOutOfRange.
func TestNewOutOfRange(t *testing.T) {
	for _, kind := range []Kind{-1, Kind(Count()), Kind(Count() + 10)} {
		if _, err := New(kind); !errors.Is(err, ErrFilterOutOfRange) {
			t.Errorf("New(%d): expected ErrFilterOutOfRange, got %v", int(kind), err)
		}
	}
}

// TestNewCatalog verifies that every valid kind constructs a filter with a
// non-empty name and description, and that descriptors match the catalog.
func TestNewCatalog(t *testing.T) {
	if Count() != 4 {
		t.Fatalf("Expected 4 filters in the catalog, got %d", Count())
	}

	expected := []struct {
		kind    Kind
		name    string
		inplace bool
	}{
		{KindTransformToHU, "Transform2HU", false},
		{KindWindowing, "CTWindowing", false},
		{KindMorphologyDilate, "Dilate", true},
		{KindMorphologyErode, "Erode", true},
	}

	for _, tc := range expected {
		filter, err := New(tc.kind)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", tc.kind, err)
		}
		if filter.DisplayName() != tc.name {
			t.Errorf("Expected name %q, got %q", tc.name, filter.DisplayName())
		}
		if filter.DisplayDescription() == "" {
			t.Errorf("%s: expected a non-empty description", tc.kind)
		}
		if filter.Inplace() != tc.inplace {
			t.Errorf("%s: expected inplace=%v, got %v", tc.kind, tc.inplace, filter.Inplace())
		}
	}
}

// TestNewDefaults verifies the documented default parameters.
func TestNewDefaults(t *testing.T) {
	f, err := New(KindWindowing)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	w := f.(*Windowing)
	if p := w.Params(); p.Level != 40 || p.Width != 48 {
		t.Errorf("Expected windowing defaults level=40 width=48, got level=%d width=%d", p.Level, p.Width)
	}

	for _, kind := range []Kind{KindMorphologyDilate, KindMorphologyErode} {
		f, err := New(kind)
		if err != nil {
			t.Fatalf("New(%s) failed: %v", kind, err)
		}
		m := f.(*Morphology)
		if p := m.Params(); p.KernelX != 5 || p.KernelY != 5 || p.Iterations != 1 {
			t.Errorf("%s: expected kernel 5x5 iterations=1, got %+v", kind, p)
		}
	}
}

// TestNewReturnsFreshInstances verifies that parameter edits on one
// instance never leak into another.
func TestNewReturnsFreshInstances(t *testing.T) {
	a, err := New(KindWindowing)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	a.(*Windowing).SetParams(WindowingParams{Level: 300, Width: 1500})

	b, err := New(KindWindowing)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if p := b.(*Windowing).Params(); p.Level != 40 || p.Width != 48 {
		t.Errorf("Expected a fresh instance with defaults, got %+v", p)
	}
}

// TestParseKind verifies the short-name lookup used by the CLI.
func TestParseKind(t *testing.T) {
	cases := []struct {
		in   string
		want Kind
	}{
		{"hu", KindTransformToHU},
		{"HU", KindTransformToHU},
		{"window", KindWindowing},
		{"windowing", KindWindowing},
		{"dilate", KindMorphologyDilate},
		{" erode ", KindMorphologyErode},
	}
	for _, tc := range cases {
		got, err := ParseKind(tc.in)
		if err != nil {
			t.Errorf("ParseKind(%q) failed: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseKind(%q): expected %s, got %s", tc.in, tc.want, got)
		}
	}

	if _, err := ParseKind("sharpen"); err == nil {
		t.Errorf("Expected an error for an unknown filter name")
	}
}

// TestKinds verifies catalog order stability.
func TestKinds(t *testing.T) {
	kinds := Kinds()
	if len(kinds) != Count() {
		t.Fatalf("Expected %d kinds, got %d", Count(), len(kinds))
	}
	for i, k := range kinds {
		if int(k) != i {
			t.Errorf("Expected kinds[%d]=%d, got %d", i, i, int(k))
		}
	}
}
