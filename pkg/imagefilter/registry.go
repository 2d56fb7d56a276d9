package imagefilter

import (
	"fmt"
	"strings"
)

// Kind identifies a filter variant in the catalog. The numeric values are
// stable; configuration and UI code may persist them.
type Kind int

const (
	KindTransformToHU Kind = iota
	KindWindowing
	KindMorphologyDilate
	KindMorphologyErode

	kindCount // must stay last
)

// Count returns the number of filter variants in the catalog.
func Count() int { return int(kindCount) }

// Kinds returns every valid filter kind in catalog order.
func Kinds() []Kind {
	kinds := make([]Kind, kindCount)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// String returns the short name of the kind, as accepted by ParseKind.
func (k Kind) String() string {
	switch k {
	case KindTransformToHU:
		return "hu"
	case KindWindowing:
		return "window"
	case KindMorphologyDilate:
		return "dilate"
	case KindMorphologyErode:
		return "erode"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind resolves a short filter name to its Kind. Matching is
// case-insensitive.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "hu", "transform2hu":
		return KindTransformToHU, nil
	case "window", "windowing", "ctwindowing":
		return KindWindowing, nil
	case "dilate":
		return KindMorphologyDilate, nil
	case "erode":
		return KindMorphologyErode, nil
	default:
		return 0, fmt.Errorf("unknown filter name %q", name)
	}
}

// New constructs a fresh filter of the given kind with default parameters.
// Each call returns a new instance; filters share no state across calls.
func New(kind Kind) (Filter, error) {
	switch kind {
	case KindTransformToHU:
		return NewTransformToHU(), nil
	case KindWindowing:
		return NewWindowing(), nil
	case KindMorphologyDilate:
		return NewMorphology(MorphDilate), nil
	case KindMorphologyErode:
		return NewMorphology(MorphErode), nil
	default:
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrFilterOutOfRange, int(kind), int(kindCount))
	}
}
