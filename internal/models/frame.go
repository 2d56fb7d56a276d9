package models

import (
	"gonum.org/v1/gonum/mat"

	"dicomfilter/pkg/imagefilter"
)

// Frame represents a single image frame moving through the filter chain
type Frame struct {
	// Pixels is the 2D pixel array, mutated or replaced by filters
	Pixels *mat.Dense

	// Meta is the metadata view of the source dataset
	Meta imagefilter.Metadata

	// Filename is the source file the frame was read from
	Filename string

	// Index is the frame's position within a multi-frame source
	Index int
}

// ChainStep records one applied filter for reporting
type ChainStep struct {
	// Kind identifies the filter that was applied
	Kind imagefilter.Kind

	// Name is the filter's display name
	Name string

	// Inplace reports whether the step mutated the frame buffer
	Inplace bool
}
