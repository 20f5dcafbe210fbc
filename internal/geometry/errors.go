package geometry

import "errors"

// Error kinds the geometry/codec layer distinguishes, per spec.md 7.
var (
	// ErrOutOfRangeCoord is returned when a textual or array decode
	// produces a value outside its valid bounds. The caller's state is
	// left unchanged.
	ErrOutOfRangeCoord = errors.New("geometry: coordinate or cell value out of range")

	// ErrArraySize is returned when a 29-element external array decode
	// receives a slice whose length is not 29.
	ErrArraySize = errors.New("geometry: external state array must have exactly 29 elements")
)
