package model

import "errors"

var (
	// ErrUnknownModel indicates a selector that is not one of the fifteen
	// catalog identifiers, names, labels or menu numbers.
	ErrUnknownModel = errors.New("model: unknown model identifier")

	// ErrShapeMismatch indicates that a temperature vector can neither be
	// broadcast (length 1) nor matched element-wise to the time vector.
	ErrShapeMismatch = errors.New("model: times and temperatures cannot be broadcast")
)
