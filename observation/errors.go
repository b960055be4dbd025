package observation

import "errors"

var (
	// ErrInvalidObservationSet indicates empty input, columns of unequal
	// length, or a value outside its physical range.
	ErrInvalidObservationSet = errors.New("observation: invalid observation set")

	// ErrMalformedInput indicates an unreadable table: missing header, a
	// missing required column, or a cell that is not a number.
	ErrMalformedInput = errors.New("observation: malformed input")

	// ErrUnsupportedFormat indicates a file extension with no reader.
	ErrUnsupportedFormat = errors.New("observation: unsupported file format")
)
