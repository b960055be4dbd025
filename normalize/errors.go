package normalize

import "errors"

// ErrLengthMismatch indicates temperature and progress vectors of
// different lengths.
var ErrLengthMismatch = errors.New("normalize: temperatures and progress differ in length")
