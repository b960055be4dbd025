// Package observation holds the Observation Set: paired time, temperature
// and initial/final amount measurements taken from one decomposition run.
//
// A Set is immutable once constructed. Every accessor returns a copy, so a
// Set may be shared between concurrent fits.
//
// Sets are built from slices (New), CSV (ReadCSV), XLSX workbooks
// (ReadXLSX) or a path whose extension selects the reader (Load). Tabular
// sources address columns by header name:
//
//	time_data      seconds, ≥ 0
//	temp_data      Kelvin, > 0
//	initmol_data   initial amount, > 0
//	finalmol_data  final amount, ≥ 0
//
// Column order is free, extra columns are ignored and cells are trimmed.
// The progress fraction of record i is Final[i] / Initial[i].
package observation
