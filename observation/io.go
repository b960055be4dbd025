package observation

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadCSV parses a comma-separated table with a header row.
func ReadCSV(r io.Reader) (*Set, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: csv: %v", ErrMalformedInput, err)
	}
	return fromRows(rows)
}

// WriteCSV writes s with the canonical header.
func WriteCSV(w io.Writer, s *Set) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(toRows(s)); err != nil {
		return fmt.Errorf("observation: write csv: %w", err)
	}
	return nil
}

// ReadXLSX reads the named sheet of a workbook; an empty sheet name selects
// the first sheet.
func ReadXLSX(path, sheet string) (*Set, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("observation: open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: workbook has no sheets", ErrMalformedInput)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", ErrMalformedInput, sheet, err)
	}
	return fromRows(rows)
}

// WriteXLSX saves s to a new workbook with a single "Sheet1".
func WriteXLSX(path string, s *Set) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"
	set := func(col, row int, v any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, v)
	}
	for c, name := range Columns {
		if err := set(c+1, 1, name); err != nil {
			return fmt.Errorf("observation: write xlsx: %w", err)
		}
	}
	for i := 0; i < s.Len(); i++ {
		t, temp, ini, fin := s.Record(i)
		for c, v := range [...]float64{t, temp, ini, fin} {
			if err := set(c+1, i+2, v); err != nil {
				return fmt.Errorf("observation: write xlsx: %w", err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("observation: write xlsx: %w", err)
	}
	return nil
}

// Load reads path with the reader chosen by its extension (.csv, .xlsx).
func Load(path string) (*Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("observation: %w", err)
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		return ReadXLSX(path, "")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Save writes s to path with the writer chosen by its extension.
func Save(path string, s *Set) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("observation: %w", err)
		}
		if err := WriteCSV(f, s); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case ".xlsx":
		return WriteXLSX(path, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}
