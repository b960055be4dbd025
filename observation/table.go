package observation

import (
	"fmt"
	"strconv"
	"strings"
)

// fromRows converts a header-addressed table into a Set. Blank rows are
// skipped; short rows are malformed.
//
// Complexity: O(rows·cols).
func fromRows(rows [][]string) (*Set, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header row", ErrMalformedInput)
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	cols := make([]int, len(Columns))
	for c, name := range Columns {
		pos, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedInput, name)
		}
		cols[c] = pos
	}

	data := make([][]float64, len(Columns))
	for r, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := r + 2 // 1-based, header is line 1
		for c, pos := range cols {
			if pos >= len(row) {
				return nil, fmt.Errorf("%w: row %d: missing %s", ErrMalformedInput, line, Columns[c])
			}
			cell := strings.TrimSpace(row[pos])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d, column %s: %q is not a number",
					ErrMalformedInput, line, Columns[c], cell)
			}
			data[c] = append(data[c], v)
		}
	}

	return New(data[0], data[1], data[2], data[3])
}

// toRows renders a Set as a header row followed by one row per record.
func toRows(s *Set) [][]string {
	rows := make([][]string, 0, s.Len()+1)
	rows = append(rows, append([]string(nil), Columns...))
	for i := 0; i < s.Len(); i++ {
		t, temp, ini, fin := s.Record(i)
		rows = append(rows, []string{formatFloat(t), formatFloat(temp), formatFloat(ini), formatFloat(fin)})
	}
	return rows
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
