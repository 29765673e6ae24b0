package values

import (
	"fmt"
	"strconv"
	"strings"
)

// Table is the canonical tabular form for numeric submissions:
// ordered named columns of equal length, one row per sample.
type Table struct {
	Names []string
	Cols  [][]float64

	// Source holds the file path the table was parsed from, when any.
	// Kept for provenance only.
	Source string
}

func NewTable(names []string, cols [][]float64) (*Table, error) {
	if len(names) != len(cols) {
		return nil, fmt.Errorf("%d names for %d columns: %w", len(names), len(cols), ErrInputType)
	}
	for i, c := range cols {
		if len(c) != len(cols[0]) {
			return nil, fmt.Errorf("column %q has %d rows, want %d: %w", names[i], len(c), len(cols[0]), ErrInputType)
		}
	}
	return &Table{Names: names, Cols: cols}, nil
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Cols)
}

// NumRows returns the number of samples.
func (t *Table) NumRows() int {
	if len(t.Cols) == 0 {
		return 0
	}
	return len(t.Cols[0])
}

// Col returns the values of column i.
func (t *Table) Col(i int) []float64 {
	return t.Cols[i]
}

// Rows returns the table content in row-major order.
func (t *Table) Rows() [][]float64 {
	rows := make([][]float64, t.NumRows())
	for r := range rows {
		row := make([]float64, t.NumCols())
		for c := range row {
			row[c] = t.Cols[c][r]
		}
		rows[r] = row
	}
	return rows
}

// CSV renders the table as comma-separated text with a header row and
// no index column. Floats use the shortest representation that parses
// back exactly, so a serialize/parse cycle is lossless.
func (t *Table) CSV() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(t.Names, ","))
	sb.WriteString("\n")
	for r := 0; r < t.NumRows(); r++ {
		for c := 0; c < t.NumCols(); c++ {
			if c > 0 {
				sb.WriteString(",")
			}
			sb.WriteString(strconv.FormatFloat(t.Cols[c][r], 'g', -1, 64))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// synthetic column names: exp0, exp1, ...
func syntheticNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("exp%d", i)
	}
	return names
}
