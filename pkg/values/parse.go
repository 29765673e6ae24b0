package values

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseCSV reads a comma-separated table with a header row into a Table.
// Every cell below the header must be numeric.
func ParseCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyValues
	}
	names := records[0]
	cols := make([][]float64, len(names))
	for c := range cols {
		cols[c] = make([]float64, 0, len(records)-1)
	}
	for i, rec := range records[1:] {
		if len(rec) != len(names) {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i+1, len(rec), len(names), ErrInputType)
		}
		for c, cell := range rec {
			f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %q is not numeric: %w", i+1, names[c], cell, ErrInputType)
			}
			cols[c] = append(cols[c], f)
		}
	}
	if len(cols) > 0 && len(cols[0]) == 0 {
		return nil, ErrEmptyValues
	}
	return &Table{Names: names, Cols: cols}, nil
}

// ParseKeyed reads the keyed stream format used by the key-based metrics:
// semicolon-separated, two columns (key, value), no header. This is a
// distinct format from the CSV-with-header tables and must not be
// conflated with it. Duplicate keys are rejected.
func ParseKeyed(r io.Reader) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading keyed stream: %w", err)
	}
	out := make(map[string]string, len(records))
	for i, rec := range records {
		if len(rec) != 2 {
			return nil, fmt.Errorf("line %d has %d columns, want 2: %w", i+1, len(rec), ErrInputType)
		}
		k := strings.TrimSpace(rec[0])
		if _, ok := out[k]; ok {
			return nil, fmt.Errorf("key %q present at least twice: %w", k, ErrDuplicateKey)
		}
		out[k] = rec[1]
	}
	return out, nil
}

// ParseKeyedFloats is ParseKeyed with numeric values.
func ParseKeyedFloats(r io.Reader) (map[string]float64, error) {
	raw, err := ParseKeyed(r)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(raw))
	for k, v := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("key %q: %q is not numeric: %w", k, v, ErrInputType)
		}
		out[k] = f
	}
	return out, nil
}

// KeyedReader resolves the text form of a keyed stream: inline content
// when it contains a newline, a file path otherwise.
func KeyedReader(text string) (io.Reader, func(), error) {
	if strings.Contains(text, "\n") {
		return strings.NewReader(text), func() {}, nil
	}
	f, err := os.Open(text)
	if err != nil {
		return nil, nil, fmt.Errorf("opening keyed stream %s: %w", text, err)
	}
	return f, func() { f.Close() }, nil
}
