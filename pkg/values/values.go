package values

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"sort"
	"strings"
)

var (
	// ErrInputType indicates a payload of an unsupported category
	// (fixed-size arrays included, even though they are iterable).
	ErrInputType = errors.New("unsupported value type")

	// ErrEmptyValues indicates an empty sequence where samples were expected.
	ErrEmptyValues = errors.New("empty values")

	// ErrDuplicateKey indicates a key appearing more than once in a keyed stream.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Coerce normalizes a submission payload into a Table. Accepted shapes:
//
//   - []float64, []int, or []any of numbers: a single column
//   - [][]float64 (or []any of sequences): a matrix, transposed when it has
//     fewer rows than columns (the long axis is always samples)
//   - map[string]map[string]float64: one inner map per row, named fields
//   - string containing a newline: inline CSV, comma-separated, header row
//   - string without a newline: path to a CSV file
//   - *Table: returned as-is
//
// Fixed-size arrays are rejected even though they are iterable: accepting
// them hides a class of caller mistakes that slices do not.
func Coerce(v any) (*Table, error) {
	switch x := v.(type) {
	case *Table:
		return x, nil
	case []float64:
		return fromScalars(x)
	case []int:
		fs := make([]float64, len(x))
		for i, n := range x {
			fs[i] = float64(n)
		}
		return fromScalars(fs)
	case [][]float64:
		if len(x) == 0 {
			return nil, ErrEmptyValues
		}
		return fromRows(x)
	case []any:
		return fromMixed(x)
	case map[string]map[string]float64:
		return fromMaps(x)
	case string:
		if strings.Contains(x, "\n") {
			return ParseCSV(strings.NewReader(x))
		}
		return readCSVFile(x)
	}
	if reflect.ValueOf(v).Kind() == reflect.Array {
		return nil, fmt.Errorf("fixed-size array not accepted, use a slice: %w", ErrInputType)
	}
	return nil, fmt.Errorf("cannot coerce %T into a table: %w", v, ErrInputType)
}

func fromScalars(col []float64) (*Table, error) {
	if len(col) == 0 {
		return nil, ErrEmptyValues
	}
	return &Table{Names: syntheticNames(1), Cols: [][]float64{col}}, nil
}

// fromRows builds a table from row-major data, transposing when the
// sample axis is the short one.
func fromRows(rows [][]float64) (*Table, error) {
	nc := len(rows[0])
	if nc == 0 {
		return nil, ErrEmptyValues
	}
	for _, r := range rows {
		if len(r) != nc {
			return nil, fmt.Errorf("ragged rows: %d != %d: %w", len(r), nc, ErrInputType)
		}
	}
	if len(rows) < nc {
		// fewer rows than columns: the long axis is samples
		t := make([][]float64, len(rows))
		for i, r := range rows {
			t[i] = r
		}
		cols := t
		return &Table{Names: syntheticNames(len(cols)), Cols: cols}, nil
	}
	cols := make([][]float64, nc)
	for c := range cols {
		cols[c] = make([]float64, len(rows))
		for r := range rows {
			cols[c][r] = rows[r][c]
		}
	}
	return &Table{Names: syntheticNames(nc), Cols: cols}, nil
}

func fromMixed(items []any) (*Table, error) {
	if len(items) == 0 {
		return nil, ErrEmptyValues
	}
	if _, err := toFloat(items[0]); err == nil {
		col := make([]float64, len(items))
		for i, it := range items {
			f, err := toFloat(it)
			if err != nil {
				return nil, err
			}
			col[i] = f
		}
		return fromScalars(col)
	}
	rows := make([][]float64, len(items))
	for i, it := range items {
		row, err := toFloats(it)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return fromRows(rows)
}

func fromMaps(m map[string]map[string]float64) (*Table, error) {
	if len(m) == 0 {
		return nil, ErrEmptyValues
	}
	keys := make([]string, 0, len(m))
	var names []string
	for k, row := range m {
		keys = append(keys, k)
		for f := range row {
			if !contains(names, f) {
				names = append(names, f)
			}
		}
	}
	sort.Strings(keys)
	sort.Strings(names)
	cols := make([][]float64, len(names))
	for c := range cols {
		cols[c] = make([]float64, len(keys))
		for r, k := range keys {
			cols[c][r] = m[k][names[c]]
		}
	}
	return &Table{Names: names, Cols: cols}, nil
}

func readCSVFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening values file %s: %w", path, err)
	}
	defer f.Close()
	t, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parsing values file %s: %w", path, err)
	}
	t.Source = path
	return t, nil
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%T is not a number: %w", v, ErrInputType)
}

func toFloats(v any) ([]float64, error) {
	switch s := v.(type) {
	case []float64:
		return s, nil
	case []int:
		fs := make([]float64, len(s))
		for i, n := range s {
			fs[i] = float64(n)
		}
		return fs, nil
	case []any:
		fs := make([]float64, len(s))
		for i, it := range s {
			f, err := toFloat(it)
			if err != nil {
				return nil, err
			}
			fs[i] = f
		}
		return fs, nil
	}
	return nil, fmt.Errorf("%T is not a sequence of numbers: %w", v, ErrInputType)
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}
