package values

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_FloatSlice(t *testing.T) {
	tbl, err := Coerce([]float64{0, 1, 2})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumCols())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{"exp0"}, tbl.Names)
	assert.Equal(t, []float64{0, 1, 2}, tbl.Col(0))
}

func TestCoerce_IntSlice(t *testing.T) {
	tbl, err := Coerce([]int{4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, tbl.Col(0))
}

func TestCoerce_Rows(t *testing.T) {
	tbl, err := Coerce([][]float64{{1, 2}, {3, 4}, {5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{"exp0", "exp1"}, tbl.Names)
	assert.Equal(t, []float64{1, 3, 5}, tbl.Col(0))
	assert.Equal(t, []float64{2, 4, 6}, tbl.Col(1))
}

func TestCoerce_TransposesWideInput(t *testing.T) {
	// one row of three values: the long axis is samples
	tbl, err := Coerce([][]float64{{0, 1, 2}})
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumCols())
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []float64{0, 1, 2}, tbl.Col(0))
}

func TestCoerce_MixedScalars(t *testing.T) {
	tbl, err := Coerce([]any{0, 1.5, 2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1.5, 2}, tbl.Col(0))
}

func TestCoerce_MixedRows(t *testing.T) {
	tbl, err := Coerce([]any{[]any{1, 2}, []any{3, 4}, []any{5, 6}})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumCols())
	assert.Equal(t, []float64{1, 3, 5}, tbl.Col(0))
}

func TestCoerce_Maps(t *testing.T) {
	tbl, err := Coerce(map[string]map[string]float64{
		"r2": {"b": 4, "a": 3},
		"r1": {"a": 1, "b": 2},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, tbl.Names)
	assert.Equal(t, []float64{1, 3}, tbl.Col(0))
	assert.Equal(t, []float64{2, 4}, tbl.Col(1))
}

func TestCoerce_InlineCSV(t *testing.T) {
	tbl, err := Coerce("one,two\n1,2\n3,4\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two"}, tbl.Names)
	assert.Equal(t, []float64{1, 3}, tbl.Col(0))
	assert.Empty(t, tbl.Source)
}

func TestCoerce_CSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("exp0\n0\n1\n2\n"), 0600))

	tbl, err := Coerce(path)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2}, tbl.Col(0))
	assert.Equal(t, path, tbl.Source)
}

func TestCoerce_MissingFile(t *testing.T) {
	_, err := Coerce(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestCoerce_Table(t *testing.T) {
	in := &Table{Names: []string{"x"}, Cols: [][]float64{{1}}}
	tbl, err := Coerce(in)
	require.NoError(t, err)
	assert.Same(t, in, tbl)
}

func TestCoerce_Empty(t *testing.T) {
	for _, v := range []any{
		[]float64{},
		[][]float64{},
		[]any{},
		map[string]map[string]float64{},
	} {
		_, err := Coerce(v)
		assert.ErrorIs(t, err, ErrEmptyValues, "%T", v)
	}
}

func TestCoerce_RejectsFixedSizeArray(t *testing.T) {
	_, err := Coerce([3]float64{0, 1, 2})
	assert.ErrorIs(t, err, ErrInputType)
}

func TestCoerce_RejectsUnsupportedTypes(t *testing.T) {
	for _, v := range []any{true, 42, struct{}{}, []any{true, false}} {
		_, err := Coerce(v)
		assert.ErrorIs(t, err, ErrInputType, "%T", v)
	}
}

func TestCoerce_RaggedRows(t *testing.T) {
	_, err := Coerce([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInputType)
}
