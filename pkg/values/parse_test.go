package values

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	tbl, err := ParseCSV(strings.NewReader("x,y\n1,2\n3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tbl.Names)
	assert.Equal(t, []float64{1, 3}, tbl.Col(0))
	assert.Equal(t, []float64{2, 4}, tbl.Col(1))
}

func TestParseCSV_NonNumericCell(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("x\n1\nabc\n"))
	assert.ErrorIs(t, err, ErrInputType)
}

func TestParseCSV_HeaderOnly(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("x,y\n"))
	assert.ErrorIs(t, err, ErrEmptyValues)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrEmptyValues)
}

func TestParseKeyed(t *testing.T) {
	m, err := ParseKeyed(strings.NewReader("0;4\n1;6,7\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"0": "4", "1": "6,7"}, m)
}

func TestParseKeyed_DuplicateKey(t *testing.T) {
	_, err := ParseKeyed(strings.NewReader("0;4\n0;5\n"))
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestParseKeyed_WrongColumnCount(t *testing.T) {
	_, err := ParseKeyed(strings.NewReader("0;4;5\n"))
	assert.ErrorIs(t, err, ErrInputType)
}

func TestParseKeyedFloats(t *testing.T) {
	m, err := ParseKeyedFloats(strings.NewReader("a;1.5\nb;2\n"))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 1.5, "b": 2}, m)
}

func TestParseKeyedFloats_NonNumeric(t *testing.T) {
	_, err := ParseKeyedFloats(strings.NewReader("a;one\n"))
	assert.ErrorIs(t, err, ErrInputType)
}

func TestKeyedReader_Inline(t *testing.T) {
	r, done, err := KeyedReader("a;1\nb;2\n")
	require.NoError(t, err)
	defer done()

	m, err := ParseKeyed(r)
	require.NoError(t, err)
	assert.Len(t, m, 2)
}

func TestKeyedReader_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyed.txt")
	require.NoError(t, os.WriteFile(path, []byte("a;1\nb;2\n"), 0600))

	r, done, err := KeyedReader(path)
	require.NoError(t, err)
	defer done()

	m, err := ParseKeyedFloats(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"a": 1, "b": 2}, m)
}
