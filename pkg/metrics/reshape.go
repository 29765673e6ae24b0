package metrics

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/mchmarny/mlboard/pkg/values"
)

var (
	// ErrDimension indicates mismatched shapes, lengths or key sets.
	ErrDimension = errors.New("dimension mismatch")

	// ErrUnknownMetric indicates a metric name absent from both the
	// registry and the statistical fallback.
	ErrUnknownMetric = errors.New("unknown metric")
)

// array is a numeric container in one of two layouts: a flat vector or a
// row-major matrix. A single-column matrix still counts as a vector for
// shape reconciliation, but keeps its 2-D layout so it can be rejected as
// ambiguous after reconciliation.
type array struct {
	vec []float64
	mat [][]float64
}

func (a *array) isVector() bool {
	if a.vec != nil {
		return true
	}
	return len(a.mat) > 0 && len(a.mat[0]) == 1
}

func (a *array) ravel() []float64 {
	if a.vec != nil {
		return a.vec
	}
	out := make([]float64, 0, len(a.mat)*len(a.mat[0]))
	for _, row := range a.mat {
		out = append(out, row...)
	}
	return out
}

func asArray(v any) (*array, error) {
	switch x := v.(type) {
	case *array:
		return x, nil
	case *values.Table:
		if x.NumCols() == 1 {
			return &array{vec: x.Col(0)}, nil
		}
		return &array{mat: x.Rows()}, nil
	case []float64:
		return &array{vec: x}, nil
	case []int:
		fs := make([]float64, len(x))
		for i, n := range x {
			fs[i] = float64(n)
		}
		return &array{vec: fs}, nil
	case [][]float64:
		if len(x) == 0 {
			return nil, values.ErrEmptyValues
		}
		for _, r := range x {
			if len(r) != len(x[0]) {
				return nil, fmt.Errorf("ragged rows: %w", values.ErrInputType)
			}
		}
		return &array{mat: x}, nil
	case []any:
		t, err := values.Coerce(x)
		if err != nil {
			return nil, err
		}
		return asArray(t)
	case string:
		return nil, fmt.Errorf("must be a container of floats, not text: %w", values.ErrInputType)
	}
	if reflect.ValueOf(v).Kind() == reflect.Array {
		return nil, fmt.Errorf("fixed-size array not accepted, use a slice: %w", values.ErrInputType)
	}
	return nil, fmt.Errorf("%T is not a numeric container: %w", v, values.ErrInputType)
}

// reshape reconciles the shapes of expected values and predictions before
// a classification score. When the prediction is a probability matrix and
// the expected side a flat vector of class indexes, the vector is expanded
// into a one-hot matrix: index v at row i sets cell [i][int(v)]. This is a
// positional expansion, kept exactly as the scoring history requires; it
// is not a class-label encoding. Any other disagreement flattens both
// sides. A 2-D shape with exactly one column is ambiguous and rejected.
func reshape(exp, val any) (*array, *array, error) {
	e, err := asArray(exp)
	if err != nil {
		return nil, nil, fmt.Errorf("exp: %w", err)
	}
	v, err := asArray(val)
	if err != nil {
		return nil, nil, fmt.Errorf("val: %w", err)
	}

	if e.isVector() != v.isVector() {
		if !v.isVector() && e.isVector() {
			oh := make([][]float64, len(v.mat))
			for i := range oh {
				oh[i] = make([]float64, len(v.mat[0]))
			}
			for i, f := range e.ravel() {
				c := int(f)
				if i >= len(oh) || c < 0 || c >= len(oh[0]) {
					return nil, nil, fmt.Errorf("class index %d at row %d outside %dx%d: %w",
						c, i, len(oh), len(oh[0]), ErrDimension)
				}
				oh[i][c] = 1
			}
			e = &array{mat: oh}
		} else {
			e = &array{vec: e.ravel()}
			v = &array{vec: v.ravel()}
		}
	} else if e.isVector() && v.isVector() {
		e = &array{vec: e.ravel()}
		v = &array{vec: v.ravel()}
	}

	if e.mat != nil && len(e.mat[0]) == 1 {
		return nil, nil, fmt.Errorf("exp has two dimensions but one column: %w", ErrDimension)
	}
	if v.mat != nil && len(v.mat[0]) == 1 {
		return nil, nil, fmt.Errorf("val has two dimensions but one column: %w", ErrDimension)
	}
	return e, v, nil
}
