package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MSE computes the element-wise mean squared error between expected
// values and predictions. Both sides must hold the same number of values.
func MSE(exp, val any) (float64, error) {
	e, err := asArray(exp)
	if err != nil {
		return 0, fmt.Errorf("exp: %w", err)
	}
	v, err := asArray(val)
	if err != nil {
		return 0, fmt.Errorf("val: %w", err)
	}
	return meanSquaredError(e.ravel(), v.ravel())
}

func meanSquaredError(e, v []float64) (float64, error) {
	if len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	if len(e) == 0 {
		return 0, fmt.Errorf("no samples: %w", ErrDimension)
	}
	sq := make([]float64, len(e))
	for i := range e {
		d := e[i] - v[i]
		sq[i] = d * d
	}
	return stat.Mean(sq, nil), nil
}

func meanAbsoluteError(e, v []float64) (float64, error) {
	if len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	if len(e) == 0 {
		return 0, fmt.Errorf("no samples: %w", ErrDimension)
	}
	abs := make([]float64, len(e))
	for i := range e {
		abs[i] = math.Abs(e[i] - v[i])
	}
	return stat.Mean(abs, nil), nil
}
