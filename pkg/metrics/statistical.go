package metrics

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// statistical holds the fallback lookup: classical metrics resolved by
// exact name when a competition asks for something outside the named
// registry. All of them reconcile shapes first and score flattened values.
var statistical = map[string]Func{
	"mean_squared_error":       flattened(meanSquaredError),
	"mean_absolute_error":      flattened(meanAbsoluteError),
	"median_absolute_error":    flattened(medianAbsoluteError),
	"r2_score":                 flattened(r2Score),
	"explained_variance_score": flattened(explainedVariance),
	"accuracy_score":           flattened(accuracyScore),
	"roc_auc_score":            ROCAUCMicro,
}

// flattened adapts a paired-vector scorer to the registry contract,
// running shape reconciliation and raveling both sides.
func flattened(f func(e, v []float64) (float64, error)) Func {
	return func(exp, val any) (float64, error) {
		e, v, err := reshape(exp, val)
		if err != nil {
			return 0, err
		}
		return f(e.ravel(), v.ravel())
	}
}

func medianAbsoluteError(e, v []float64) (float64, error) {
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
	sort.Float64s(abs)
	return stat.Quantile(0.5, stat.Empirical, abs, nil), nil
}

func r2Score(e, v []float64) (float64, error) {
	if len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	if len(e) == 0 {
		return 0, fmt.Errorf("no samples: %w", ErrDimension)
	}
	mean := stat.Mean(e, nil)
	var ssRes, ssTot float64
	for i := range e {
		d := e[i] - v[i]
		ssRes += d * d
		t := e[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0, fmt.Errorf("expected values are constant, r2 undefined: %w", ErrDimension)
	}
	return 1 - ssRes/ssTot, nil
}

func explainedVariance(e, v []float64) (float64, error) {
	if len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	if len(e) < 2 {
		return 0, fmt.Errorf("need at least two samples: %w", ErrDimension)
	}
	diff := make([]float64, len(e))
	for i := range e {
		diff[i] = e[i] - v[i]
	}
	varE := stat.Variance(e, nil)
	if varE == 0 {
		return 0, fmt.Errorf("expected values are constant, explained variance undefined: %w", ErrDimension)
	}
	return 1 - stat.Variance(diff, nil)/varE, nil
}

func accuracyScore(e, v []float64) (float64, error) {
	if len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	if len(e) == 0 {
		return 0, fmt.Errorf("no samples: %w", ErrDimension)
	}
	var hits int
	for i := range e {
		if e[i] == v[i] {
			hits++
		}
	}
	return float64(hits) / float64(len(e)), nil
}
