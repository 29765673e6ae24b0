package metrics

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// ROCAUCMicro computes the area under the ROC curve with micro averaging:
// all label columns are raveled into one binary problem.
func ROCAUCMicro(exp, val any) (float64, error) {
	return rocAUC(exp, val, true)
}

// ROCAUCMacro computes the area under the ROC curve with macro averaging:
// one AUC per label column, averaged without weighting.
func ROCAUCMacro(exp, val any) (float64, error) {
	return rocAUC(exp, val, false)
}

func rocAUC(exp, val any, micro bool) (float64, error) {
	e, v, err := reshape(exp, val)
	if err != nil {
		return 0, err
	}

	if e.vec != nil {
		return auc(e.vec, v.vec)
	}

	if len(e.mat) != len(v.mat) || len(e.mat[0]) != len(v.mat[0]) {
		return 0, fmt.Errorf("%dx%d vs %dx%d: %w",
			len(e.mat), len(e.mat[0]), len(v.mat), len(v.mat[0]), ErrDimension)
	}

	if micro {
		return auc(e.ravel(), v.ravel())
	}

	var sum float64
	nc := len(e.mat[0])
	for c := 0; c < nc; c++ {
		labels := make([]float64, len(e.mat))
		scores := make([]float64, len(v.mat))
		for r := range e.mat {
			labels[r] = e.mat[r][c]
			scores[r] = v.mat[r][c]
		}
		a, err := auc(labels, scores)
		if err != nil {
			return 0, fmt.Errorf("column %d: %w", c, err)
		}
		sum += a
	}
	return sum / float64(nc), nil
}

// auc scores a binary problem: labels are truth (non-zero = positive),
// scores are prediction confidences.
func auc(labels, scores []float64) (float64, error) {
	if len(labels) != len(scores) {
		return 0, fmt.Errorf("%d labels vs %d scores: %w", len(labels), len(scores), ErrDimension)
	}
	if len(labels) == 0 {
		return 0, fmt.Errorf("no samples: %w", ErrDimension)
	}

	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return scores[idx[i]] < scores[idx[j]] })

	y := make([]float64, len(idx))
	classes := make([]bool, len(idx))
	var pos, neg int
	for i, j := range idx {
		y[i] = scores[j]
		classes[i] = labels[j] != 0
		if classes[i] {
			pos++
		} else {
			neg++
		}
	}
	if pos == 0 || neg == 0 {
		return 0, fmt.Errorf("only one class present in expected values: %w", ErrDimension)
	}

	tpr, fpr, _ := stat.ROC(nil, y, classes, nil)
	return integrate.Trapezoidal(fpr, tpr), nil
}
