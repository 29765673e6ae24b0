// Package competition pairs one or more named metrics with their ground
// truth values and evaluates submissions against them.
package competition

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mchmarny/mlboard/pkg/metrics"
	"github.com/mchmarny/mlboard/pkg/values"
)

var (
	// ErrNoMetrics indicates a competition configured without metrics.
	ErrNoMetrics = errors.New("competition needs at least one metric")

	// ErrExpectedShape indicates expected values that do not align one
	// column per configured metric.
	ErrExpectedShape = errors.New("expected values do not align with metrics")
)

// Config declares a competition. Either Metric or Metrics must be set; a
// single metric is normalized into a one-element list. Expected holds the
// ground truth in any coercible shape; when nil, DataFile is read instead.
type Config struct {
	ID          int64    `yaml:"id"`
	Link        string   `yaml:"link"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Metric      string   `yaml:"metric"`
	Metrics     []string `yaml:"metrics"`
	DataFile    string   `yaml:"datafile"`
	Expected    any      `yaml:"expected_values"`
}

// Competition is a value type: constructed once from configuration or
// reconstructed from stored rows, immutable afterwards.
type Competition struct {
	ID          int64
	Link        string
	Name        string
	Description string
	Metrics     []string
	DataFile    string

	// expected holds one ground-truth container per metric.
	expected []any
}

// New builds a Competition, normalizing the metric list and the expected
// values. Expected values given as a raw list of lists must supply
// exactly one list per metric; text or table forms are taken as given and
// alignment stays the caller's responsibility.
func New(cfg Config) (*Competition, error) {
	mets := cfg.Metrics
	if len(mets) == 0 && cfg.Metric != "" {
		mets = []string{cfg.Metric}
	}
	if len(mets) == 0 {
		return nil, ErrNoMetrics
	}

	exp := cfg.Expected
	if exp == nil && cfg.DataFile != "" {
		exp = cfg.DataFile
	}
	expected, err := normalizeExpected(mets, exp)
	if err != nil {
		return nil, err
	}

	return &Competition{
		ID:          cfg.ID,
		Link:        cfg.Link,
		Name:        cfg.Name,
		Description: cfg.Description,
		Metrics:     mets,
		DataFile:    cfg.DataFile,
		expected:    expected,
	}, nil
}

// normalizeExpected converts the configured ground truth into one
// container per metric.
func normalizeExpected(mets []string, exp any) ([]any, error) {
	if exp == nil {
		return make([]any, len(mets)), nil
	}

	switch x := exp.(type) {
	case [][]float64:
		return perMetric(mets, toAnySlice(x))
	case []float64, []int:
		return singleExpected(mets, x)
	case []any:
		if len(x) == 0 {
			return nil, values.ErrEmptyValues
		}
		if isScalar(x[0]) {
			return singleExpected(mets, x)
		}
		return perMetric(mets, x)
	case map[string]float64, map[string]any:
		return singleExpected(mets, x)
	case *values.Table:
		return tableExpected(mets, x)
	case string:
		if allKeyed(mets) {
			return singleExpected(mets, x)
		}
		t, err := values.Coerce(x)
		if err != nil {
			return nil, fmt.Errorf("loading expected values: %w", err)
		}
		return tableExpected(mets, t)
	}
	return nil, fmt.Errorf("cannot use %T as expected values: %w", exp, values.ErrInputType)
}

func perMetric(mets []string, lists []any) ([]any, error) {
	if len(lists) != len(mets) {
		return nil, fmt.Errorf("wrong dimensions %d != %d: %w", len(lists), len(mets), ErrExpectedShape)
	}
	return lists, nil
}

func singleExpected(mets []string, exp any) ([]any, error) {
	if len(mets) != 1 {
		return nil, fmt.Errorf("one expected value set for %d metrics: %w", len(mets), ErrExpectedShape)
	}
	return []any{exp}, nil
}

// tableExpected slices a pre-built table across metrics: a single metric
// keeps the whole table, several metrics take one column each.
func tableExpected(mets []string, t *values.Table) ([]any, error) {
	if len(mets) == 1 {
		return []any{t}, nil
	}
	if t.NumCols() < len(mets) {
		return nil, fmt.Errorf("%d columns for %d metrics: %w", t.NumCols(), len(mets), ErrExpectedShape)
	}
	out := make([]any, len(mets))
	for i := range mets {
		out[i] = t.Col(i)
	}
	return out, nil
}

// Evaluate coerces the submission once and dispatches every configured
// metric in declared order. Keyed metrics receive the raw payload for
// their own parsing. All or nothing: the first failing metric aborts the
// whole evaluation.
func (c *Competition) Evaluate(vals any) (map[string]float64, error) {
	res := make(map[string]float64, len(c.Metrics))
	var tbl *values.Table
	for i, met := range c.Metrics {
		var v any
		if metrics.IsKeyed(met) {
			v = vals
		} else {
			if tbl == nil {
				var err error
				if tbl, err = values.Coerce(vals); err != nil {
					return nil, fmt.Errorf("coercing submission: %w", err)
				}
			}
			if len(c.Metrics) == 1 {
				v = tbl
			} else {
				if i >= tbl.NumCols() {
					return nil, fmt.Errorf("submission has %d columns, metric %q wants column %d: %w",
						tbl.NumCols(), met, i, metrics.ErrDimension)
				}
				v = tbl.Col(i)
			}
		}
		s, err := metrics.Evaluate(met, c.expected[i], v)
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", met, err)
		}
		res[met] = s
	}
	return res, nil
}

// Expected returns the ground truth container configured for metric i.
func (c *Competition) Expected(i int) any {
	return c.expected[i]
}

// MetricList renders the ordered metric names as one comma-joined string.
func (c *Competition) MetricList() string {
	return strings.Join(c.Metrics, ",")
}

func allKeyed(mets []string) bool {
	for _, m := range mets {
		if !metrics.IsKeyed(m) {
			return false
		}
	}
	return true
}

func isScalar(v any) bool {
	switch v.(type) {
	case float64, float32, int, int64:
		return true
	}
	return false
}

func toAnySlice(rows [][]float64) []any {
	out := make([]any, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}
