package competition

import (
	"encoding/csv"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mchmarny/mlboard/pkg/metrics"
	"github.com/mchmarny/mlboard/pkg/values"
)

// Record is one competition row as persisted: the competition flattened
// to a single metric with that metric's serialized ground truth. Tabular
// expected values serialize to comma-separated CSV with a header row;
// keyed expected values use the semicolon stream format the keyed
// metrics parse themselves. The round trip through Record is lossless for
// numeric values and idempotent.
type Record struct {
	CptID          int64  `json:"cpt_id"`
	CptName        string `json:"cpt_name"`
	Metric         string `json:"metric"`
	DataFile       string `json:"datafile"`
	Description    string `json:"description"`
	ExpectedValues string `json:"expected_values"`
	Link           string `json:"link"`
}

// Records flattens the competition into one storable row per metric.
func (c *Competition) Records() ([]Record, error) {
	out := make([]Record, len(c.Metrics))
	for i, met := range c.Metrics {
		ev, err := serializeExpected(met, c.expected[i])
		if err != nil {
			return nil, fmt.Errorf("metric %q: %w", met, err)
		}
		out[i] = Record{
			CptID:          c.ID,
			CptName:        c.Name,
			Metric:         met,
			DataFile:       c.DataFile,
			Description:    c.Description,
			ExpectedValues: ev,
			Link:           c.Link,
		}
	}
	return out, nil
}

// FromRecord rebuilds a competition from a single stored row. The metric
// cell may hold a comma-joined list.
func FromRecord(r Record) (*Competition, error) {
	var exp any
	if r.ExpectedValues != "" {
		exp = r.ExpectedValues
	}
	return New(Config{
		ID:          r.CptID,
		Link:        r.Link,
		Name:        r.CptName,
		Description: r.Description,
		Metrics:     splitMetrics(r.Metric),
		DataFile:    r.DataFile,
		Expected:    exp,
	})
}

// FromRecords rebuilds a competition from its per-metric rows, keeping
// the row order as the metric order.
func FromRecords(rs []Record) (*Competition, error) {
	if len(rs) == 0 {
		return nil, ErrNoMetrics
	}
	mets := make([]string, len(rs))
	expected := make([]any, len(rs))
	for i, r := range rs {
		mets[i] = r.Metric
		if r.ExpectedValues == "" {
			continue
		}
		if metrics.IsKeyed(r.Metric) {
			expected[i] = r.ExpectedValues
			continue
		}
		t, err := values.Coerce(r.ExpectedValues)
		if err != nil {
			return nil, fmt.Errorf("metric %q expected values: %w", r.Metric, err)
		}
		expected[i] = t
	}
	first := rs[0]
	return &Competition{
		ID:          first.CptID,
		Link:        first.Link,
		Name:        first.CptName,
		Description: first.Description,
		Metrics:     mets,
		DataFile:    first.DataFile,
		expected:    expected,
	}, nil
}

func serializeExpected(met string, exp any) (string, error) {
	switch x := exp.(type) {
	case nil:
		return "", nil
	case string:
		// already serialized, keep verbatim
		return x, nil
	case *values.Table:
		return x.CSV(), nil
	case []float64:
		return vectorCSV(met, x), nil
	case []int:
		fs := make([]float64, len(x))
		for i, n := range x {
			fs[i] = float64(n)
		}
		return vectorCSV(met, fs), nil
	case []any:
		fs := make([]float64, len(x))
		for i, it := range x {
			f, ok := scalar(it)
			if !ok {
				return "", fmt.Errorf("element %d is %T: %w", i, it, values.ErrInputType)
			}
			fs[i] = f
		}
		return vectorCSV(met, fs), nil
	case map[string]float64:
		rows := make(map[string]string, len(x))
		for k, v := range x {
			rows[k] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		return keyedStream(rows)
	case map[string]any:
		rows := make(map[string]string, len(x))
		for k, v := range x {
			rows[k] = fmt.Sprint(v)
		}
		return keyedStream(rows)
	}
	return "", fmt.Errorf("cannot serialize %T expected values: %w", exp, values.ErrInputType)
}

func vectorCSV(name string, vals []float64) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteString("\n")
	for _, v := range vals {
		sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		sb.WriteString("\n")
	}
	return sb.String()
}

// keyedStream renders key/value pairs in the semicolon stream format,
// keys sorted for a deterministic round trip.
func keyedStream(rows map[string]string) (string, error) {
	keys := make([]string, 0, len(rows))
	for k := range rows {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = ';'
	for _, k := range keys {
		if err := w.Write([]string{k, rows[k]}); err != nil {
			return "", fmt.Errorf("writing keyed stream: %w", err)
		}
	}
	w.Flush()
	return sb.String(), w.Error()
}

func splitMetrics(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func scalar(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
