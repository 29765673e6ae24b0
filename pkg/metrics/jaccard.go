package metrics

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mchmarny/mlboard/pkg/values"
)

// MultiLabelJaccard scores a multi-label classification: the average
// Jaccard index |e∩v| / |e∪v| between paired label sets. Each element is
// coerced to a set of labels: sets pass through, strings split on commas,
// bare numbers wrap into a one-label set, other sequences convert
// directly. Accepts paired lists, key-to-labels maps, or the keyed text
// stream format (semicolon-separated, two columns, no header).
//
// With exc set, a prediction missing keys or items is a hard error;
// otherwise a missing key simply scores zero for that sample.
func MultiLabelJaccard(exp, val any, exc bool) (float64, error) {
	if elist, ok := labelList(exp); ok {
		vlist, ok := labelList(val)
		if !ok {
			return 0, fmt.Errorf("exp is a list, val is %T: %w", val, values.ErrInputType)
		}
		return jaccardPairs(elist, vlist)
	}

	switch e := exp.(type) {
	case map[string]any:
		v, ok := val.(map[string]any)
		if !ok {
			return 0, fmt.Errorf("exp is a map, val is %T: %w", val, values.ErrInputType)
		}
		return jaccardKeyed(e, v, exc)
	case string:
		v, ok := val.(string)
		if !ok {
			return 0, fmt.Errorf("exp is text, val is %T: %w", val, values.ErrInputType)
		}
		em, err := parseKeyedLabels(e)
		if err != nil {
			return 0, fmt.Errorf("exp: %w", err)
		}
		vm, err := parseKeyedLabels(v)
		if err != nil {
			return 0, fmt.Errorf("val: %w", err)
		}
		return jaccardKeyed(em, vm, exc)
	}
	if reflect.ValueOf(exp).Kind() == reflect.Array {
		return 0, fmt.Errorf("exp: fixed-size array not accepted, use a slice: %w", values.ErrInputType)
	}
	return 0, fmt.Errorf("inconsistent types %T vs %T: %w", exp, val, values.ErrInputType)
}

func jaccardPairs(e, v []any) (float64, error) {
	if len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	if len(e) == 0 {
		return 0, fmt.Errorf("no samples: %w", ErrDimension)
	}
	var sum float64
	for i := range e {
		sum += jaccard(labelSet(e[i]), labelSet(v[i]))
	}
	return sum / float64(len(e)), nil
}

func jaccardKeyed(e, v map[string]any, exc bool) (float64, error) {
	if exc && len(e) != len(v) {
		common := 0
		for k := range e {
			if _, ok := v[k]; ok {
				common++
			}
		}
		return 0, fmt.Errorf("%d != %d (%d keys in common): %w", len(e), len(v), common, ErrDimension)
	}
	if len(e) == 0 {
		return 0, fmt.Errorf("no samples: %w", ErrDimension)
	}
	var sum float64
	for _, k := range sortedKeys(e) {
		vv, ok := v[k]
		if !ok {
			if exc {
				return 0, fmt.Errorf("missing key %q in prediction: %w", k, ErrDimension)
			}
			continue
		}
		sum += jaccard(labelSet(e[k]), labelSet(vv))
	}
	return sum / float64(len(e)), nil
}

func jaccard(a, b map[string]struct{}) float64 {
	var inter, union int
	for k := range a {
		if _, ok := b[k]; ok {
			inter++
		}
	}
	union = len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// labelList reports v as a top-level list of samples. Slices qualify;
// fixed-size arrays do not, mirroring the coercion layer.
func labelList(v any) ([]any, bool) {
	switch s := v.(type) {
	case []any:
		return s, true
	case []string:
		out := make([]any, len(s))
		for i, x := range s {
			out[i] = x
		}
		return out, true
	}
	return nil, false
}

// labelSet coerces one sample into a set of labels.
func labelSet(v any) map[string]struct{} {
	set := make(map[string]struct{})
	switch x := v.(type) {
	case string:
		for _, part := range strings.Split(x, ",") {
			set[part] = struct{}{}
		}
		return set
	case float64, float32, int, int64:
		set[formatLabel(x)] = struct{}{}
		return set
	case map[string]struct{}:
		return x
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			set[formatLabel(rv.Index(i).Interface())] = struct{}{}
		}
	case reflect.Map:
		// set-like map: its keys are the labels
		for _, k := range rv.MapKeys() {
			set[formatLabel(k.Interface())] = struct{}{}
		}
	default:
		set[formatLabel(v)] = struct{}{}
	}
	return set
}

func formatLabel(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'g', -1, 32)
	}
	return fmt.Sprint(v)
}

func parseKeyedLabels(text string) (map[string]any, error) {
	r, done, err := values.KeyedReader(text)
	if err != nil {
		return nil, err
	}
	defer done()
	raw, err := values.ParseKeyed(r)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = v
	}
	return out, nil
}
