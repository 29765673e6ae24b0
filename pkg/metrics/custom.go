package metrics

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/mchmarny/mlboard/pkg/values"
)

// DefaultMaxVal is the ceiling clamp applied by L1RegMax when no options
// are given.
const DefaultMaxVal = 180.0

// L1Options configures L1RegMax.
type L1Options struct {
	// MaxVal clamps both sides before differencing.
	MaxVal float64
	// NoMax excludes pairs whose clamped expected value already sits at
	// the ceiling, from both the sum and the averaging denominator.
	NoMax bool
	// Exc makes a missing key in the prediction a hard error for keyed
	// inputs. When false, a missing key contributes a flat 1.0 to the
	// numerator instead: maximum normalized error, not error suppression.
	Exc bool
}

func defaultL1Options() *L1Options {
	return &L1Options{MaxVal: DefaultMaxVal, Exc: true}
}

// L1RegMax scores predictions with an L1 error that ignores anything above
// a ceiling: both sides are clamped to at most MaxVal, then
// mean(|clamp(e)-clamp(v)|)/MaxVal. Accepts paired numeric sequences,
// key-to-value maps, or the keyed text stream format (two columns,
// semicolon-separated, no header; inline when the text holds a newline,
// a file path otherwise).
func L1RegMax(exp, val any, opts *L1Options) (float64, error) {
	if opts == nil {
		opts = defaultL1Options()
	}
	if opts.MaxVal <= 0 {
		return 0, fmt.Errorf("max_val must be positive, got %v: %w", opts.MaxVal, ErrDimension)
	}

	switch e := exp.(type) {
	case []float64, []int, []any:
		ef, err := floats(e)
		if err != nil {
			return 0, fmt.Errorf("exp: %w", err)
		}
		vf, err := floats(val)
		if err != nil {
			return 0, fmt.Errorf("val: %w", err)
		}
		return l1Pairs(ef, vf, opts)
	case map[string]float64:
		v, ok := val.(map[string]float64)
		if !ok {
			return 0, fmt.Errorf("exp is a map, val is %T: %w", val, values.ErrInputType)
		}
		return l1Keyed(e, v, opts)
	case string:
		v, ok := val.(string)
		if !ok {
			return 0, fmt.Errorf("exp is text, val is %T: %w", val, values.ErrInputType)
		}
		em, err := parseKeyedFloats(e)
		if err != nil {
			return 0, fmt.Errorf("exp: %w", err)
		}
		vm, err := parseKeyedFloats(v)
		if err != nil {
			return 0, fmt.Errorf("val: %w", err)
		}
		return l1Keyed(em, vm, opts)
	}
	if reflect.ValueOf(exp).Kind() == reflect.Array {
		return 0, fmt.Errorf("exp: fixed-size array not accepted, use a slice: %w", values.ErrInputType)
	}
	return 0, fmt.Errorf("inconsistent types %T vs %T: %w", exp, val, values.ErrInputType)
}

func l1Pairs(e, v []float64, opts *L1Options) (float64, error) {
	if len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	var sum float64
	var n int
	for i := range e {
		ec := math.Min(e[i], opts.MaxVal)
		if opts.NoMax && ec >= opts.MaxVal {
			continue
		}
		sum += math.Abs(math.Min(v[i], opts.MaxVal)-ec) / opts.MaxVal
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func l1Keyed(e, v map[string]float64, opts *L1Options) (float64, error) {
	if opts.Exc && len(e) != len(v) {
		return 0, fmt.Errorf("%d != %d: %w", len(e), len(v), ErrDimension)
	}
	var sum float64
	var n int
	for _, k := range sortedKeys(e) {
		ec := math.Min(e[k], opts.MaxVal)
		if opts.NoMax && ec >= opts.MaxVal {
			continue
		}
		n++
		vv, ok := v[k]
		if !ok {
			if opts.Exc {
				return 0, fmt.Errorf("missing key %q in prediction: %w", k, ErrDimension)
			}
			sum += 1.0
			continue
		}
		sum += math.Abs(math.Min(vv, opts.MaxVal)-ec) / opts.MaxVal
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

func parseKeyedFloats(text string) (map[string]float64, error) {
	r, done, err := values.KeyedReader(text)
	if err != nil {
		return nil, err
	}
	defer done()
	return values.ParseKeyedFloats(r)
}

func floats(v any) ([]float64, error) {
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
			switch n := it.(type) {
			case float64:
				fs[i] = n
			case int:
				fs[i] = float64(n)
			default:
				return nil, fmt.Errorf("element %d is %T: %w", i, it, values.ErrInputType)
			}
		}
		return fs, nil
	}
	if reflect.ValueOf(v).Kind() == reflect.Array {
		return nil, fmt.Errorf("fixed-size array not accepted, use a slice: %w", values.ErrInputType)
	}
	return nil, fmt.Errorf("%T is not a numeric sequence: %w", v, values.ErrInputType)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
