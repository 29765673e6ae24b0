// Package metrics holds the scoring functions submissions are evaluated
// with: a fixed registry of named metrics plus a fallback lookup into a
// set of classical statistical scores. Every function is pure and
// deterministic given identical inputs.
package metrics

import (
	"fmt"

	"github.com/mchmarny/mlboard/pkg/values"
)

// Func scores predictions against expected values.
type Func func(exp, val any) (float64, error)

// registry maps the named metrics to their implementation, populated once
// at startup. Keyed metrics do their own payload parsing and accept text.
var registry = map[string]Func{
	"mse":                 MSE,
	"roc_auc_score_micro": ROCAUCMicro,
	"roc_auc_score_macro": ROCAUCMacro,
	"l1_reg_max": func(exp, val any) (float64, error) {
		return L1RegMax(exp, val, nil)
	},
	"multi_label_jaccard": func(exp, val any) (float64, error) {
		return MultiLabelJaccard(exp, val, true)
	},
}

// keyed marks the metrics that consume key/value payloads and therefore
// receive raw submission text rather than a coerced table.
var keyed = map[string]bool{
	"l1_reg_max":          true,
	"multi_label_jaccard": true,
}

// Evaluate scores val against exp with the named metric. Names outside
// the registry fall back to the statistical lookup, which never accepts
// raw text.
func Evaluate(name string, exp, val any) (float64, error) {
	if f, ok := registry[name]; ok {
		return f(exp, val)
	}
	if f, ok := statistical[name]; ok {
		if _, ok := exp.(string); ok {
			return 0, fmt.Errorf("exp must be a container of floats, not text: %w", values.ErrInputType)
		}
		if _, ok := val.(string); ok {
			return 0, fmt.Errorf("val must be a container of floats, not text: %w", values.ErrInputType)
		}
		return f(exp, val)
	}
	return 0, fmt.Errorf("metric %q: %w", name, ErrUnknownMetric)
}

// Known reports whether the name resolves to a metric.
func Known(name string) bool {
	if _, ok := registry[name]; ok {
		return true
	}
	_, ok := statistical[name]
	return ok
}

// IsKeyed reports whether the named metric consumes keyed payloads.
func IsKeyed(name string) bool {
	return keyed[name]
}
