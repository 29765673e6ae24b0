package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/mlboard/pkg/values"
)

func TestEvaluate_Registry(t *testing.T) {
	got, err := Evaluate("mse", []float64{0, 1, 2}, []float64{0, 4, 2})
	require.NoError(t, err)
	assert.Equal(t, 3.0, got)
}

func TestEvaluate_KeyedAcceptsText(t *testing.T) {
	got, err := Evaluate("l1_reg_max", "0;50\n1;60\n", "0;50\n1;60\n")
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestEvaluate_StatisticalRejectsText(t *testing.T) {
	_, err := Evaluate("mean_squared_error", "0;50\n", []float64{1})
	assert.ErrorIs(t, err, values.ErrInputType)

	_, err = Evaluate("mean_squared_error", []float64{1}, "0;50\n")
	assert.ErrorIs(t, err, values.ErrInputType)
}

func TestEvaluate_UnknownMetric(t *testing.T) {
	_, err := Evaluate("definitely_not_a_metric", []float64{1}, []float64{1})
	assert.ErrorIs(t, err, ErrUnknownMetric)
}

func TestKnown(t *testing.T) {
	for _, name := range []string{
		"mse",
		"roc_auc_score_micro",
		"roc_auc_score_macro",
		"l1_reg_max",
		"multi_label_jaccard",
		"mean_squared_error",
		"roc_auc_score",
	} {
		assert.True(t, Known(name), name)
	}
	assert.False(t, Known("nope"))
}

func TestIsKeyed(t *testing.T) {
	assert.True(t, IsKeyed("l1_reg_max"))
	assert.True(t, IsKeyed("multi_label_jaccard"))
	assert.False(t, IsKeyed("mse"))
	assert.False(t, IsKeyed("mean_squared_error"))
}
