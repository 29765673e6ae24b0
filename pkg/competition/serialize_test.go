package competition

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecords_OneRowPerMetric(t *testing.T) {
	c, err := New(Config{
		ID:          3,
		Name:        "compet1",
		Link:        "/compet1",
		Description: "two scores",
		Metrics:     []string{"mse", "mean_absolute_error"},
		Expected:    [][]float64{{0, 1, 2}, {3, 4, 5}},
	})
	require.NoError(t, err)

	recs, err := c.Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, int64(3), recs[0].CptID)
	assert.Equal(t, "compet1", recs[0].CptName)
	assert.Equal(t, "mse", recs[0].Metric)
	assert.Equal(t, "mse\n0\n1\n2\n", recs[0].ExpectedValues)

	assert.Equal(t, "mean_absolute_error", recs[1].Metric)
	assert.Equal(t, "mean_absolute_error\n3\n4\n5\n", recs[1].ExpectedValues)
}

func TestRecordRoundTrip_Vector(t *testing.T) {
	c, err := New(Config{ID: 1, Name: "c", Metric: "mse", Expected: []float64{0, 1.5, 2}})
	require.NoError(t, err)

	recs, err := c.Records()
	require.NoError(t, err)

	back, err := FromRecords(recs)
	require.NoError(t, err)
	recs2, err := back.Records()
	require.NoError(t, err)

	assert.Equal(t, recs, recs2)

	res, err := back.Evaluate([]float64{0, 1.5, 2})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res["mse"])
}

func TestRecordRoundTrip_Keyed(t *testing.T) {
	c, err := New(Config{
		ID:       2,
		Name:     "keyed",
		Metric:   "l1_reg_max",
		Expected: map[string]float64{"1": 60, "0": 50},
	})
	require.NoError(t, err)

	recs, err := c.Records()
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "0;50\n1;60\n", recs[0].ExpectedValues)

	back, err := FromRecords(recs)
	require.NoError(t, err)
	recs2, err := back.Records()
	require.NoError(t, err)
	assert.Equal(t, recs, recs2)

	res, err := back.Evaluate("0;50\n1;60\n")
	require.NoError(t, err)
	assert.Equal(t, 0.0, res["l1_reg_max"])
}

func TestFromRecord_SplitsMetricList(t *testing.T) {
	c, err := FromRecord(Record{
		CptID:          7,
		CptName:        "joined",
		Metric:         "mse, mean_absolute_error",
		ExpectedValues: "a,b\n0,0\n1,1\n2,2\n",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"mse", "mean_absolute_error"}, c.Metrics)

	res, err := c.Evaluate([][]float64{{0, 0}, {1, 1}, {2, 2}})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res["mse"])
	assert.Equal(t, 0.0, res["mean_absolute_error"])
}

func TestFromRecord_EmptyExpected(t *testing.T) {
	c, err := FromRecord(Record{CptID: 1, Metric: "mse"})
	require.NoError(t, err)
	assert.Nil(t, c.Expected(0))
}

func TestFromRecords_Empty(t *testing.T) {
	_, err := FromRecords(nil)
	assert.ErrorIs(t, err, ErrNoMetrics)
}
