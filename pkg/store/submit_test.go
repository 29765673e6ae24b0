package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmit(t *testing.T) {
	s := seededStore(t)

	ts := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	require.NoError(t, s.Submit(0, 0, "exp0\n0\n1\n2\n", ts))

	results, err := s.GetResults(0)
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.NotEmpty(t, r.SubID)
	assert.Equal(t, int64(0), r.CptID)
	assert.Equal(t, int64(0), r.PlayerID)
	assert.Equal(t, "John Doe", r.PlayerName)
	assert.Equal(t, int64(0), r.TeamID)
	assert.Equal(t, "alpha", r.TeamName)
	assert.Equal(t, ts.Format(time.RFC3339), r.Date)
	assert.Equal(t, "mean_squared_error", r.Metric)
	assert.Equal(t, 0.0, r.MetricValue)
}

func TestSubmit_Scores(t *testing.T) {
	s := seededStore(t)

	require.NoError(t, s.Submit(0, 1, "exp0\n0\n4\n2\n", time.Time{}))

	results, err := s.GetResults(0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3.0, results[0].MetricValue)
	assert.NotEmpty(t, results[0].Date)
}

func TestSubmit_KeyedCompetition(t *testing.T) {
	s := seededStore(t)

	require.NoError(t, s.Submit(1, 2, "0;50\n1;62\n", time.Time{}))

	results, err := s.GetResults(1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "l1_reg_max", results[0].Metric)
	assert.InDelta(t, 2.0/180.0/2.0, results[0].MetricValue, 1e-9)
}

func TestSubmit_PayloadPersistedVerbatim(t *testing.T) {
	s := seededStore(t)
	payload := "exp0\n0\n1\n2\n"
	require.NoError(t, s.Submit(0, 0, payload, time.Time{}))

	snap, err := s.GetSnapshot("submissions")
	require.NoError(t, err)
	require.Len(t, snap.Rows, 1)
	// sub_id, cpt_id, player_id, date, data, metric, metric_value
	assert.Equal(t, payload, snap.Rows[0][4])
}

func TestSubmit_UnknownCompetition(t *testing.T) {
	s := seededStore(t)

	err := s.Submit(99, 0, "exp0\n0\n1\n2\n", time.Time{})
	assert.ErrorIs(t, err, ErrUnknownCompetition)
	assert.Equal(t, 0, rowCount(t, s, "submissions"))
}

func TestSubmit_UnknownPlayer(t *testing.T) {
	s := seededStore(t)

	err := s.Submit(0, 99, "exp0\n0\n1\n2\n", time.Time{})
	assert.ErrorIs(t, err, ErrUnknownPlayer)
	assert.Equal(t, 0, rowCount(t, s, "submissions"))
}

func TestSubmit_FailedEvaluationWritesNothing(t *testing.T) {
	s := seededStore(t)

	// wrong number of samples
	err := s.Submit(0, 0, "exp0\n0\n1\n", time.Time{})
	assert.Error(t, err)
	assert.Equal(t, 0, rowCount(t, s, "submissions"))
}

func TestSubmit_NotConnected(t *testing.T) {
	s, err := New(t.TempDir() + "/board.db")
	require.NoError(t, err)

	err = s.Submit(0, 0, "exp0\n0\n", time.Time{})
	assert.ErrorIs(t, err, ErrNotConnected)
}
