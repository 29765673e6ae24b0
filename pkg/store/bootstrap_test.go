package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mchmarny/mlboard/pkg/config"
)

func TestInitFromOptions(t *testing.T) {
	s := seededStore(t)

	assert.Equal(t, 2, rowCount(t, s, "teams"))
	assert.Equal(t, 3, rowCount(t, s, "players"))
	assert.Equal(t, 2, rowCount(t, s, "competitions"))
	assert.Equal(t, 0, rowCount(t, s, "submissions"))
}

func TestInitFromOptions_SequentialIDs(t *testing.T) {
	s := seededStore(t)

	teams, err := s.GetSnapshot("teams")
	require.NoError(t, err)
	// distinct teams in roster order, ids from zero
	assert.Equal(t, int64(0), teams.Rows[0][0])
	assert.Equal(t, "alpha", teams.Rows[0][1])
	assert.Equal(t, int64(1), teams.Rows[1][0])
	assert.Equal(t, "beta", teams.Rows[1][1])

	players, err := s.GetSnapshot("players")
	require.NoError(t, err)
	require.Len(t, players.Rows, 3)
	// player_id, team_id, player_name, mail, login, pwd
	assert.Equal(t, int64(0), players.Rows[0][0])
	assert.Equal(t, int64(0), players.Rows[0][1])
	assert.Equal(t, "jdoe", players.Rows[0][4])
	assert.Equal(t, int64(1), players.Rows[1][1])
	assert.Equal(t, int64(0), players.Rows[2][1])

	ids, err := s.PlayerIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2}, ids)

	cids, err := s.CompetitionIDs()
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1}, cids)
}

func TestInitFromOptions_Idempotent(t *testing.T) {
	s := seededStore(t)

	opts, err := config.Read(writeBoardConfig(t))
	require.NoError(t, err)
	require.NoError(t, s.InitFromOptions(opts))

	assert.Equal(t, 2, rowCount(t, s, "teams"))
	assert.Equal(t, 3, rowCount(t, s, "players"))
	assert.Equal(t, 2, rowCount(t, s, "competitions"))
}

func TestInitFromOptions_NotConnected(t *testing.T) {
	s, err := New(t.TempDir() + "/board.db")
	require.NoError(t, err)

	err = s.InitFromOptions(&config.Options{})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestInitFromOptions_BadRoster(t *testing.T) {
	s := testStore(t)
	err := s.InitFromOptions(&config.Options{})
	assert.Error(t, err)
}
