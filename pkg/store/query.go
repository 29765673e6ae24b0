package store

import (
	"database/sql"
	"fmt"

	"github.com/mchmarny/mlboard/pkg/competition"
)

const (
	selectCompetitionsSQL = `SELECT DISTINCT cpt_id, cpt_name FROM competitions ORDER BY cpt_id`

	selectCompetitionSQL = `SELECT
			cpt_id,
			cpt_name,
			metric,
			datafile,
			description,
			expected_values,
			link
		FROM competitions
		WHERE cpt_id = ?
		ORDER BY rowid
	`

	selectCompetitionIDsSQL = `SELECT DISTINCT cpt_id FROM competitions ORDER BY cpt_id`

	selectPlayerIDsSQL = `SELECT player_id FROM players ORDER BY player_id`

	selectResultsSQL = `SELECT
			s.sub_id,
			s.cpt_id,
			s.player_id,
			p.player_name,
			p.team_id,
			t.team_name,
			s.date,
			s.metric,
			s.metric_value
		FROM submissions s
		JOIN players p ON s.player_id = p.player_id
		JOIN teams t ON p.team_id = t.team_id
		WHERE s.cpt_id = ?
		ORDER BY s.date DESC, s.metric
	`
)

// CompetitionItem is one entry of the competition list.
type CompetitionItem struct {
	ID   int64  `json:"cpt_id"`
	Name string `json:"cpt_name"`
}

// GetCompetitions lists the stored competitions as (id, name) pairs.
func (s *Store) GetCompetitions() ([]CompetitionItem, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(selectCompetitionsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing competitions: %w", err)
	}
	defer rows.Close()

	list := make([]CompetitionItem, 0)
	for rows.Next() {
		var it CompetitionItem
		var name sql.NullString
		if err := rows.Scan(&it.ID, &name); err != nil {
			return nil, fmt.Errorf("scanning competition: %w", err)
		}
		it.Name = name.String
		list = append(list, it)
	}
	return list, rows.Err()
}

// GetCompetition rebuilds one competition from its stored rows.
func (s *Store) GetCompetition(cptID int64) (*competition.Competition, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(selectCompetitionSQL, cptID)
	if err != nil {
		return nil, fmt.Errorf("reading competition %d: %w", cptID, err)
	}
	defer rows.Close()

	var recs []competition.Record
	for rows.Next() {
		var r competition.Record
		var name, datafile, description, ev, link sql.NullString
		if err := rows.Scan(&r.CptID, &name, &r.Metric, &datafile, &description, &ev, &link); err != nil {
			return nil, fmt.Errorf("scanning competition row: %w", err)
		}
		r.CptName = name.String
		r.DataFile = datafile.String
		r.Description = description.String
		r.ExpectedValues = ev.String
		r.Link = link.String
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("cpt_id=%d: %w", cptID, ErrUnknownCompetition)
	}
	return competition.FromRecords(recs)
}

// CompetitionIDs returns the distinct stored competition ids.
func (s *Store) CompetitionIDs() ([]int64, error) {
	return s.ids(selectCompetitionIDsSQL)
}

// PlayerIDs returns the stored player ids.
func (s *Store) PlayerIDs() ([]int64, error) {
	return s.ids(selectPlayerIDsSQL)
}

func (s *Store) ids(query string) ([]int64, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(query)
	if err != nil {
		return nil, fmt.Errorf("listing ids: %w", err)
	}
	defer rows.Close()

	var list []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning id: %w", err)
		}
		list = append(list, id)
	}
	return list, rows.Err()
}

// Result is one leaderboard row: a scored submission joined with the
// identity of the player and team that made it.
type Result struct {
	SubID       string  `json:"sub_id"`
	CptID       int64   `json:"cpt_id"`
	PlayerID    int64   `json:"player_id"`
	PlayerName  string  `json:"player_name"`
	TeamID      int64   `json:"team_id"`
	TeamName    string  `json:"team_name"`
	Date        string  `json:"date"`
	Metric      string  `json:"metric"`
	MetricValue float64 `json:"metric_value"`
}

// GetResults returns all scored submissions of one competition for
// leaderboard rendering, newest first.
func (s *Store) GetResults(cptID int64) ([]*Result, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(selectResultsSQL, cptID)
	if err != nil {
		return nil, fmt.Errorf("reading results for competition %d: %w", cptID, err)
	}
	defer rows.Close()

	list := make([]*Result, 0)
	for rows.Next() {
		r := &Result{}
		var pname, tname, date, metric sql.NullString
		if err := rows.Scan(&r.SubID, &r.CptID, &r.PlayerID, &pname, &r.TeamID,
			&tname, &date, &metric, &r.MetricValue); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.PlayerName = pname.String
		r.TeamName = tname.String
		r.Date = date.String
		r.Metric = metric.String
		list = append(list, r)
	}
	return list, rows.Err()
}
