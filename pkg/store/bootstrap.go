package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/mchmarny/mlboard/pkg/competition"
	"github.com/mchmarny/mlboard/pkg/config"
)

const (
	insertTeamSQL = `INSERT INTO teams (team_id, team_name) VALUES (?, ?)`

	insertPlayerSQL = `INSERT INTO players (
			player_id,
			team_id,
			player_name,
			mail,
			login,
			pwd
		)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	insertCompetitionSQL = `INSERT INTO competitions (
			cpt_id,
			cpt_name,
			metric,
			datafile,
			description,
			expected_values,
			link
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	selectTeamsSQL = `SELECT team_id, team_name FROM teams ORDER BY team_id`
)

// InitFromOptions seeds the store from configuration: teams and players
// from the user roster, competitions expanded one row per metric. Each
// table is populated only when currently empty, so running the bootstrap
// twice never duplicates rows.
func (s *Store) InitFromOptions(opts *config.Options) error {
	if err := s.check(); err != nil {
		return err
	}

	users, err := opts.Users()
	if err != nil {
		return fmt.Errorf("reading roster: %w", err)
	}
	comps, err := opts.Load()
	if err != nil {
		return fmt.Errorf("loading competitions: %w", err)
	}

	if err := s.seedTeams(users); err != nil {
		return err
	}
	if err := s.seedPlayers(users); err != nil {
		return err
	}
	if err := s.seedCompetitions(comps); err != nil {
		return err
	}
	return nil
}

// seedTeams inserts the distinct teams referenced by the roster, ids
// assigned sequentially in roster iteration order.
func (s *Store) seedTeams(users []config.User) error {
	has, err := s.hasRows("teams")
	if err != nil || has {
		return err
	}

	var names []string
	seen := make(map[string]bool)
	for _, u := range users {
		if !seen[u.Team] {
			seen[u.Team] = true
			names = append(names, u.Team)
		}
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning teams transaction: %w", err)
	}
	for i, name := range names {
		if _, err := tx.Exec(insertTeamSQL, int64(i), name); err != nil {
			rollback(tx)
			return fmt.Errorf("inserting team %q: %w", name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing teams: %w", err)
	}
	slog.Debug("teams seeded", "count", len(names))
	return nil
}

// seedPlayers inserts the roster entries, ids sequential in roster
// order, each joined to its team by name. A roster entry naming an
// unknown team is a hard error.
func (s *Store) seedPlayers(users []config.User) error {
	has, err := s.hasRows("players")
	if err != nil || has {
		return err
	}

	teams, err := s.teamIDs()
	if err != nil {
		return err
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning players transaction: %w", err)
	}
	for i, u := range users {
		teamID, ok := teams[u.Team]
		if !ok {
			rollback(tx)
			return fmt.Errorf("player %q references unknown team %q", u.Login, u.Team)
		}
		if _, err := tx.Exec(insertPlayerSQL,
			int64(i), teamID, u.Name, u.Mail, u.Login, u.Pwd); err != nil {
			rollback(tx)
			return fmt.Errorf("inserting player %q: %w", u.Login, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing players: %w", err)
	}
	slog.Debug("players seeded", "count", len(users))
	return nil
}

// seedCompetitions inserts the configured competitions, one row per
// competition and metric, ids sequential in configuration order.
func (s *Store) seedCompetitions(comps []*competition.Competition) error {
	has, err := s.hasRows("competitions")
	if err != nil || has {
		return err
	}

	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning competitions transaction: %w", err)
	}
	for i, cp := range comps {
		recs, err := cp.Records()
		if err != nil {
			rollback(tx)
			return fmt.Errorf("serializing competition %q: %w", cp.Name, err)
		}
		for _, r := range recs {
			if _, err := tx.Exec(insertCompetitionSQL,
				int64(i), r.CptName, r.Metric, r.DataFile,
				r.Description, r.ExpectedValues, r.Link); err != nil {
				rollback(tx)
				return fmt.Errorf("inserting competition %q metric %q: %w", cp.Name, r.Metric, err)
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing competitions: %w", err)
	}
	slog.Debug("competitions seeded", "count", len(comps))
	return nil
}

func (s *Store) teamIDs() (map[string]int64, error) {
	rows, err := s.conn.Query(selectTeamsSQL)
	if err != nil {
		return nil, fmt.Errorf("reading teams: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var id int64
		var name sql.NullString
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		out[name.String] = id
	}
	return out, rows.Err()
}
