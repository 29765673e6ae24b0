package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mchmarny/mlboard/pkg/competition"
)

const (
	selectCompetitionMetricsSQL = `SELECT
			cpt_id,
			metric,
			expected_values
		FROM competitions
		WHERE cpt_id = ?
	`

	selectPlayerSQL = `SELECT player_id FROM players WHERE player_id = ?`

	insertSubmissionSQL = `INSERT INTO submissions (
			sub_id,
			cpt_id,
			player_id,
			date,
			data,
			metric,
			metric_value
		)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
)

// Submit scores one upload and records it: one row per metric configured
// on the competition, all inserted in a single transaction committed
// once. Any failure before the commit leaves the submissions table
// untouched. A zero timestamp defaults to now; the payload is persisted
// verbatim for audit.
func (s *Store) Submit(cptID, playerID int64, payload string, ts time.Time) error {
	if err := s.check(); err != nil {
		return err
	}
	if ts.IsZero() {
		ts = time.Now()
	}

	recs, err := s.competitionRecords(cptID)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		ids, _ := s.CompetitionIDs()
		return fmt.Errorf("cpt_id=%d not in %v: %w", cptID, ids, ErrUnknownCompetition)
	}

	var pid int64
	if err := s.conn.QueryRow(selectPlayerSQL, playerID).Scan(&pid); err != nil {
		if err == sql.ErrNoRows {
			ids, _ := s.PlayerIDs()
			return fmt.Errorf("player_id=%d not in %v: %w", playerID, ids, ErrUnknownPlayer)
		}
		return fmt.Errorf("looking up player %d: %w", playerID, err)
	}

	// evaluate every metric before touching the database
	type scored struct {
		metric string
		value  float64
	}
	scores := make([]scored, 0, len(recs))
	for _, rec := range recs {
		cp, err := competition.FromRecord(rec)
		if err != nil {
			return fmt.Errorf("rebuilding competition %d: %w", cptID, err)
		}
		res, err := cp.Evaluate(payload)
		if err != nil {
			return fmt.Errorf("evaluating submission for competition %d: %w", cptID, err)
		}
		for _, met := range cp.Metrics {
			scores = append(scores, scored{metric: met, value: res[met]})
		}
	}

	stmt, err := s.conn.Prepare(insertSubmissionSQL)
	if err != nil {
		return fmt.Errorf("preparing submission insert: %w", err)
	}
	tx, err := s.conn.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	for _, sc := range scores {
		if _, err = tx.Stmt(stmt).Exec(
			uuid.NewString(), cptID, playerID,
			ts.Format(time.RFC3339), payload,
			sc.metric, sc.value); err != nil {
			rollback(tx)
			return fmt.Errorf("inserting submission for metric %q: %w", sc.metric, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("committing submission: %w", err)
	}

	slog.Debug("submission recorded",
		"cpt_id", cptID,
		"player_id", playerID,
		"metrics", len(scores),
	)
	return nil
}

// competitionRecords returns the stored per-metric rows of a competition.
func (s *Store) competitionRecords(cptID int64) ([]competition.Record, error) {
	rows, err := s.conn.Query(selectCompetitionMetricsSQL, cptID)
	if err != nil {
		return nil, fmt.Errorf("looking up competition %d: %w", cptID, err)
	}
	defer rows.Close()

	var recs []competition.Record
	for rows.Next() {
		var r competition.Record
		var ev sql.NullString
		if err := rows.Scan(&r.CptID, &r.Metric, &ev); err != nil {
			return nil, fmt.Errorf("scanning competition row: %w", err)
		}
		r.ExpectedValues = ev.String
		recs = append(recs, r)
	}
	return recs, rows.Err()
}

func rollback(tx *sql.Tx) {
	if err := tx.Rollback(); err != nil {
		slog.Error("failed to rollback transaction", "error", err)
	}
}
