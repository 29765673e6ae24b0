// Package store persists competitions, teams, players and submissions in
// a SQLite database. It owns all four tables; one store holds at most one
// open connection, and callers drive all reads and writes from a single
// goroutine or serialize externally.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"
)

// Memory is the path of an in-memory store.
const Memory = ":memory:"

var (
	//go:embed sql/ddl.sql
	ddl embed.FS

	// ErrNotConnected indicates a table operation outside the Connected
	// state. A programmer error, never retried.
	ErrNotConnected = errors.New("store not connected, call Connect first")

	// ErrAlreadyConnected indicates Connect on a file-backed store whose
	// previous connection was not closed.
	ErrAlreadyConnected = errors.New("previous connection was not closed")

	// ErrUnknownTable indicates a snapshot request for a table the store
	// does not own.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnknownCompetition and ErrUnknownPlayer reject submissions that
	// reference missing rows.
	ErrUnknownCompetition = errors.New("unknown competition")
	ErrUnknownPlayer      = errors.New("unknown player")
)

// tables the store owns.
var owned = map[string]bool{
	"competitions": true,
	"players":      true,
	"submissions":  true,
	"teams":        true,
}

// Store is a handle on one SQLite database, file-backed or in-memory.
type Store struct {
	path string
	conn *sql.DB
}

// New opens the database at path (or Memory), ensures the schema and
// returns a disconnected store. An in-memory store stays connected under
// the covers, so its data survives the initial close.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("store path required")
	}
	s := &Store{path: path}
	if err := s.Connect(); err != nil {
		return nil, err
	}
	b, err := ddl.ReadFile("sql/ddl.sql")
	if err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}
	if _, err := s.conn.Exec(string(b)); err != nil {
		return nil, fmt.Errorf("creating schema in %s: %w", path, err)
	}
	slog.Debug("store schema ensured", "path", path)
	if err := s.Close(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) inMemory() bool {
	return s.path == Memory
}

// Connect opens the connection. Reconnecting an in-memory store is a
// no-op; reconnecting a file-backed store without an intervening Close
// is an error.
func (s *Store) Connect() error {
	if s.conn != nil {
		if s.inMemory() {
			return nil
		}
		return fmt.Errorf("store %s: %w", s.path, ErrAlreadyConnected)
	}
	conn, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("opening database %s: %w", s.path, err)
	}
	// a single connection: the write model is single-writer, and an
	// in-memory database exists per connection
	conn.SetMaxOpenConns(1)
	s.conn = conn
	return nil
}

// Close releases the connection. For an in-memory store this is a
// deliberate no-op: closing would drop the data, and callers rely on a
// close/reopen cycle preserving it within the process.
func (s *Store) Close() error {
	if err := s.check(); err != nil {
		return err
	}
	if s.inMemory() {
		return nil
	}
	if err := s.conn.Close(); err != nil {
		return fmt.Errorf("closing database %s: %w", s.path, err)
	}
	s.conn = nil
	return nil
}

func (s *Store) check() error {
	if s.conn == nil {
		return ErrNotConnected
	}
	return nil
}

// TableList returns the names of all tables, sorted.
func (s *Store) TableList() ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	rows, err := s.conn.Query(
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name != 'sqlite_sequence' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var list []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		list = append(list, name)
	}
	return list, rows.Err()
}

// Snapshot is a full dump of one table.
type Snapshot struct {
	Table   string   `json:"table"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// GetSnapshot dumps the content of one owned table.
func (s *Store) GetSnapshot(table string) (*Snapshot, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if !owned[table] {
		return nil, fmt.Errorf("table %q: %w", table, ErrUnknownTable)
	}
	rows, err := s.conn.Query("SELECT * FROM " + table) //nolint:gosec // table validated above
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table, err)
	}
	snap := &Snapshot{Table: table, Columns: cols, Rows: make([][]any, 0)}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scanning row of %s: %w", table, err)
		}
		snap.Rows = append(snap.Rows, vals)
	}
	return snap, rows.Err()
}

// hasRows tells if an owned table holds at least one row.
func (s *Store) hasRows(table string) (bool, error) {
	if !owned[table] {
		return false, fmt.Errorf("table %q: %w", table, ErrUnknownTable)
	}
	var one int
	err := s.conn.QueryRow("SELECT 1 FROM " + table + " LIMIT 1").Scan(&one) //nolint:gosec
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking rows in %s: %w", table, err)
	}
	return true, nil
}
