package catalog

import (
	"context"
	"database/sql"
	"fmt"

	// SQLite driver
	_ "modernc.org/sqlite"
)

// Store persists catalog records. Table definitions are canonical
// CREATE TABLE statements.
type Store interface {
	SaveTable(ctx context.Context, name, definition string) error
	SaveSequence(ctx context.Context, seq SequenceInfo) error
	LoadTables(ctx context.Context) (map[string]string, error)
	LoadSequences(ctx context.Context) ([]SequenceInfo, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS fluxo_tables (
	name TEXT PRIMARY KEY,
	definition TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS fluxo_sequences (
	name TEXT PRIMARY KEY,
	current INTEGER NOT NULL,
	increment INTEGER NOT NULL,
	min_value INTEGER NOT NULL,
	max_value INTEGER NOT NULL,
	cycle INTEGER NOT NULL DEFAULT 0,
	called INTEGER NOT NULL DEFAULT 0
);
`

// SQLiteStore keeps catalog records in a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens the catalog database at path, creating it if necessary.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing catalog schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveTable(ctx context.Context, name, definition string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO fluxo_tables (name, definition) VALUES (?, ?)`,
		name, definition)
	return err
}

func (s *SQLiteStore) SaveSequence(ctx context.Context, seq SequenceInfo) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO fluxo_sequences (name, current, increment, min_value, max_value, cycle, called)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seq.Name, seq.Current, seq.Increment, seq.Min, seq.Max, seq.Cycle, seq.Called)
	return err
}

func (s *SQLiteStore) LoadTables(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, definition FROM fluxo_tables`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	defs := make(map[string]string)
	for rows.Next() {
		var name, def string
		if err := rows.Scan(&name, &def); err != nil {
			return nil, err
		}
		defs[name] = def
	}
	return defs, rows.Err()
}

func (s *SQLiteStore) LoadSequences(ctx context.Context) ([]SequenceInfo, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, current, increment, min_value, max_value, cycle, called FROM fluxo_sequences ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seqs []SequenceInfo
	for rows.Next() {
		var seq SequenceInfo
		if err := rows.Scan(&seq.Name, &seq.Current, &seq.Increment, &seq.Min, &seq.Max, &seq.Cycle, &seq.Called); err != nil {
			return nil, err
		}
		seqs = append(seqs, seq)
	}
	return seqs, rows.Err()
}
