// Package kvstore provides persistent string-list slots backed by SQLite.
package kvstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	slot  TEXT NOT NULL,
	idx   INTEGER NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (slot, idx)
);
`

// Store holds named slots, each an ordered list of strings.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the database path under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "worddeck", "worddeck.db"), nil
}

// Open opens (creating if needed) the store at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// GetList reads a slot's values in order. A missing slot yields an empty
// list, not an error.
func (s *Store) GetList(slot string) ([]string, error) {
	rows, err := s.db.Query("SELECT value FROM slots WHERE slot = ? ORDER BY idx", slot)
	if err != nil {
		return nil, fmt.Errorf("reading slot %s: %w", slot, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("reading slot %s: %w", slot, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}

// SetList overwrites a slot with the given values. The write is
// transactional: prior content is fully replaced, never merged.
func (s *Store) SetList(slot string, values []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("writing slot %s: %w", slot, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM slots WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("clearing slot %s: %w", slot, err)
	}
	for i, v := range values {
		if _, err := tx.Exec("INSERT INTO slots (slot, idx, value) VALUES (?, ?, ?)", slot, i, v); err != nil {
			return fmt.Errorf("writing slot %s: %w", slot, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
