// Package store persists handglow settings in SQLite. It also holds the
// confirmed-gesture log, which only lives for one session: it is emptied
// when the store is opened and again when it is closed.
package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store is a SQLite database handle.
type Store struct {
	db   *sql.DB
	path string
}

// New opens (or creates) the database at dbPath and runs migrations.
// Use ":memory:" for a throwaway database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes
	// writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Left over from a session that did not shut down cleanly.
	if err := s.clearEvents(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to clear gesture log: %w", err)
	}

	return s, nil
}

// Close empties the gesture log and closes the database connection.
func (s *Store) Close() error {
	clearErr := s.clearEvents()
	if err := s.db.Close(); err != nil {
		return err
	}
	return clearErr
}

func (s *Store) clearEvents() error {
	_, err := s.db.Exec(`DELETE FROM gesture_events`)
	return err
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}
