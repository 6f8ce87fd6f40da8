package store

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "handglow.db"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_CreatesDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
		t.Fatal("database file should not exist before creating store")
	}

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("database file should exist after creating store: %v", err)
	}
	if s.Path() != dbPath {
		t.Errorf("Path() = %q, want %q", s.Path(), dbPath)
	}
}

func TestNew_RunsMigrations(t *testing.T) {
	s := newTestStore(t)

	for _, table := range []string{"settings", "gesture_events", "schema_version"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	v, err := s.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion() error = %v", err)
	}
	if v != len(migrations) {
		t.Errorf("SchemaVersion() = %d, want %d", v, len(migrations))
	}
}

func TestNew_ReopenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.Settings().Set(KeyTheme, "neon"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	v, _ := s.SchemaVersion()
	if v != len(migrations) {
		t.Errorf("SchemaVersion() = %d after reopen, want %d", v, len(migrations))
	}
	if got, _ := s.Settings().Get(KeyTheme); got != "neon" {
		t.Errorf("theme = %q after reopen, want neon", got)
	}
}

func TestNew_InMemory(t *testing.T) {
	s, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:) error = %v", err)
	}
	defer s.Close()

	if err := s.Settings().Set("k", "v"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, err := s.Settings().Get("k"); err != nil || got != "v" {
		t.Errorf("Get() = %q, %v", got, err)
	}
}

func TestGestureLog_IsSessionScoped(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := s.Events().Record(&GestureEvent{TrackID: "t", Label: "fist"}); err != nil {
		t.Fatal(err)
	}
	if recent, _ := s.Events().Recent(0); len(recent) != 1 {
		t.Fatalf("events during session = %d, want 1", len(recent))
	}
	s.Settings().Set(KeyTheme, "neon")
	s.Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s.Close()

	if recent, _ := s.Events().Recent(0); len(recent) != 0 {
		t.Errorf("events after reopen = %d, want 0", len(recent))
	}
	if got, _ := s.Settings().Get(KeyTheme); got != "neon" {
		t.Errorf("settings lost on reopen: theme = %q", got)
	}
}

func TestGestureLog_ClearedAfterUncleanShutdown(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	s.Events().Record(&GestureEvent{TrackID: "t", Label: "one"})
	// Skip Close's cleanup, as a crash would.
	s.DB().Close()

	s, err = New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if recent, _ := s.Events().Recent(0); len(recent) != 0 {
		t.Errorf("events after unclean shutdown = %d, want 0", len(recent))
	}
}
