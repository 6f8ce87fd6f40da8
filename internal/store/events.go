package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// GestureEvent records a gesture confirmation.
type GestureEvent struct {
	ID        string    `json:"id"`
	TrackID   string    `json:"track_id"`
	Label     string    `json:"label"`
	Effect    string    `json:"effect,omitempty"`
	AnchorX   float64   `json:"anchor_x"`
	AnchorY   float64   `json:"anchor_y"`
	CreatedAt time.Time `json:"created_at"`
}

// EventRepository stores the gesture confirmation log.
type EventRepository struct {
	db *sql.DB
}

// Events returns the event repository for this store.
func (s *Store) Events() *EventRepository {
	return &EventRepository{db: s.db}
}

// Record inserts e, filling in ID and CreatedAt when unset. Times are
// stored in UTC so the text column sorts and compares chronologically.
func (r *EventRepository) Record(e *GestureEvent) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := r.db.Exec(
		`INSERT INTO gesture_events (id, track_id, label, effect, anchor_x, anchor_y, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TrackID, e.Label, e.Effect, e.AnchorX, e.AnchorY, e.CreatedAt,
	)
	return err
}

// Recent returns up to limit events, newest first.
func (r *EventRepository) Recent(limit int) ([]*GestureEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.Query(
		`SELECT id, track_id, label, effect, anchor_x, anchor_y, created_at
		 FROM gesture_events ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*GestureEvent
	for rows.Next() {
		e := &GestureEvent{}
		if err := rows.Scan(&e.ID, &e.TrackID, &e.Label, &e.Effect, &e.AnchorX, &e.AnchorY, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// Counts returns the number of confirmations per label.
func (r *EventRepository) Counts() (map[string]int, error) {
	rows, err := r.db.Query(`SELECT label, COUNT(*) FROM gesture_events GROUP BY label`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var label string
		var n int
		if err := rows.Scan(&label, &n); err != nil {
			return nil, err
		}
		out[label] = n
	}
	return out, rows.Err()
}

// Prune deletes events older than cutoff and returns how many were removed.
func (r *EventRepository) Prune(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM gesture_events WHERE created_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
