package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Setting keys.
const (
	KeyTheme             = "theme"
	KeyIntensity         = "intensity"
	KeyAnimationsEnabled = "animations_enabled"
	KeyCamera            = "camera"
)

// Preferences are the user-facing settings persisted between runs.
type Preferences struct {
	Theme             string  `json:"theme"`
	Intensity         float64 `json:"intensity"`
	AnimationsEnabled bool    `json:"animations_enabled"`
	Camera            int     `json:"camera"`
}

// SettingsRepository reads and writes key/value settings.
type SettingsRepository struct {
	db *sql.DB
}

// Settings returns the settings repository for this store.
func (s *Store) Settings() *SettingsRepository {
	return &SettingsRepository{db: s.db}
}

// Get returns the value stored under key.
func (r *SettingsRepository) Get(key string) (string, error) {
	var value string
	err := r.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// Set stores value under key, replacing any previous value.
func (r *SettingsRepository) Set(key, value string) error {
	_, err := r.db.Exec(
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now(),
	)
	return err
}

// Delete removes key.
func (r *SettingsRepository) Delete(key string) error {
	result, err := r.db.Exec(`DELETE FROM settings WHERE key = ?`, key)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// All returns every stored setting.
func (r *SettingsRepository) All() (map[string]string, error) {
	rows, err := r.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// LoadPreferences overlays stored values onto defaults. Values that fail to
// parse are reported as errors.
func (r *SettingsRepository) LoadPreferences(defaults Preferences) (Preferences, error) {
	all, err := r.All()
	if err != nil {
		return defaults, err
	}

	p := defaults
	if v, ok := all[KeyTheme]; ok {
		p.Theme = v
	}
	if v, ok := all[KeyIntensity]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return defaults, fmt.Errorf("setting %s: %w", KeyIntensity, err)
		}
		p.Intensity = f
	}
	if v, ok := all[KeyAnimationsEnabled]; ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return defaults, fmt.Errorf("setting %s: %w", KeyAnimationsEnabled, err)
		}
		p.AnimationsEnabled = b
	}
	if v, ok := all[KeyCamera]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return defaults, fmt.Errorf("setting %s: %w", KeyCamera, err)
		}
		p.Camera = n
	}
	return p, nil
}

// SavePreferences writes every preference in one transaction.
func (r *SettingsRepository) SavePreferences(p Preferences) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now()
	values := map[string]string{
		KeyTheme:             p.Theme,
		KeyIntensity:         strconv.FormatFloat(p.Intensity, 'f', -1, 64),
		KeyAnimationsEnabled: strconv.FormatBool(p.AnimationsEnabled),
		KeyCamera:            strconv.Itoa(p.Camera),
	}
	for k, v := range values {
		if _, err := tx.Exec(
			`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			k, v, now,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
