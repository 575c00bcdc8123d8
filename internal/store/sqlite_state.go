package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// App state keys.
const (
	StateGridDownloads = "grid_downloads"
	StateLastRescan    = "reports_last_rescan"
)

func (s *Store) SetAppState(key, value string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.Exec(`
		INSERT INTO app_state (key, value, updated_utc)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated_utc=excluded.updated_utc
	`, key, value, now); err != nil {
		return fmt.Errorf("set app state %q: %w", key, err)
	}
	return nil
}

// GetAppState returns the value for key and when it was last written.
func (s *Store) GetAppState(key string) (string, time.Time, bool, error) {
	var value, updated string
	err := s.db.QueryRow(`SELECT value, updated_utc FROM app_state WHERE key = ?`, key).Scan(&value, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return "", time.Time{}, false, nil
	}
	if err != nil {
		return "", time.Time{}, false, fmt.Errorf("get app state %q: %w", key, err)
	}
	ts, _ := time.Parse(time.RFC3339Nano, updated)
	return value, ts, true, nil
}
