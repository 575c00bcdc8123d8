package store

import (
	"fmt"
	"strings"
	"time"
)

func (s *Store) SetChecked(uuid string, checked bool) error {
	uuid = strings.TrimSpace(uuid)
	if uuid == "" {
		return fmt.Errorf("uuid is required")
	}
	value := 0
	if checked {
		value = 1
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.Exec(`
		INSERT INTO checkbox_state (uuid, checked, updated_utc)
		VALUES (?, ?, ?)
		ON CONFLICT(uuid) DO UPDATE SET checked=excluded.checked, updated_utc=excluded.updated_utc
	`, uuid, value, now); err != nil {
		return fmt.Errorf("set checkbox state: %w", err)
	}
	return nil
}

// CheckedAmong returns the subset of uuids that are checked, in the order
// they were asked for.
func (s *Store) CheckedAmong(uuids []string) ([]string, error) {
	if len(uuids) == 0 {
		return []string{}, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(uuids)), ",")
	args := make([]any, 0, len(uuids))
	for _, u := range uuids {
		args = append(args, u)
	}
	rows, err := s.db.Query(`SELECT uuid FROM checkbox_state WHERE checked = 1 AND uuid IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("query checkbox state: %w", err)
	}
	defer rows.Close()

	checked := map[string]struct{}{}
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan checkbox state: %w", err)
		}
		checked[u] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate checkbox state: %w", err)
	}

	out := make([]string, 0, len(checked))
	for _, u := range uuids {
		if _, ok := checked[u]; ok {
			out = append(out, u)
			delete(checked, u)
		}
	}
	return out, nil
}
