package sqlite

import (
	"context"
	"strconv"
)

const darkModeKey = "dark_mode"

// DarkMode reports the stored theme preference. It is false until set.
func (s *Store) DarkMode(ctx context.Context) (bool, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM preferences WHERE key = ?`, darkModeKey).Scan(&raw)
	if isNoRows(err) {
		return false, nil
	}
	if err != nil {
		return false, unavailable("get dark mode", err)
	}
	enabled, err := strconv.ParseBool(raw)
	if err != nil {
		return false, unavailable("parse dark mode", err)
	}
	return enabled, nil
}

// SetDarkMode stores the theme preference.
func (s *Store) SetDarkMode(ctx context.Context, enabled bool) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	_, err := s.db.ExecContext(ctx, `INSERT INTO preferences(key, value) VALUES(?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value`, darkModeKey, strconv.FormatBool(enabled))
	if err != nil {
		return unavailable("set dark mode", err)
	}
	return nil
}
