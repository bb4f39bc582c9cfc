package server

import (
	"fmt"
	"strings"
	"time"

	"taskboard/internal/storage"
)

// timestampLayouts are tried in order. Values without a zone are UTC; the
// short forms are what an HTML datetime-local or date input submits.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseTimestamp converts an optional JSON string into a time. Nil and
// blank values mean "not supplied".
func parseTimestamp(field string, raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	value := strings.TrimSpace(*raw)
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: %s is not a valid timestamp", storage.ErrValidation, field)
}
