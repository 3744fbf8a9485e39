package availability

import (
	"errors"
	"time"
)

// Accepted instant layouts: a bare date normalizes to midnight.
var instantLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ErrInvalidInstant indicates a start instant that is missing or not ISO-8601.
var ErrInvalidInstant = errors.New("instant must be an ISO-8601 date or date-time")

// ParseInstant parses an ISO-8601 date or date+time string into a timestamp.
// A date-only value is normalized to midnight UTC.
func ParseInstant(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, ErrInvalidInstant
	}

	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, ErrInvalidInstant
}
