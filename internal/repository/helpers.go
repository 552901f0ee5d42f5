package repository

import (
	"time"
)

const timeLayout = time.RFC3339Nano

// parseTime parses a stored timestamp. Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, err = time.Parse(time.RFC3339, s)
		if err != nil {
			return time.Time{}
		}
	}
	return t
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

// nowUTC returns the current UTC time formatted for storage.
func nowUTC() string {
	return time.Now().UTC().Format(timeLayout)
}
