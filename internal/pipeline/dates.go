package pipeline

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Day comes before month everywhere:
// "03-04-2024" is the 3rd of April. Go accepts zero-padded values for
// the unpadded layout elements, so "2-1-2006" covers "03-04-2024" too.
var dateLayouts = []string{
	"2-Jan-2006",
	"2-Jan-06",
	"2 Jan 2006",
	"2 January 2006",
	"2-1-2006",
	"2/1/2006",
	"2-1-06",
	"2/1/06",
	"2006-01-02",
	"2006-01-02 15:04:05",
}

// ParseDate parses a free-form date string, localizing month
// abbreviations first. Returns nil when the string cannot be read as a
// date; this is the "no date" sentinel, never an error. The result is
// truncated to midnight UTC so day arithmetic stays exact.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	s = LocalizeMonths(s)

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	}
	return nil
}

// dateOnly truncates a wall-clock instant to midnight UTC.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
