package handlers

import (
	"time"

	"github.com/amgrenovation/ops-dashboard/internal/timezone"
)

// parseDay reads a "2006-01-02" calendar day in the business timezone.
func parseDay(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, timezone.Business())
}

// parseInstant accepts RFC 3339 timestamps, with or without fractional
// seconds, and falls back to a calendar day.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return parseDay(s)
}
