package appointment

import (
	"strings"
	"time"

	"github.com/amgrenovation/ops-dashboard/internal/httperr"
	"github.com/amgrenovation/ops-dashboard/internal/timezone"
)

// parseWhen accepts either a full RFC 3339 timestamp in date, or a calendar
// date plus an "HH:MM" time interpreted in the business timezone. Both empty
// means the appointment is not scheduled yet.
func parseWhen(date, clock string) (*time.Time, error) {
	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	if date == "" && clock == "" {
		return nil, nil
	}

	if clock == "" {
		if t, err := time.Parse(time.RFC3339, date); err == nil {
			return &t, nil
		}
		clock = "00:00"
	}

	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, timezone.Business())
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}
	return &t, nil
}
