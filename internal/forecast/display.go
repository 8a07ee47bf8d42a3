package forecast

import (
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// clockPart extracts "HH:MM" from a local timestamp string without parsing
// it as an instant.
func clockPart(ts string) string {
	if i := strings.IndexAny(ts, "T "); i >= 0 {
		ts = ts[i+1:]
	} else {
		return ""
	}
	if len(ts) < 5 {
		return ts
	}
	return ts[:5]
}

// FormatTime renders "2024-01-01T14:00" as "2:00 PM". Strings without a clock
// part come back unchanged.
func FormatTime(ts string) string {
	clock := clockPart(ts)
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return ts
	}
	return t.Format("3:04 PM")
}

// ShortDayName returns "Today", "Tomorrow" or the short weekday for date,
// with today being the location's current date. Both are plain calendar
// dates; no timezone conversion happens.
func ShortDayName(date, today string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	if t, err := time.Parse(dateLayout, today); err == nil {
		switch {
		case d.Equal(t):
			return "Today"
		case d.Equal(t.AddDate(0, 0, 1)):
			return "Tomorrow"
		}
	}
	return d.Format("Mon")
}

// FullDate renders "2025-08-05" as "Tuesday, Aug 5, 2025".
func FullDate(date string) string {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return date
	}
	return d.Format("Monday, Jan 2, 2006")
}
