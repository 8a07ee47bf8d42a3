package series

import (
	"strings"
	"time"

	"github.com/vzahanych/weather-dashboard/internal/forecast"
)

const hourKeyLayout = "2006-01-02T15"

// DayBucket holds the hourly samples that fall on one daily entry's date.
type DayBucket struct {
	Date  string          `json:"date"`
	Hours []forecast.Hour `json:"hours"`
}

func (b DayBucket) Empty() bool {
	return len(b.Hours) == 0
}

// split separates a provider timestamp into its date and clock parts. The
// string is never parsed as an instant: the provider already emits the
// location's local time, and re-parsing would shift dates near midnight.
func split(ts string) (date, clock string) {
	if i := strings.IndexByte(ts, 'T'); i >= 0 {
		return ts[:i], ts[i+1:]
	}
	if i := strings.IndexByte(ts, ' '); i >= 0 {
		return ts[:i], ts[i+1:]
	}
	return ts, ""
}

// DateKey is the calendar date of a local timestamp string.
func DateKey(ts string) string {
	date, _ := split(ts)
	return date
}

// HourKey truncates a local timestamp string to "YYYY-MM-DDTHH". Timestamps
// without a clock part map to the start of their day.
func HourKey(ts string) string {
	date, clock := split(ts)
	hour := "00"
	if len(clock) >= 2 {
		hour = clock[:2]
	}
	return date + "T" + hour
}

// Align buckets every hourly sample under the daily entry with the same
// date, one bucket per daily entry in daily order. Samples whose date has no
// daily entry are dropped.
func Align(snap *forecast.Snapshot) []DayBucket {
	return align(snap, "")
}

// AlignFrom is Align restricted to hours at or after now's hour, with now
// taken in the snapshot's timezone.
func AlignFrom(snap *forecast.Snapshot, now time.Time) []DayBucket {
	if snap == nil {
		return []DayBucket{}
	}
	return align(snap, now.In(snap.Zone()).Format(hourKeyLayout))
}

func align(snap *forecast.Snapshot, from string) []DayBucket {
	if snap == nil {
		return []DayBucket{}
	}

	buckets := make([]DayBucket, len(snap.Daily))
	index := make(map[string]int, len(snap.Daily))
	for i, day := range snap.Daily {
		buckets[i] = DayBucket{Date: day.Date, Hours: []forecast.Hour{}}
		if _, dup := index[day.Date]; !dup {
			index[day.Date] = i
		}
	}

	for _, hour := range snap.Hourly {
		i, ok := index[DateKey(hour.Time)]
		if !ok {
			continue
		}
		if from != "" && HourKey(hour.Time) < from {
			continue
		}
		buckets[i].Hours = append(buckets[i].Hours, hour)
	}

	return buckets
}

// FirstNonEmpty returns the index of the first bucket with hours.
func FirstNonEmpty(buckets []DayBucket) (int, bool) {
	for i, b := range buckets {
		if !b.Empty() {
			return i, true
		}
	}
	return -1, false
}

// SelectDay keeps selected while its bucket has hours, otherwise advances to
// the first non-empty bucket. With no hours anywhere, selected is kept if it
// names a bucket and the first bucket is chosen otherwise.
func SelectDay(buckets []DayBucket, selected string) string {
	known := false
	for _, b := range buckets {
		if b.Date != selected {
			continue
		}
		if !b.Empty() {
			return selected
		}
		known = true
		break
	}

	if i, ok := FirstNonEmpty(buckets); ok {
		return buckets[i].Date
	}
	if known || len(buckets) == 0 {
		return selected
	}
	return buckets[0].Date
}
