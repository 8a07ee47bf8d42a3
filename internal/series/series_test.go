package series

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-dashboard/internal/forecast"
)

func hoursFor(dates ...string) []forecast.Hour {
	var hours []forecast.Hour
	for _, d := range dates {
		for h := 0; h < 24; h++ {
			hours = append(hours, forecast.Hour{Time: fmt.Sprintf("%sT%02d:00", d, h), Temperature: float64(h)})
		}
	}
	return hours
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2024-01-01", DateKey("2024-01-01T23:00"))
	assert.Equal(t, "2024-01-01", DateKey("2024-01-01 23:00"))
	assert.Equal(t, "2024-01-01", DateKey("2024-01-01"))
	assert.Equal(t, "2024-01-01", DateKey("2024-01-01T23:00+05:00"))
}

func TestHourKey(t *testing.T) {
	assert.Equal(t, "2024-01-01T23", HourKey("2024-01-01T23:00"))
	assert.Equal(t, "2024-01-01T07", HourKey("2024-01-01 07:45"))
	assert.Equal(t, "2024-01-01T00", HourKey("2024-01-01"))
}

func TestAlignMidnightBoundary(t *testing.T) {
	snap := &forecast.Snapshot{
		Daily: []forecast.Day{{Date: "2024-01-01"}, {Date: "2024-01-02"}},
		Hourly: []forecast.Hour{
			{Time: "2024-01-01T23:00", Temperature: 1},
			{Time: "2024-01-02T00:00", Temperature: 2},
		},
	}

	buckets := Align(snap)

	require.Len(t, buckets, 2)
	assert.Equal(t, "2024-01-01", buckets[0].Date)
	assert.Equal(t, []forecast.Hour{{Time: "2024-01-01T23:00", Temperature: 1}}, buckets[0].Hours)
	assert.Equal(t, "2024-01-02", buckets[1].Date)
	assert.Equal(t, []forecast.Hour{{Time: "2024-01-02T00:00", Temperature: 2}}, buckets[1].Hours)
}

func TestAlignIgnoresViewerTimezone(t *testing.T) {
	// Tokyo is UTC+9: the local strings must bucket as written.
	snap := &forecast.Snapshot{
		Timezone: "Asia/Tokyo",
		Daily:    []forecast.Day{{Date: "2024-01-01"}, {Date: "2024-01-02"}},
		Hourly:   hoursFor("2024-01-01", "2024-01-02"),
	}

	buckets := Align(snap)
	require.Len(t, buckets, 2)
	assert.Len(t, buckets[0].Hours, 24)
	assert.Len(t, buckets[1].Hours, 24)
	assert.Equal(t, "2024-01-01T00:00", buckets[0].Hours[0].Time)
	assert.Equal(t, "2024-01-02T23:00", buckets[1].Hours[23].Time)
}

func TestAlignDropsUnmatchedAndKeepsDailyOrder(t *testing.T) {
	snap := &forecast.Snapshot{
		Daily: []forecast.Day{{Date: "2024-01-02"}, {Date: "2024-01-01"}, {Date: "2024-01-05"}},
		Hourly: []forecast.Hour{
			{Time: "2024-01-01T10:00"},
			{Time: "2024-01-02T10:00"},
			{Time: "2024-01-03T10:00"},
		},
	}

	buckets := Align(snap)

	require.Len(t, buckets, 3)
	assert.Equal(t, "2024-01-02", buckets[0].Date)
	assert.Len(t, buckets[0].Hours, 1)
	assert.Equal(t, "2024-01-01", buckets[1].Date)
	assert.Len(t, buckets[1].Hours, 1)
	assert.True(t, buckets[2].Empty())
	assert.NotNil(t, buckets[2].Hours)
}

func TestAlignDuplicateDatesUseFirstBucket(t *testing.T) {
	snap := &forecast.Snapshot{
		Daily:  []forecast.Day{{Date: "2024-01-01"}, {Date: "2024-01-01"}},
		Hourly: []forecast.Hour{{Time: "2024-01-01T10:00"}},
	}

	buckets := Align(snap)
	assert.Len(t, buckets[0].Hours, 1)
	assert.Empty(t, buckets[1].Hours)
}

func TestAlignEveryHourAtMostOnce(t *testing.T) {
	snap := &forecast.Snapshot{
		Daily:  []forecast.Day{{Date: "2024-03-30"}, {Date: "2024-03-31"}, {Date: "2024-04-01"}},
		Hourly: hoursFor("2024-03-29", "2024-03-30", "2024-03-31", "2024-04-01", "2024-04-02"),
	}

	seen := map[string]int{}
	for _, b := range Align(snap) {
		for _, h := range b.Hours {
			seen[h.Time]++
			assert.Equal(t, b.Date, DateKey(h.Time))
		}
	}
	assert.Len(t, seen, 72)
	for ts, n := range seen {
		assert.Equal(t, 1, n, ts)
	}
}

func TestAlignIsDeterministic(t *testing.T) {
	snap := &forecast.Snapshot{
		Timezone: "Europe/Paris",
		Daily:    []forecast.Day{{Date: "2024-01-01"}, {Date: "2024-01-02"}},
		Hourly:   hoursFor("2024-01-01", "2024-01-02"),
	}
	now := time.Date(2024, 1, 1, 12, 17, 0, 0, time.UTC)

	assert.Equal(t, AlignFrom(snap, now), AlignFrom(snap, now))
	assert.Equal(t, Align(snap), Align(snap))
}

func TestAlignFromFiltersPastHours(t *testing.T) {
	snap := &forecast.Snapshot{
		Timezone: "UTC",
		Daily:    []forecast.Day{{Date: "2024-01-01"}, {Date: "2024-01-02"}},
		Hourly:   hoursFor("2024-01-01", "2024-01-02"),
	}

	for hour := 0; hour < 24; hour++ {
		now := time.Date(2024, 1, 1, hour, 59, 59, 0, time.UTC)
		buckets := AlignFrom(snap, now)

		require.Len(t, buckets[0].Hours, 24-hour, "hour %d", hour)
		assert.Equal(t, fmt.Sprintf("2024-01-01T%02d:00", hour), buckets[0].Hours[0].Time)
		assert.Len(t, buckets[1].Hours, 24)
	}
}

func TestAlignFromUsesLocationTimezone(t *testing.T) {
	snap := &forecast.Snapshot{
		Timezone: "Asia/Tokyo",
		Daily:    []forecast.Day{{Date: "2024-01-01"}, {Date: "2024-01-02"}},
		Hourly:   hoursFor("2024-01-01", "2024-01-02"),
	}

	// 15:30 UTC is 00:30 on Jan 2 in Tokyo.
	buckets := AlignFrom(snap, time.Date(2024, 1, 1, 15, 30, 0, 0, time.UTC))

	assert.True(t, buckets[0].Empty())
	require.Len(t, buckets[1].Hours, 24)
	assert.Equal(t, "2024-01-02T00:00", buckets[1].Hours[0].Time)
}

func TestAlignFromOffsetOnly(t *testing.T) {
	snap := &forecast.Snapshot{
		UTCOffsetSeconds: -5 * 3600,
		Daily:            []forecast.Day{{Date: "2024-01-01"}},
		Hourly:           hoursFor("2024-01-01"),
	}

	buckets := AlignFrom(snap, time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC))
	require.NotEmpty(t, buckets[0].Hours)
	assert.Equal(t, "2024-01-01T15:00", buckets[0].Hours[0].Time)
}

func TestAlignNilSnapshot(t *testing.T) {
	assert.Empty(t, Align(nil))
	assert.Empty(t, AlignFrom(nil, time.Now()))
}

func TestSelectDay(t *testing.T) {
	buckets := []DayBucket{
		{Date: "2024-01-01", Hours: []forecast.Hour{}},
		{Date: "2024-01-02", Hours: []forecast.Hour{{Time: "2024-01-02T00:00"}}},
		{Date: "2024-01-03", Hours: []forecast.Hour{{Time: "2024-01-03T00:00"}}},
	}

	i, ok := FirstNonEmpty(buckets)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	assert.Equal(t, "2024-01-03", SelectDay(buckets, "2024-01-03"))
	assert.Equal(t, "2024-01-02", SelectDay(buckets, "2024-01-01"))
	assert.Equal(t, "2024-01-02", SelectDay(buckets, ""))
	assert.Equal(t, "2024-01-02", SelectDay(buckets, "2030-01-01"))

	empty := []DayBucket{{Date: "2024-01-01", Hours: []forecast.Hour{}}, {Date: "2024-01-02", Hours: []forecast.Hour{}}}
	_, ok = FirstNonEmpty(empty)
	assert.False(t, ok)
	assert.Equal(t, "2024-01-02", SelectDay(empty, "2024-01-02"))
	assert.Equal(t, "2024-01-01", SelectDay(empty, ""))
	assert.Equal(t, "", SelectDay(nil, ""))
}
