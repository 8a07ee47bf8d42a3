package cmd

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-dashboard/internal/dashboard"
	"github.com/vzahanych/weather-dashboard/internal/forecast"
	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/preferences"
	"github.com/vzahanych/weather-dashboard/internal/units"
	"go.uber.org/zap/zaptest"
)

var berlin = location.Location{ID: 2950159, Name: "Berlin", Latitude: 52.52, Longitude: 13.41, Country: "Germany"}

type stubLocations struct {
	searched []string
	located  int
}

func (s *stubLocations) SearchByName(ctx context.Context, query string) ([]location.Location, error) {
	s.searched = append(s.searched, query)
	if query == "Berlin" {
		return []location.Location{berlin}, nil
	}
	return []location.Location{}, nil
}

func (s *stubLocations) ResolveCoordinates(ctx context.Context, lat, lon float64) location.Location {
	s.located++
	return location.Placeholder(lat, lon, time.Now())
}

func newTestDashboard(t *testing.T, locs *stubLocations, store preferences.Store) *dashboard.Dashboard {
	t.Helper()
	return dashboard.New(locs, nil, store, zaptest.NewLogger(t))
}

func TestTargetLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("name takes the first result", func(t *testing.T) {
		locs := &stubLocations{}
		f := targetFlags{name: "Berlin"}
		loc, err := f.location(ctx, newTestDashboard(t, locs, nil))
		require.NoError(t, err)
		assert.Equal(t, berlin, loc)
	})

	t.Run("unknown name fails", func(t *testing.T) {
		f := targetFlags{name: "xyzzy123"}
		_, err := f.location(ctx, newTestDashboard(t, &stubLocations{}, nil))
		assert.Error(t, err)
	})

	t.Run("coordinates are resolved", func(t *testing.T) {
		locs := &stubLocations{}
		f := targetFlags{lat: 0, lon: 0, hasLat: true, hasLon: true}
		loc, err := f.location(ctx, newTestDashboard(t, locs, nil))
		require.NoError(t, err)
		assert.Equal(t, location.PlaceholderName, loc.Name)
		assert.Equal(t, 1, locs.located)
	})

	t.Run("nothing given uses the default", func(t *testing.T) {
		locs := &stubLocations{}
		loc, err := (&targetFlags{}).location(ctx, newTestDashboard(t, locs, nil))
		require.NoError(t, err)
		assert.Equal(t, location.Default, loc)
		assert.Empty(t, locs.searched)
	})
}

func TestTargetUnits(t *testing.T) {
	ctx := context.Background()
	store := preferences.NewMemoryStore()
	require.NoError(t, store.Save(ctx, units.Imperial))
	d := newTestDashboard(t, &stubLocations{}, store)

	u, err := (&targetFlags{}).resolveUnits(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, units.Imperial, u)

	u, err = (&targetFlags{units: "METRIC"}).resolveUnits(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, units.Metric, u)

	_, err = (&targetFlags{units: "kelvin"}).resolveUnits(ctx, d)
	assert.Error(t, err)
}

func TestPrintView(t *testing.T) {
	snap := &forecast.Snapshot{
		Location: berlin,
		Units:    units.Metric,
		Timezone: "Europe/Berlin",
		Current:  forecast.Current{Temperature: 21.4, WeatherCode: 0, WindSpeed: 12.6},
		Daily: []forecast.Day{
			{Date: "2025-08-05", WeatherCode: 0, MaxTemperature: 25, MinTemperature: 14},
			{Date: "2025-08-06", WeatherCode: 61, MaxTemperature: 19, MinTemperature: 12},
		},
		Hourly: []forecast.Hour{
			{Time: "2025-08-05T14:00", Temperature: 22, WeatherCode: 0},
			{Time: "2025-08-05T15:00", Temperature: 23, WeatherCode: 2},
		},
		FeelsLike: 20.6,
		Humidity:  55,
	}
	now := time.Date(2025, 8, 5, 12, 10, 0, 0, time.UTC)

	var buf bytes.Buffer
	printView(&buf, dashboard.BuildView(snap, now, ""))
	out := buf.String()

	assert.Contains(t, out, "Berlin, Germany")
	assert.Contains(t, out, "Tuesday, Aug 5, 2025")
	assert.Contains(t, out, "* Today")
	assert.Contains(t, out, "Tomorrow")
	assert.Contains(t, out, "2:00 PM")
	assert.Contains(t, out, "3:00 PM")
}

func TestPrintViewWithoutSnapshot(t *testing.T) {
	var buf bytes.Buffer
	printView(&buf, dashboard.BuildView(nil, time.Now(), ""))
	assert.Equal(t, "No forecast loaded\n", buf.String())
}
