package forecast

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/provider"
	"github.com/vzahanych/weather-dashboard/internal/units"
	apperrors "github.com/vzahanych/weather-dashboard/pkg/errors"
	"go.uber.org/zap/zaptest"
)

const sampleForecast = `{
  "latitude": 48.86,
  "longitude": 2.35,
  "timezone": "Europe/Paris",
  "utc_offset_seconds": 3600,
  "current": {"time": "2024-01-01T22:45", "temperature_2m": 7.4, "weather_code": 3, "wind_speed_10m": 12.2, "wind_direction_10m": 240},
  "daily": {
    "time": ["2024-01-01", "2024-01-02"],
    "weather_code": [3, 61],
    "temperature_2m_max": [9.1, 8.0],
    "temperature_2m_min": [4.2, 3.5]
  },
  "hourly": {
    "time": ["2024-01-01T22:00", "2024-01-01T23:00", "2024-01-02T00:00"],
    "temperature_2m": [7.5, 7.1, 6.8],
    "weather_code": [3, 3, 61],
    "apparent_temperature": [4.9, 4.5, 4.0],
    "relative_humidity_2m": [81, 84, 88],
    "precipitation": [0.0, 0.1, 0.4]
  }
}`

var paris = location.Location{ID: 2988507, Name: "Paris", Latitude: 48.8566, Longitude: 2.3522, Country: "France", Admin1: "Île-de-France"}

func newTestFetcher(t *testing.T, handler http.HandlerFunc) *Fetcher {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := provider.New("forecast", config.ProviderConfig{BaseURL: srv.URL}, config.ProvidersConfig{}, zaptest.NewLogger(t))
	f := NewFetcher(client, zaptest.NewLogger(t), nil)
	f.now = func() time.Time { return time.Date(2024, 1, 1, 21, 50, 0, 0, time.UTC) }
	return f
}

func TestFetchSnapshotRequestParameters(t *testing.T) {
	tests := []struct {
		name          string
		units         units.Units
		temperature   string
		windSpeed     string
		precipitation string
	}{
		{name: "metric", units: units.Metric, temperature: "celsius", windSpeed: "kmh", precipitation: "mm"},
		{name: "imperial", units: units.Imperial, temperature: "fahrenheit", windSpeed: "mph", precipitation: "inch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "/forecast", r.URL.Path)
				assert.Equal(t, "48.8566", q.Get("latitude"))
				assert.Equal(t, "2.3522", q.Get("longitude"))
				assert.Equal(t, "temperature_2m,weather_code,wind_speed_10m,wind_direction_10m", q.Get("current"))
				assert.Equal(t, "weather_code,temperature_2m_max,temperature_2m_min", q.Get("daily"))
				assert.Equal(t, "temperature_2m,weather_code,apparent_temperature,relative_humidity_2m,precipitation", q.Get("hourly"))
				assert.Equal(t, tt.temperature, q.Get("temperature_unit"))
				assert.Equal(t, tt.windSpeed, q.Get("wind_speed_unit"))
				assert.Equal(t, tt.precipitation, q.Get("precipitation_unit"))
				assert.Equal(t, "auto", q.Get("timezone"))
				assert.Equal(t, "7", q.Get("forecast_days"))
				_, _ = w.Write([]byte(sampleForecast))
			})

			snap, err := f.FetchSnapshot(context.Background(), paris, tt.units)
			require.NoError(t, err)
			assert.Equal(t, tt.units, snap.Units)
		})
	}
}

func TestFetchSnapshotNormalizesColumns(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleForecast))
	})

	snap, err := f.FetchSnapshot(context.Background(), paris, units.Metric)
	require.NoError(t, err)

	assert.Equal(t, paris, snap.Location)
	assert.Equal(t, Current{Temperature: 7.4, WeatherCode: 3, WindSpeed: 12.2, WindDirection: 240}, snap.Current)
	assert.Equal(t, []Day{
		{Date: "2024-01-01", WeatherCode: 3, MaxTemperature: 9.1, MinTemperature: 4.2},
		{Date: "2024-01-02", WeatherCode: 61, MaxTemperature: 8.0, MinTemperature: 3.5},
	}, snap.Daily)
	assert.Equal(t, []Hour{
		{Time: "2024-01-01T22:00", Temperature: 7.5, WeatherCode: 3},
		{Time: "2024-01-01T23:00", Temperature: 7.1, WeatherCode: 3},
		{Time: "2024-01-02T00:00", Temperature: 6.8, WeatherCode: 61},
	}, snap.Hourly)
	assert.Equal(t, 4.9, snap.FeelsLike)
	assert.Equal(t, 81.0, snap.Humidity)
	assert.Equal(t, 0.0, snap.Precipitation)
	assert.Equal(t, "Europe/Paris", snap.Timezone)
	assert.Equal(t, 3600, snap.UTCOffsetSeconds)
	assert.Equal(t, time.Date(2024, 1, 1, 21, 50, 0, 0, time.UTC), snap.FetchedAt)
}

func TestFetchSnapshotCompositeFallbacks(t *testing.T) {
	f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
		  "current": {"temperature_2m": 30.2, "weather_code": 0, "wind_speed_10m": 5, "wind_direction_10m": 90},
		  "daily": {"time": ["2024-07-01"], "weather_code": [0], "temperature_2m_max": [33], "temperature_2m_min": [21]},
		  "hourly": {"time": ["2024-07-01T00:00"], "temperature_2m": [24], "weather_code": [0], "apparent_temperature": [null]}
		}`))
	})

	snap, err := f.FetchSnapshot(context.Background(), paris, units.Metric)
	require.NoError(t, err)
	assert.Equal(t, 30.2, snap.FeelsLike)
	assert.Equal(t, 0.0, snap.Humidity)
	assert.Equal(t, 0.0, snap.Precipitation)
}

func TestFetchSnapshotFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":true}`, wantErr: provider.ErrUnexpectedStatus},
		{name: "bad request", status: http.StatusBadRequest, body: `{"error":true,"reason":"Latitude must be in range"}`, wantErr: provider.ErrUnexpectedStatus},
		{name: "malformed json", status: http.StatusOK, body: `{"current":`, wantErr: provider.ErrDecode},
		{name: "missing current", status: http.StatusOK, body: `{"daily":{"time":[]},"hourly":{"time":[]}}`, wantErr: errMissingCurrent},
		{name: "missing hourly", status: http.StatusOK, body: `{"current":{},"daily":{"time":[]}}`, wantErr: errMissingHourly},
		{
			name:   "misaligned daily columns",
			status: http.StatusOK,
			body: `{"current":{},"daily":{"time":["2024-01-01","2024-01-02"],"weather_code":[1],"temperature_2m_max":[1,2],"temperature_2m_min":[1,2]},
			        "hourly":{"time":[],"temperature_2m":[],"weather_code":[]}}`,
		},
		{
			name:   "misaligned hourly columns",
			status: http.StatusOK,
			body: `{"current":{},"daily":{"time":[],"weather_code":[],"temperature_2m_max":[],"temperature_2m_min":[]},
			        "hourly":{"time":["2024-01-01T00:00"],"temperature_2m":[],"weather_code":[1]}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestFetcher(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			snap, err := f.FetchSnapshot(context.Background(), paris, units.Metric)
			require.Error(t, err)
			assert.Nil(t, snap)
			assert.True(t, apperrors.IsCode(err, apperrors.CodeFetchFailed))
			assert.Equal(t, apperrors.MessageFetchFailed, err.Error())
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", errors.Unwrap(err))
			}
		})
	}
}

func TestSnapshotZone(t *testing.T) {
	named := &Snapshot{Timezone: "Asia/Tokyo", UTCOffsetSeconds: 32400}
	assert.Equal(t, "Asia/Tokyo", named.Zone().String())

	offsetOnly := &Snapshot{Timezone: "Nowhere/Unknown", UTCOffsetSeconds: -3600}
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, offsetOnly.Zone()).Zone()
	assert.Equal(t, -3600, offset)

	assert.Equal(t, time.UTC, (&Snapshot{}).Zone())

	now := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-02", named.Today(now))
}
