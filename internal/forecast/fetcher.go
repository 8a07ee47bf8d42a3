package forecast

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/units"
	apperrors "github.com/vzahanych/weather-dashboard/pkg/errors"
	"github.com/vzahanych/weather-dashboard/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const forecastDays = "7"

var (
	currentFields = []string{"temperature_2m", "weather_code", "wind_speed_10m", "wind_direction_10m"}
	dailyFields   = []string{"weather_code", "temperature_2m_max", "temperature_2m_min"}
	hourlyFields  = []string{"temperature_2m", "weather_code", "apparent_temperature", "relative_humidity_2m", "precipitation"}
)

// JSONGetter is the transport the fetcher needs; *provider.Client satisfies it.
type JSONGetter interface {
	GetJSON(ctx context.Context, path string, params map[string]string, out interface{}) error
}

type Fetcher struct {
	client JSONGetter
	logger *zap.Logger
	tele   *telemetry.Telemetry
	now    func() time.Time
}

func NewFetcher(client JSONGetter, logger *zap.Logger, tele *telemetry.Telemetry) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		client: client,
		logger: logger,
		tele:   tele,
		now:    time.Now,
	}
}

func requestParams(loc location.Location, u units.Units) map[string]string {
	axes := u.Axes()
	return map[string]string{
		"latitude":           strconv.FormatFloat(loc.Latitude, 'f', -1, 64),
		"longitude":          strconv.FormatFloat(loc.Longitude, 'f', -1, 64),
		"current":            strings.Join(currentFields, ","),
		"daily":              strings.Join(dailyFields, ","),
		"hourly":             strings.Join(hourlyFields, ","),
		"temperature_unit":   string(axes.Temperature),
		"wind_speed_unit":    string(axes.WindSpeed),
		"precipitation_unit": string(axes.Precipitation),
		"timezone":           "auto",
		"forecast_days":      forecastDays,
	}
}

// FetchSnapshot issues one forecast request and normalizes the response. Any
// transport, status or shape problem is reported as FETCH_FAILED.
func (f *Fetcher) FetchSnapshot(ctx context.Context, loc location.Location, u units.Units) (*Snapshot, error) {
	if !u.Valid() {
		u = units.Default
	}

	ctx, span := f.tele.GetTracer().Start(ctx, "forecast.FetchSnapshot")
	defer span.End()
	span.SetAttributes(
		attribute.Int64("location_id", loc.ID),
		attribute.Float64("lat", loc.Latitude),
		attribute.Float64("lon", loc.Longitude),
		attribute.String("units", u.String()),
	)

	var raw forecastResponse
	if err := f.client.GetJSON(ctx, "/forecast", requestParams(loc, u), &raw); err != nil {
		f.logger.Warn("Forecast fetch failed",
			zap.Int64("location_id", loc.ID),
			zap.String("units", u.String()),
			zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apperrors.FetchFailed(err)
	}

	snap, err := raw.normalize(loc, u)
	if err != nil {
		f.logger.Warn("Forecast response has unexpected shape",
			zap.Int64("location_id", loc.ID),
			zap.Error(err))
		f.tele.RecordError(ctx, err, map[string]interface{}{"location_id": loc.ID})
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apperrors.FetchFailed(err)
	}
	snap.FetchedAt = f.now()

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("daily_count", len(snap.Daily)),
		attribute.Int("hourly_count", len(snap.Hourly)),
	)
	f.logger.Debug("Forecast fetched",
		zap.Int64("location_id", loc.ID),
		zap.Int("days", len(snap.Daily)),
		zap.Int("hours", len(snap.Hourly)))

	return snap, nil
}

func shapeError(block, field string, got, want int) error {
	return fmt.Errorf("%s.%s has %d entries, expected %d", block, field, got, want)
}
