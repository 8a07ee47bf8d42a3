package dashboard

import (
	"context"
	"time"

	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/forecast"
	"github.com/vzahanych/weather-dashboard/internal/geo"
	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/preferences"
	"github.com/vzahanych/weather-dashboard/internal/provider"
	"github.com/vzahanych/weather-dashboard/internal/units"
	"github.com/vzahanych/weather-dashboard/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LocationService resolves names and coordinates to locations.
type LocationService interface {
	SearchByName(ctx context.Context, query string) ([]location.Location, error)
	ResolveCoordinates(ctx context.Context, lat, lon float64) location.Location
}

// SnapshotFetcher retrieves a normalized forecast.
type SnapshotFetcher interface {
	FetchSnapshot(ctx context.Context, loc location.Location, u units.Units) (*forecast.Snapshot, error)
}

// Dashboard ties the resolver, fetcher and preference store together. It
// holds no per-session state; see Session.
type Dashboard struct {
	locations       LocationService
	fetcher         SnapshotFetcher
	store           preferences.Store
	locator         geo.Locator
	locateTimeout   time.Duration
	defaultLocation location.Location
	logger          *zap.Logger
	tele            *telemetry.Telemetry
	now             func() time.Time
}

type Option func(*Dashboard)

func WithLocator(l geo.Locator, timeout time.Duration) Option {
	return func(d *Dashboard) {
		d.locator = l
		d.locateTimeout = timeout
	}
}

func WithTelemetry(tele *telemetry.Telemetry) Option {
	return func(d *Dashboard) {
		d.tele = tele
	}
}

func WithClock(now func() time.Time) Option {
	return func(d *Dashboard) {
		d.now = now
	}
}

func New(locations LocationService, fetcher SnapshotFetcher, store preferences.Store, logger *zap.Logger, opts ...Option) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = preferences.NewMemoryStore()
	}

	d := &Dashboard{
		locations:       locations,
		fetcher:         fetcher,
		store:           store,
		defaultLocation: location.Default,
		logger:          logger,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewFromConfig wires the provider clients described by cfg.
func NewFromConfig(cfg *config.Config, store preferences.Store, logger *zap.Logger, tele *telemetry.Telemetry, recorder provider.CallRecorder) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientOpts := []provider.Option{provider.WithTelemetry(tele)}
	if recorder != nil {
		clientOpts = append(clientOpts, provider.WithRecorder(recorder))
	}

	geocoding := location.NewGeocodingClient(
		provider.New("geocoding", cfg.Providers.Geocoding, cfg.Providers, logger, clientOpts...))
	nominatim := location.NewNominatimClient(
		provider.New("reverse", cfg.Providers.Reverse, cfg.Providers, logger, clientOpts...))
	resolver := location.NewResolver(geocoding, nominatim, geocoding, logger, tele)

	fetcher := forecast.NewFetcher(
		provider.New("forecast", cfg.Providers.Forecast, cfg.Providers, logger, clientOpts...), logger, tele)

	opts := []Option{WithTelemetry(tele)}
	if cfg.Geolocation.Enabled {
		locator := geo.NewCachedLocator(geo.StaticLocator{
			Position: geo.Coordinates{Latitude: cfg.Geolocation.Latitude, Longitude: cfg.Geolocation.Longitude},
			Enabled:  true,
		}, time.Duration(cfg.Geolocation.MaxAge)*time.Second)
		opts = append(opts, WithLocator(locator, time.Duration(cfg.Geolocation.Timeout)*time.Second))
	}

	return New(resolver, fetcher, store, logger, opts...)
}

func (d *Dashboard) Search(ctx context.Context, query string) ([]location.Location, error) {
	return d.locations.SearchByName(ctx, query)
}

func (d *Dashboard) Locate(ctx context.Context, lat, lon float64) location.Location {
	return d.locations.ResolveCoordinates(ctx, lat, lon)
}

func (d *Dashboard) Snapshot(ctx context.Context, loc location.Location, u units.Units) (*forecast.Snapshot, error) {
	return d.fetcher.FetchSnapshot(ctx, loc, u)
}

// LoadSnapshot runs one complete load against s and returns the resulting
// state. Callers sharing state across goroutines use Session instead.
func (d *Dashboard) LoadSnapshot(ctx context.Context, s State, loc location.Location) State {
	s, req := Begin(s)
	snap, err := d.fetcher.FetchSnapshot(ctx, loc, req.Units)
	next, _ := Complete(s, req, snap, err)
	return next
}

// SetUnits persists u and, when a snapshot is loaded, refetches it in the
// new unit system. A failed save is logged and does not block the switch.
func (d *Dashboard) SetUnits(ctx context.Context, s State, u units.Units) State {
	d.saveUnits(ctx, u)
	s = WithUnits(s, u)
	if s.Snapshot == nil {
		return s
	}
	return d.LoadSnapshot(ctx, s, s.Snapshot.Location)
}

func (d *Dashboard) saveUnits(ctx context.Context, u units.Units) {
	if err := d.store.Save(ctx, u); err != nil {
		d.logger.Warn("Failed to persist unit preference", zap.String("units", u.String()), zap.Error(err))
	}
}

// InitialUnits reads the stored preference once.
func (d *Dashboard) InitialUnits(ctx context.Context) units.Units {
	return preferences.Initial(ctx, d.store, d.logger)
}

// Units returns the stored preference.
func (d *Dashboard) Units(ctx context.Context) (units.Units, error) {
	return d.store.Load(ctx)
}

// SaveUnits stores u without touching any session.
func (d *Dashboard) SaveUnits(ctx context.Context, u units.Units) error {
	return d.store.Save(ctx, u)
}

// InitialLocation asks the locator for a position within the configured
// bound and resolves it; otherwise the default location is used.
func (d *Dashboard) InitialLocation(ctx context.Context) location.Location {
	ctx, span := d.tele.GetTracer().Start(ctx, "dashboard.InitialLocation")
	defer span.End()

	if d.locator == nil {
		span.SetAttributes(attribute.String("source", "default"))
		return d.defaultLocation
	}

	pos, err := geo.LocateWithin(ctx, d.locator, d.locateTimeout)
	if err != nil {
		d.logger.Info("Geolocation unavailable, using default location",
			zap.String("location", d.defaultLocation.DisplayName()),
			zap.Error(err))
		span.SetAttributes(attribute.String("source", "default"))
		return d.defaultLocation
	}

	span.SetAttributes(attribute.String("source", "geolocation"))
	return d.locations.ResolveCoordinates(ctx, pos.Latitude, pos.Longitude)
}

// Now is the dashboard clock.
func (d *Dashboard) Now() time.Time {
	return d.now()
}
