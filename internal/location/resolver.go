package location

import (
	"context"
	"strings"
	"time"

	"github.com/vzahanych/weather-dashboard/internal/geo"
	apperrors "github.com/vzahanych/weather-dashboard/pkg/errors"
	"github.com/vzahanych/weather-dashboard/pkg/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Searcher looks places up by name.
type Searcher interface {
	Search(ctx context.Context, name string) ([]Location, error)
}

// CandidateReverser returns every place a provider associates with a point.
type CandidateReverser interface {
	Reverse(ctx context.Context, lat, lon float64) ([]Location, error)
}

// AddressReverser returns the single address a provider places at a point.
type AddressReverser interface {
	Reverse(ctx context.Context, lat, lon float64) (Location, bool, error)
}

type Resolver struct {
	search    Searcher
	primary   AddressReverser
	secondary CandidateReverser
	logger    *zap.Logger
	tele      *telemetry.Telemetry
	now       func() time.Time
}

func NewResolver(search Searcher, primary AddressReverser, secondary CandidateReverser, logger *zap.Logger, tele *telemetry.Telemetry) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		search:    search,
		primary:   primary,
		secondary: secondary,
		logger:    logger,
		tele:      tele,
		now:       time.Now,
	}
}

// SearchByName returns candidates in provider order. Blank queries return an
// empty list without touching the network; provider failures surface only as
// SEARCH_FAILED.
func (r *Resolver) SearchByName(ctx context.Context, query string) ([]Location, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Location{}, nil
	}

	ctx, span := r.tele.GetTracer().Start(ctx, "resolver.SearchByName")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	results, err := r.search.Search(ctx, query)
	if err != nil {
		r.logger.Warn("Location search failed", zap.String("query", query), zap.Error(err))
		span.SetAttributes(attribute.Bool("success", false))
		return nil, apperrors.SearchFailed(err)
	}

	if results == nil {
		results = []Location{}
	}

	span.SetAttributes(
		attribute.Bool("success", true),
		attribute.Int("results_count", len(results)),
	)
	return results, nil
}

// ResolveCoordinates never fails. It walks the strategy ladder and falls back
// to a placeholder; the result always carries the queried coordinates.
func (r *Resolver) ResolveCoordinates(ctx context.Context, lat, lon float64) Location {
	ctx, span := r.tele.GetTracer().Start(ctx, "resolver.ResolveCoordinates")
	defer span.End()
	span.SetAttributes(
		attribute.Float64("lat", lat),
		attribute.Float64("lon", lon),
	)

	lookup := &reverseLookup{resolver: r, lat: lat, lon: lon}

	for _, s := range reverseStrategies {
		loc, ok := s.resolve(ctx, lookup)
		if !ok {
			continue
		}

		loc.Latitude = lat
		loc.Longitude = lon

		span.SetAttributes(attribute.String("strategy", s.name))
		r.logger.Debug("Coordinates resolved",
			zap.String("strategy", s.name),
			zap.String("name", loc.Name),
			zap.String("country", loc.Country))
		return loc
	}

	span.SetAttributes(attribute.String("strategy", "placeholder"))
	r.logger.Info("No provider could name coordinates, using placeholder",
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))
	return Placeholder(lat, lon, r.now())
}

type strategy struct {
	name    string
	resolve func(ctx context.Context, l *reverseLookup) (Location, bool)
}

// Ordered best to worst; the placeholder after the last entry is total.
var reverseStrategies = []strategy{
	{name: "primary", resolve: primaryWithCountry},
	{name: "nearest-candidate", resolve: nearestCandidateWithCountry},
	{name: "named-candidate", resolve: namedCandidate},
	{name: "primary-partial", resolve: primaryAny},
}

func primaryWithCountry(ctx context.Context, l *reverseLookup) (Location, bool) {
	loc, ok := l.primaryResult(ctx)
	if !ok || !loc.HasCountry() {
		return Location{}, false
	}
	return loc, true
}

func nearestCandidateWithCountry(ctx context.Context, l *reverseLookup) (Location, bool) {
	origin := geo.Coordinates{Latitude: l.lat, Longitude: l.lon}

	var (
		best     Location
		bestDist float64
		found    bool
	)
	for _, c := range l.candidates(ctx) {
		if !c.HasCountry() {
			continue
		}
		d := geo.Distance(origin, c.Coordinates())
		if !found || d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, found
}

func namedCandidate(ctx context.Context, l *reverseLookup) (Location, bool) {
	for _, c := range l.candidates(ctx) {
		if !c.HasName() {
			continue
		}
		if !c.HasCountry() {
			c.Country = UnknownCountry
		}
		return c, true
	}
	return Location{}, false
}

func primaryAny(ctx context.Context, l *reverseLookup) (Location, bool) {
	return l.primaryResult(ctx)
}

// reverseLookup queries each provider at most once per resolution.
type reverseLookup struct {
	resolver *Resolver
	lat, lon float64

	primaryDone bool
	primary     Location
	primaryOK   bool

	candidatesDone bool
	candidateList  []Location
}

func (l *reverseLookup) primaryResult(ctx context.Context) (Location, bool) {
	if l.primaryDone {
		return l.primary, l.primaryOK
	}
	l.primaryDone = true

	if l.resolver.primary == nil {
		return Location{}, false
	}

	loc, ok, err := l.resolver.primary.Reverse(ctx, l.lat, l.lon)
	if err != nil {
		l.resolver.logger.Warn("Primary reverse geocoding failed", zap.Error(err))
		return Location{}, false
	}

	l.primary, l.primaryOK = loc, ok
	return loc, ok
}

func (l *reverseLookup) candidates(ctx context.Context) []Location {
	if l.candidatesDone {
		return l.candidateList
	}
	l.candidatesDone = true

	if l.resolver.secondary == nil {
		return nil
	}

	list, err := l.resolver.secondary.Reverse(ctx, l.lat, l.lon)
	if err != nil {
		l.resolver.logger.Warn("Secondary reverse geocoding failed", zap.Error(err))
		return nil
	}

	l.candidateList = list
	return list
}
