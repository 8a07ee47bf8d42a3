package location

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/vzahanych/weather-dashboard/pkg/errors"
	"go.uber.org/zap/zaptest"
)

type fakeSearcher struct {
	calls   int
	results []Location
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, name string) ([]Location, error) {
	f.calls++
	return f.results, f.err
}

type fakePrimary struct {
	calls int
	loc   Location
	ok    bool
	err   error
}

func (f *fakePrimary) Reverse(ctx context.Context, lat, lon float64) (Location, bool, error) {
	f.calls++
	return f.loc, f.ok, f.err
}

type fakeSecondary struct {
	calls   int
	results []Location
	err     error
}

func (f *fakeSecondary) Reverse(ctx context.Context, lat, lon float64) ([]Location, error) {
	f.calls++
	return f.results, f.err
}

func newTestResolver(t *testing.T, s *fakeSearcher, p *fakePrimary, sec *fakeSecondary) *Resolver {
	t.Helper()
	r := NewResolver(s, p, sec, zaptest.NewLogger(t), nil)
	r.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	return r
}

func TestSearchByNameBlankQuerySkipsProvider(t *testing.T) {
	s := &fakeSearcher{}
	r := newTestResolver(t, s, nil, nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		results, err := r.SearchByName(context.Background(), q)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
	assert.Equal(t, 0, s.calls)
}

func TestSearchByNameNoMatchesIsNotAnError(t *testing.T) {
	s := &fakeSearcher{}
	r := newTestResolver(t, s, nil, nil)

	results, err := r.SearchByName(context.Background(), "no cities match xyzzy123")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Equal(t, 1, s.calls)
}

func TestSearchByNamePreservesProviderOrder(t *testing.T) {
	s := &fakeSearcher{results: []Location{
		{ID: 3, Name: "Springfield", Country: "United States", Admin1: "Missouri"},
		{ID: 1, Name: "Springfield", Country: "United States", Admin1: "Illinois"},
	}}
	r := newTestResolver(t, s, nil, nil)

	results, err := r.SearchByName(context.Background(), "Springfield")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, int64(3), results[0].ID)
	assert.Equal(t, int64(1), results[1].ID)
}

func TestSearchByNameWrapsProviderFailure(t *testing.T) {
	s := &fakeSearcher{err: errors.New("geocoding request failed: unexpected status code: 500")}
	r := newTestResolver(t, s, nil, nil)

	_, err := r.SearchByName(context.Background(), "Paris")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeSearchFailed))
	assert.Equal(t, apperrors.MessageSearchFailed, err.Error())
	assert.NotContains(t, err.Error(), "500")
}

func TestResolveCoordinatesPrimaryWithCountryWins(t *testing.T) {
	p := &fakePrimary{ok: true, loc: Location{ID: 77, Name: "Lyon", Country: "France", Admin1: "Auvergne-Rhône-Alpes"}}
	sec := &fakeSecondary{}
	r := newTestResolver(t, nil, p, sec)

	loc := r.ResolveCoordinates(context.Background(), 45.76, 4.83)

	assert.Equal(t, "Lyon", loc.Name)
	assert.Equal(t, "France", loc.Country)
	assert.Equal(t, 45.76, loc.Latitude)
	assert.Equal(t, 4.83, loc.Longitude)
	assert.Equal(t, 0, sec.calls)
}

func TestResolveCoordinatesNearestCandidateWithCountry(t *testing.T) {
	p := &fakePrimary{ok: true, loc: Location{ID: 5, Name: "Somewhere", Country: UnknownCountry}}
	sec := &fakeSecondary{results: []Location{
		{ID: 1, Name: "Far Town", Latitude: 10, Longitude: 10, Country: "Farland"},
		{ID: 2, Name: "No Country", Latitude: 0.01, Longitude: 0.01, Country: ""},
		{ID: 3, Name: "Near Town", Latitude: 0.5, Longitude: 0.5, Country: "Nearland"},
		{ID: 4, Name: "Unknown Country", Latitude: 0.02, Longitude: 0.02, Country: UnknownCountry},
	}}
	r := newTestResolver(t, nil, p, sec)

	loc := r.ResolveCoordinates(context.Background(), 0.1, 0.1)

	assert.Equal(t, int64(3), loc.ID)
	assert.Equal(t, "Near Town", loc.Name)
	assert.Equal(t, "Nearland", loc.Country)
	assert.Equal(t, 0.1, loc.Latitude)
	assert.Equal(t, 0.1, loc.Longitude)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 1, sec.calls)
}

func TestResolveCoordinatesNamedCandidateWithoutCountry(t *testing.T) {
	p := &fakePrimary{err: errors.New("timeout")}
	sec := &fakeSecondary{results: []Location{
		{ID: 1, Name: UnknownCountry, Country: ""},
		{ID: 2, Name: "Atoll", Country: ""},
	}}
	r := newTestResolver(t, nil, p, sec)

	loc := r.ResolveCoordinates(context.Background(), -5, 120)

	assert.Equal(t, int64(2), loc.ID)
	assert.Equal(t, "Atoll", loc.Name)
	assert.Equal(t, UnknownCountry, loc.Country)
	assert.Equal(t, -5.0, loc.Latitude)
	assert.Equal(t, 120.0, loc.Longitude)
}

func TestResolveCoordinatesFallsBackToPartialPrimary(t *testing.T) {
	p := &fakePrimary{ok: true, loc: Location{ID: 9, Name: "Reef", Country: UnknownCountry}}
	sec := &fakeSecondary{err: errors.New("status 500")}
	r := newTestResolver(t, nil, p, sec)

	loc := r.ResolveCoordinates(context.Background(), 12, 34)

	assert.Equal(t, int64(9), loc.ID)
	assert.Equal(t, "Reef", loc.Name)
	assert.Equal(t, UnknownCountry, loc.Country)
	assert.Equal(t, 1, p.calls)
}

func TestResolveCoordinatesPlaceholderMidOcean(t *testing.T) {
	p := &fakePrimary{ok: false}
	sec := &fakeSecondary{results: []Location{}}
	r := newTestResolver(t, nil, p, sec)

	loc := r.ResolveCoordinates(context.Background(), 0, 0)

	assert.Equal(t, PlaceholderName, loc.Name)
	assert.Equal(t, UnknownCountry, loc.Country)
	assert.Equal(t, 0.0, loc.Latitude)
	assert.Equal(t, 0.0, loc.Longitude)
	assert.NotZero(t, loc.ID)
}

func TestResolveCoordinatesIsTotalWhenEverythingFails(t *testing.T) {
	p := &fakePrimary{err: errors.New("dns failure")}
	sec := &fakeSecondary{err: errors.New("connection refused")}
	r := newTestResolver(t, nil, p, sec)

	loc := r.ResolveCoordinates(context.Background(), 48.85, 2.35)

	assert.Equal(t, PlaceholderName, loc.Name)
	assert.Equal(t, 48.85, loc.Latitude)
	assert.Equal(t, 2.35, loc.Longitude)
	assert.Equal(t, 1, p.calls)
	assert.Equal(t, 1, sec.calls)
}

func TestResolveCoordinatesWithoutProviders(t *testing.T) {
	r := NewResolver(nil, nil, nil, nil, nil)

	loc := r.ResolveCoordinates(context.Background(), 1, 2)
	assert.Equal(t, PlaceholderName, loc.Name)
	assert.Equal(t, 1.0, loc.Latitude)
	assert.Equal(t, 2.0, loc.Longitude)
}
