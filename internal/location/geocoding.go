package location

import (
	"context"
	"strconv"

	"github.com/vzahanych/weather-dashboard/internal/provider"
)

const candidateCount = "10"

type geocodingResponse struct {
	Results []geocodingResult `json:"results"`
}

type geocodingResult struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"`
}

func (r geocodingResult) toLocation() Location {
	return Location{
		ID:        r.ID,
		Name:      r.Name,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Country:   r.Country,
		Admin1:    r.Admin1,
	}
}

// GeocodingClient talks to the Open-Meteo geocoding search endpoint.
type GeocodingClient struct {
	client *provider.Client
}

func NewGeocodingClient(client *provider.Client) *GeocodingClient {
	return &GeocodingClient{client: client}
}

// Search returns up to ten candidates in provider order. A response without
// "results" is an empty list.
func (g *GeocodingClient) Search(ctx context.Context, name string) ([]Location, error) {
	params := map[string]string{
		"name":     name,
		"count":    candidateCount,
		"language": "en",
		"format":   "json",
	}
	return g.fetch(ctx, params)
}

// Reverse queries the same endpoint by coordinates. Results are noisy, so
// callers get all candidates rather than the first.
func (g *GeocodingClient) Reverse(ctx context.Context, lat, lon float64) ([]Location, error) {
	params := map[string]string{
		"latitude":  strconv.FormatFloat(lat, 'f', -1, 64),
		"longitude": strconv.FormatFloat(lon, 'f', -1, 64),
		"count":     candidateCount,
		"language":  "en",
		"format":    "json",
	}
	return g.fetch(ctx, params)
}

func (g *GeocodingClient) fetch(ctx context.Context, params map[string]string) ([]Location, error) {
	var resp geocodingResponse
	if err := g.client.GetJSON(ctx, "/search", params, &resp); err != nil {
		return nil, err
	}

	locations := make([]Location, 0, len(resp.Results))
	for _, r := range resp.Results {
		locations = append(locations, r.toLocation())
	}
	return locations, nil
}
