package location

import (
	"context"
	"strconv"

	"github.com/vzahanych/weather-dashboard/internal/provider"
)

type nominatimResponse struct {
	PlaceID int64             `json:"place_id"`
	Name    string            `json:"name"`
	Address *nominatimAddress `json:"address"`
	Error   string            `json:"error"`
}

type nominatimAddress struct {
	City         string `json:"city"`
	Town         string `json:"town"`
	Village      string `json:"village"`
	Municipality string `json:"municipality"`
	Suburb       string `json:"suburb"`
	County       string `json:"county"`
	State        string `json:"state"`
	Region       string `json:"region"`
	Country      string `json:"country"`
}

func (a nominatimAddress) placeName() string {
	for _, candidate := range []string{a.City, a.Town, a.Village, a.Municipality, a.Suburb, a.County} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func (a nominatimAddress) region() string {
	if a.State != "" {
		return a.State
	}
	return a.Region
}

// NominatimClient performs address lookups against an OSM Nominatim instance.
// The instance requires an identifying User-Agent, set on the provider client.
type NominatimClient struct {
	client *provider.Client
}

func NewNominatimClient(client *provider.Client) *NominatimClient {
	return &NominatimClient{client: client}
}

// Reverse returns the address at lat/lon. ok is false when the provider has
// nothing there (open sea, error payload).
func (n *NominatimClient) Reverse(ctx context.Context, lat, lon float64) (Location, bool, error) {
	params := map[string]string{
		"lat":             strconv.FormatFloat(lat, 'f', -1, 64),
		"lon":             strconv.FormatFloat(lon, 'f', -1, 64),
		"format":          "json",
		"addressdetails":  "1",
		"accept-language": "en",
	}

	var resp nominatimResponse
	if err := n.client.GetJSON(ctx, "/reverse", params, &resp); err != nil {
		return Location{}, false, err
	}

	if resp.Error != "" || resp.Address == nil {
		return Location{}, false, nil
	}

	name := resp.Address.placeName()
	if name == "" {
		name = resp.Name
	}
	if name == "" {
		name = PlaceholderName
	}

	country := resp.Address.Country
	if country == "" {
		country = UnknownCountry
	}

	return Location{
		ID:        resp.PlaceID,
		Name:      name,
		Latitude:  lat,
		Longitude: lon,
		Country:   country,
		Admin1:    resp.Address.region(),
	}, true, nil
}
