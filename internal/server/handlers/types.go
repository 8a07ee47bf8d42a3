package handlers

import (
	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/server/utils"
)

// Error codes returned alongside the taxonomy codes of pkg/errors.
const (
	CodeInvalidParams          = "INVALID_PARAMS"
	CodePreferencesUnavailable = "PREFERENCES_UNAVAILABLE"
)

// SearchRequest is the location search query. An empty q is allowed and
// yields no results.
type SearchRequest struct {
	Query string `form:"q" json:"q" validate:"max=200"`
}

type SearchResponse struct {
	Results []location.Location `json:"results"`
}

// ReverseRequest carries coordinates; pointers keep 0 distinguishable from
// absent.
type ReverseRequest struct {
	Lat *float64 `form:"lat" json:"lat" validate:"required,latitude"`
	Lon *float64 `form:"lon" json:"lon" validate:"required,longitude"`
}

// WeatherRequest selects a location either fully (name present) or by
// coordinates alone, in which case the location is reverse-geocoded.
type WeatherRequest struct {
	Lat     *float64 `form:"lat" json:"lat" validate:"required,latitude"`
	Lon     *float64 `form:"lon" json:"lon" validate:"required,longitude"`
	ID      int64    `form:"id" json:"id"`
	Name    string   `form:"name" json:"name" validate:"max=200"`
	Country string   `form:"country" json:"country" validate:"max=200"`
	Admin1  string   `form:"admin1" json:"admin1" validate:"max=200"`
	Units   string   `form:"units" json:"units" validate:"omitempty,units"`
	Day     string   `form:"day" json:"day" validate:"omitempty,datetime=2006-01-02"`
}

func (r WeatherRequest) location() (location.Location, bool) {
	if r.Name == "" {
		return location.Location{}, false
	}
	return location.Location{
		ID:        r.ID,
		Name:      r.Name,
		Latitude:  *r.Lat,
		Longitude: *r.Lon,
		Country:   r.Country,
		Admin1:    r.Admin1,
	}, true
}

type UnitsRequest struct {
	Units string `json:"units" validate:"required,units"`
}

type UnitsResponse struct {
	Units string `json:"units"`
}

// ErrorResponse never carries provider error text.
type ErrorResponse struct {
	Error   string                  `json:"error" validate:"required,min=1,max=500"`
	Code    string                  `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Details string                  `json:"details,omitempty" validate:"omitempty,max=1000"`
	Fields  []utils.ValidationError `json:"fields,omitempty"`
}

// HealthResponse represents health check response with validation
type HealthResponse struct {
	Status    string            `json:"status" validate:"required,oneof=ok alive ready degraded unavailable"`
	Uptime    string            `json:"uptime" validate:"required"`
	Timestamp string            `json:"timestamp,omitempty" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Checks    map[string]string `json:"checks,omitempty"`
}
