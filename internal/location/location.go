package location

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/vzahanych/weather-dashboard/internal/geo"
)

const (
	UnknownCountry  = "Unknown"
	PlaceholderName = "Current Location"
)

// Location is a resolved place. Identity is the provider-assigned ID.
type Location struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1,omitempty"`
}

// Default is used when no position is available at start-up.
var Default = Location{
	ID:        890298,
	Name:      "Harare",
	Latitude:  -17.8292,
	Longitude: 31.0522,
	Country:   "Zimbabwe",
	Admin1:    "Harare",
}

func (l Location) Coordinates() geo.Coordinates {
	return geo.Coordinates{Latitude: l.Latitude, Longitude: l.Longitude}
}

func (l Location) HasCountry() bool {
	return usable(l.Country)
}

func (l Location) HasName() bool {
	return usable(l.Name)
}

// DisplayName renders "name, country", omitting an empty country.
func DisplayName(name, country string) string {
	if country == "" {
		return name
	}
	return name + ", " + country
}

func (l Location) DisplayName() string {
	return DisplayName(l.Name, l.Country)
}

func usable(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && s != UnknownCountry
}

var lastPlaceholderID atomic.Int64

// placeholderID is time based and strictly increasing within the process.
func placeholderID(now time.Time) int64 {
	candidate := now.UnixMilli()
	for {
		last := lastPlaceholderID.Load()
		next := candidate
		if next <= last {
			next = last + 1
		}
		if lastPlaceholderID.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Placeholder synthesizes a location for coordinates no provider could name.
func Placeholder(lat, lon float64, now time.Time) Location {
	return Location{
		ID:        placeholderID(now),
		Name:      PlaceholderName,
		Latitude:  lat,
		Longitude: lon,
		Country:   UnknownCountry,
	}
}
