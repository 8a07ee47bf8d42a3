package forecast

import (
	"time"
	_ "time/tzdata"

	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/units"
)

// Current is the instantaneous reading at fetch time.
type Current struct {
	Temperature   float64 `json:"temperature"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
}

// Day is one daily aggregate. Date is the provider's local "YYYY-MM-DD".
type Day struct {
	Date           string  `json:"date"`
	WeatherCode    int     `json:"weather_code"`
	MaxTemperature float64 `json:"max_temperature"`
	MinTemperature float64 `json:"min_temperature"`
}

// Hour is one hourly sample. Time is the provider's local timestamp string,
// kept verbatim.
type Hour struct {
	Time        string  `json:"time"`
	Temperature float64 `json:"temperature"`
	WeatherCode int     `json:"weather_code"`
}

// Snapshot is the normalized, row-oriented forecast for one location in one
// unit system. It is replaced wholesale on every successful fetch.
type Snapshot struct {
	Location      location.Location `json:"location"`
	Units         units.Units       `json:"units"`
	Current       Current           `json:"current"`
	Daily         []Day             `json:"daily"`
	Hourly        []Hour            `json:"hourly"`
	FeelsLike     float64           `json:"feels_like"`
	Humidity      float64           `json:"humidity"`
	Precipitation float64           `json:"precipitation"`

	Timezone         string    `json:"timezone,omitempty"`
	UTCOffsetSeconds int       `json:"utc_offset_seconds"`
	FetchedAt        time.Time `json:"fetched_at"`
}

// Zone is the location's timezone as reported by the provider. Unknown zone
// names fall back to the fixed UTC offset.
func (s *Snapshot) Zone() *time.Location {
	if s.Timezone != "" {
		if loc, err := time.LoadLocation(s.Timezone); err == nil {
			return loc
		}
	}
	if s.UTCOffsetSeconds == 0 && s.Timezone == "" {
		return time.UTC
	}
	return time.FixedZone(s.Timezone, s.UTCOffsetSeconds)
}

// Today is the location's current calendar date.
func (s *Snapshot) Today(now time.Time) string {
	return now.In(s.Zone()).Format("2006-01-02")
}
