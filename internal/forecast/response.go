package forecast

import (
	"errors"

	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/units"
)

var (
	errMissingCurrent = errors.New("response has no current block")
	errMissingDaily   = errors.New("response has no daily block")
	errMissingHourly  = errors.New("response has no hourly block")
)

// forecastResponse mirrors the provider's column-oriented payload. It never
// leaves this package.
type forecastResponse struct {
	Timezone         string      `json:"timezone"`
	UTCOffsetSeconds int         `json:"utc_offset_seconds"`
	Current          *rawCurrent `json:"current"`
	Daily            *rawDaily   `json:"daily"`
	Hourly           *rawHourly  `json:"hourly"`
}

type rawCurrent struct {
	Temperature   float64 `json:"temperature_2m"`
	WeatherCode   int     `json:"weather_code"`
	WindSpeed     float64 `json:"wind_speed_10m"`
	WindDirection float64 `json:"wind_direction_10m"`
}

type rawDaily struct {
	Time           []string  `json:"time"`
	WeatherCode    []int     `json:"weather_code"`
	MaxTemperature []float64 `json:"temperature_2m_max"`
	MinTemperature []float64 `json:"temperature_2m_min"`
}

type rawHourly struct {
	Time                []string   `json:"time"`
	Temperature         []float64  `json:"temperature_2m"`
	WeatherCode         []int      `json:"weather_code"`
	ApparentTemperature []*float64 `json:"apparent_temperature"`
	RelativeHumidity    []*float64 `json:"relative_humidity_2m"`
	Precipitation       []*float64 `json:"precipitation"`
}

func (d *rawDaily) validate() error {
	n := len(d.Time)
	if len(d.WeatherCode) != n {
		return shapeError("daily", "weather_code", len(d.WeatherCode), n)
	}
	if len(d.MaxTemperature) != n {
		return shapeError("daily", "temperature_2m_max", len(d.MaxTemperature), n)
	}
	if len(d.MinTemperature) != n {
		return shapeError("daily", "temperature_2m_min", len(d.MinTemperature), n)
	}
	return nil
}

func (h *rawHourly) validate() error {
	n := len(h.Time)
	if len(h.Temperature) != n {
		return shapeError("hourly", "temperature_2m", len(h.Temperature), n)
	}
	if len(h.WeatherCode) != n {
		return shapeError("hourly", "weather_code", len(h.WeatherCode), n)
	}
	return nil
}

// first returns the "now" sample of an optional hourly column.
func first(values []*float64) (float64, bool) {
	if len(values) == 0 || values[0] == nil {
		return 0, false
	}
	return *values[0], true
}

func (r *forecastResponse) normalize(loc location.Location, u units.Units) (*Snapshot, error) {
	if r.Current == nil {
		return nil, errMissingCurrent
	}
	if r.Daily == nil {
		return nil, errMissingDaily
	}
	if r.Hourly == nil {
		return nil, errMissingHourly
	}
	if err := r.Daily.validate(); err != nil {
		return nil, err
	}
	if err := r.Hourly.validate(); err != nil {
		return nil, err
	}

	daily := make([]Day, len(r.Daily.Time))
	for i, date := range r.Daily.Time {
		daily[i] = Day{
			Date:           date,
			WeatherCode:    r.Daily.WeatherCode[i],
			MaxTemperature: r.Daily.MaxTemperature[i],
			MinTemperature: r.Daily.MinTemperature[i],
		}
	}

	hourly := make([]Hour, len(r.Hourly.Time))
	for i, ts := range r.Hourly.Time {
		hourly[i] = Hour{
			Time:        ts,
			Temperature: r.Hourly.Temperature[i],
			WeatherCode: r.Hourly.WeatherCode[i],
		}
	}

	feelsLike, ok := first(r.Hourly.ApparentTemperature)
	if !ok {
		feelsLike = r.Current.Temperature
	}
	humidity, _ := first(r.Hourly.RelativeHumidity)
	precipitation, _ := first(r.Hourly.Precipitation)

	return &Snapshot{
		Location: loc,
		Units:    u,
		Current: Current{
			Temperature:   r.Current.Temperature,
			WeatherCode:   r.Current.WeatherCode,
			WindSpeed:     r.Current.WindSpeed,
			WindDirection: r.Current.WindDirection,
		},
		Daily:            daily,
		Hourly:           hourly,
		FeelsLike:        feelsLike,
		Humidity:         humidity,
		Precipitation:    precipitation,
		Timezone:         r.Timezone,
		UTCOffsetSeconds: r.UTCOffsetSeconds,
	}, nil
}
