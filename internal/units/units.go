package units

import (
	"fmt"
	"strings"
)

// Units selects the measurement system requested from the forecast provider.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

const Default = Metric

// Parse accepts "metric" or "imperial" in any case.
func Parse(s string) (Units, error) {
	switch Units(strings.ToLower(strings.TrimSpace(s))) {
	case Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	default:
		return "", fmt.Errorf("unknown units %q", s)
	}
}

// ParseOrDefault falls back to metric for anything unrecognised.
func ParseOrDefault(s string) Units {
	u, err := Parse(s)
	if err != nil {
		return Default
	}
	return u
}

func (u Units) Valid() bool {
	return u == Metric || u == Imperial
}

func (u Units) String() string {
	return string(u)
}

type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

type WindSpeedUnit string

const (
	KilometresPerHour WindSpeedUnit = "kmh"
	MilesPerHour      WindSpeedUnit = "mph"
)

type PrecipitationUnit string

const (
	Millimetres PrecipitationUnit = "mm"
	Inches      PrecipitationUnit = "inch"
)

// Axes holds the independent unit settings sent to the forecast provider.
type Axes struct {
	Temperature   TemperatureUnit
	WindSpeed     WindSpeedUnit
	Precipitation PrecipitationUnit
}

func (u Units) Axes() Axes {
	if u == Imperial {
		return Axes{Temperature: Fahrenheit, WindSpeed: MilesPerHour, Precipitation: Inches}
	}
	return Axes{Temperature: Celsius, WindSpeed: KilometresPerHour, Precipitation: Millimetres}
}

func (t TemperatureUnit) Symbol() string {
	if t == Fahrenheit {
		return "°F"
	}
	return "°C"
}

func (w WindSpeedUnit) Symbol() string {
	if w == MilesPerHour {
		return "mph"
	}
	return "km/h"
}

func (p PrecipitationUnit) Symbol() string {
	if p == Inches {
		return "in"
	}
	return "mm"
}
