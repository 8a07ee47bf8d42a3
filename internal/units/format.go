package units

import (
	"math"
	"strconv"
)

// round rounds half-up (towards +Inf), so -2.5 becomes -2.
func round(v float64) float64 {
	r := math.Floor(v + 0.5)
	if r == 0 {
		return 0
	}
	return r
}

func FormatTemperature(temp float64, u Units) string {
	return strconv.FormatFloat(round(temp), 'f', 0, 64) + u.Axes().Temperature.Symbol()
}

func FormatWindSpeed(speed float64, u Units) string {
	return strconv.FormatFloat(round(speed), 'f', 0, 64) + " " + u.Axes().WindSpeed.Symbol()
}

// FormatPrecipitation keeps one decimal place, dropping a trailing ".0".
func FormatPrecipitation(amount float64, u Units) string {
	rounded := round(amount*10) / 10
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + u.Axes().Precipitation.Symbol()
}

func FormatHumidity(humidity float64) string {
	return strconv.FormatFloat(round(humidity), 'f', 0, 64) + "%"
}
