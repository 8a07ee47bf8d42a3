package cmd

import (
	"fmt"
	"io"

	"github.com/vzahanych/weather-dashboard/internal/dashboard"
	"github.com/vzahanych/weather-dashboard/internal/location"
)

func printLocation(w io.Writer, loc location.Location) {
	line := fmt.Sprintf("%-10d %s (%.4f, %.4f)", loc.ID, loc.DisplayName(), loc.Latitude, loc.Longitude)
	if loc.Admin1 != "" {
		line += " " + loc.Admin1
	}
	fmt.Fprintln(w, line)
}

func printView(w io.Writer, v dashboard.View) {
	d := v.Display
	if d == nil {
		fmt.Fprintln(w, "No forecast loaded")
		return
	}

	fmt.Fprintf(w, "%s\n%s\n\n", d.Location, d.Date)
	fmt.Fprintf(w, "  %s  %s\n", d.Temperature, d.Icon)
	fmt.Fprintf(w, "  Feels like %s  Humidity %s  Wind %s  Precipitation %s\n\n",
		d.FeelsLike, d.Humidity, d.WindSpeed, d.Precipitation)

	for _, day := range d.Daily {
		marker := " "
		if day.Date == v.SelectedDay {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %-9s %-14s %6s / %s\n", marker, day.Name, day.Icon, day.Max, day.Min)
	}

	if len(d.Hourly) == 0 {
		fmt.Fprintln(w, "\nNo hours remaining")
		return
	}
	fmt.Fprintln(w)
	for _, h := range d.Hourly {
		fmt.Fprintf(w, "  %8s  %-14s %s\n", h.Time, h.Icon, h.Temperature)
	}
}
