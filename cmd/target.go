package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-dashboard/internal/dashboard"
	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/units"
)

// targetFlags selects the location and units of a forecast command.
type targetFlags struct {
	name  string
	lat   float64
	lon   float64
	units string

	hasLat bool
	hasLon bool
}

func (f *targetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "location name; the first search result is used")
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "longitude")
	cmd.Flags().StringVarP(&f.units, "units", "u", "", "metric or imperial (default: stored preference)")
	cmd.MarkFlagsRequiredTogether("lat", "lon")
	cmd.MarkFlagsMutuallyExclusive("name", "lat")
}

func (f *targetFlags) capture(cmd *cobra.Command) {
	f.hasLat = cmd.Flags().Changed("lat")
	f.hasLon = cmd.Flags().Changed("lon")
}

// location resolves, in order: a name search, explicit coordinates, the
// start-up location.
func (f *targetFlags) location(ctx context.Context, d *dashboard.Dashboard) (location.Location, error) {
	switch {
	case f.name != "":
		results, err := d.Search(ctx, f.name)
		if err != nil {
			return location.Location{}, err
		}
		if len(results) == 0 {
			return location.Location{}, fmt.Errorf("no location matches %q", f.name)
		}
		return results[0], nil
	case f.hasLat && f.hasLon:
		return d.Locate(ctx, f.lat, f.lon), nil
	default:
		return d.InitialLocation(ctx), nil
	}
}

// resolveUnits prefers the flag and falls back to the stored preference.
func (f *targetFlags) resolveUnits(ctx context.Context, d *dashboard.Dashboard) (units.Units, error) {
	if f.units == "" {
		return d.InitialUnits(ctx), nil
	}
	u, err := units.Parse(f.units)
	if err != nil {
		return "", err
	}
	return u, nil
}
