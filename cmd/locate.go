package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-dashboard/internal/config"
)

func locateCmd() *cobra.Command {
	var lat, lon float64

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Resolve coordinates to a named location",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(config.GetConfig())
			if err != nil {
				return err
			}
			defer svc.Close()

			printLocation(cmd.OutOrStdout(), svc.dashboard.Locate(cmd.Context(), lat, lon))
			return nil
		},
	}

	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lon, "lon", 0, "longitude")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}
