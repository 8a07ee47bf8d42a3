package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/dashboard"
)

func forecastCmd() *cobra.Command {
	var (
		target targetFlags
		day    string
	)

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Print current conditions, the daily outlook and the hours left in a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			target.capture(cmd)

			svc, err := newServices(config.GetConfig())
			if err != nil {
				return err
			}
			defer svc.Close()

			ctx := cmd.Context()
			d := svc.dashboard

			loc, err := target.location(ctx, d)
			if err != nil {
				return err
			}
			u, err := target.resolveUnits(ctx, d)
			if err != nil {
				return err
			}

			snap, err := d.Snapshot(ctx, loc, u)
			if err != nil {
				return err
			}

			printView(cmd.OutOrStdout(), dashboard.BuildView(snap, d.Now(), day))
			return nil
		},
	}

	target.register(cmd)
	cmd.Flags().StringVar(&day, "day", "", "date (YYYY-MM-DD) whose hours are listed")

	return cmd
}
