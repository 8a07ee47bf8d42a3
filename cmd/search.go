package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-dashboard/internal/config"
)

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search locations by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newServices(config.GetConfig())
			if err != nil {
				return err
			}
			defer svc.Close()

			results, err := svc.dashboard.Search(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No locations found")
				return nil
			}
			for _, loc := range results {
				printLocation(out, loc)
			}
			return nil
		},
	}
}
