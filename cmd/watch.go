package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/dashboard"
	"github.com/vzahanych/weather-dashboard/internal/watch"
	"go.uber.org/zap"
)

func watchCmd() *cobra.Command {
	var target targetFlags

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep a forecast on screen, refreshing it periodically",
		RunE: func(cmd *cobra.Command, args []string) error {
			target.capture(cmd)

			cfg := config.GetConfig()
			svc, err := newServices(cfg)
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

			session := dashboard.NewSession(d, u)
			state := session.Load(ctx, loc)
			if state.Snapshot == nil {
				if state.Error != nil {
					return state.Error
				}
				return fmt.Errorf("no forecast for %s", loc.DisplayName())
			}

			out := cmd.OutOrStdout()
			render := func(v dashboard.View, s dashboard.State) {
				fmt.Fprintln(out)
				printView(out, v)
				if s.Error != nil {
					fmt.Fprintf(out, "\n! %s\n", s.Error.Message)
				}
			}
			render(session.View(), state)

			w := watch.New(session, cfg.Watch, render, log)
			if err := w.Start(ctx); err != nil {
				return err
			}
			defer w.Stop()

			<-ctx.Done()
			log.Info("Stopped watching", zap.String("location", loc.DisplayName()))
			return nil
		},
	}

	target.register(cmd)

	return cmd
}
