package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/preferences"
	"github.com/vzahanych/weather-dashboard/internal/server"
	"go.uber.org/zap"
)

func serverCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "server",
		Short: "Start the weather dashboard API",
		Long:  `Start the HTTP server exposing location search, reverse geocoding, forecasts and the unit preference.`,
		RunE:  runServer,
	}
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg := config.GetConfig()

	log.Info("Starting weather dashboard server",
		zap.String("config_path", configPath),
		zap.Bool("telemetry_enabled", cfg.Telemetry.Enabled),
		zap.String("preferences_backend", cfg.Preferences.Backend),
		zap.Int("server_port", cfg.Server.Port))

	svc, err := newServices(cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	var opts []server.Option
	if redisStore, ok := svc.store.(*preferences.RedisStore); ok {
		opts = append(opts, server.WithReadinessCheck("preferences", redisStore.Ping))
	}

	srv := server.New(cfg, svc.dashboard, svc.metrics, log, tele, opts...)

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		log.Error("Server error", zap.Error(err))
		return err
	case <-cmd.Context().Done():
		log.Info("Shutting down server")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Error during server shutdown", zap.Error(err))
			return err
		}

		log.Info("Server shutdown complete")
		return nil
	}
}
