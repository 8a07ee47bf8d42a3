package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/dashboard"
	"github.com/vzahanych/weather-dashboard/internal/server/handlers"
	"github.com/vzahanych/weather-dashboard/internal/server/middlewares"
	"github.com/vzahanych/weather-dashboard/pkg/telemetry"
	"go.uber.org/zap"
)

type Server struct {
	cfg       *config.Config
	engine    *gin.Engine
	server    *http.Server
	dashboard *dashboard.Dashboard
	metrics   *handlers.MetricsHandler
	checks    map[string]handlers.ReadinessCheck
	logger    *zap.Logger
	tele      *telemetry.Telemetry
}

type Option func(*Server)

// WithReadinessCheck adds a dependency to /health/ready.
func WithReadinessCheck(name string, check handlers.ReadinessCheck) Option {
	return func(s *Server) {
		s.checks[name] = check
	}
}

// New builds the HTTP API around d. metrics should be the same recorder the
// dashboard's provider clients report to; nil creates a fresh one.
func New(cfg *config.Config, d *dashboard.Dashboard, metrics *handlers.MetricsHandler, logger *zap.Logger, tele *telemetry.Telemetry, opts ...Option) *Server {
	if metrics == nil {
		metrics = handlers.NewMetricsHandler(logger)
	}

	s := &Server{
		cfg:       cfg,
		dashboard: d,
		metrics:   metrics,
		checks:    make(map[string]handlers.ReadinessCheck),
		logger:    logger,
		tele:      tele,
	}
	for _, opt := range opts {
		opt(s)
	}

	gin.SetMode(gin.ReleaseMode)
	s.engine = gin.New()

	httpMetrics := middlewares.NewMetricsMiddleware(logger, tele)
	s.metrics.SetHTTPStatsSource(httpMetrics)

	s.engine.Use(middlewares.RequestIDMiddleware())
	s.engine.Use(middlewares.LoggingMiddleware(logger))
	s.engine.Use(middlewares.RecoveryMiddleware(logger, true))
	s.engine.Use(middlewares.TelemetryMiddleware(tele))
	s.engine.Use(httpMetrics.Handler())

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.engine.Group("/api/v1")
	if s.cfg.RateLimit.Enabled {
		api.Use(middlewares.NewRateLimiter(s.cfg.RateLimit, s.logger).Handler())
	}

	locations := handlers.NewLocationHandler(s.dashboard, s.logger)
	api.GET("/locations", locations.Search)
	api.GET("/locations/reverse", locations.Reverse)

	api.GET("/weather", handlers.NewWeatherHandler(s.dashboard, s.logger).GetWeather)

	prefs := handlers.NewPreferencesHandler(s.dashboard, s.logger)
	api.GET("/preferences/units", prefs.GetUnits)
	api.PUT("/preferences/units", prefs.PutUnits)

	health := handlers.NewHealthHandler(s.logger, s.checks)
	s.engine.GET("/health", health.Health)
	s.engine.GET("/health/live", health.Liveness)
	s.engine.GET("/health/ready", health.Readiness)

	s.engine.GET("/metrics", s.metrics.ServeMetrics)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port),
		Handler:      s.engine,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeout) * time.Second,
	}

	s.logger.Info("Starting server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}
