package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-dashboard/internal/dashboard"
	"github.com/vzahanych/weather-dashboard/internal/forecast"
	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/server/utils"
	"github.com/vzahanych/weather-dashboard/internal/units"
	"go.uber.org/zap"
)

// WeatherService is the part of the dashboard the weather endpoint uses.
type WeatherService interface {
	Locate(ctx context.Context, lat, lon float64) location.Location
	Snapshot(ctx context.Context, loc location.Location, u units.Units) (*forecast.Snapshot, error)
	Units(ctx context.Context) (units.Units, error)
	Now() time.Time
}

type WeatherHandler struct {
	service WeatherService
	logger  *zap.Logger
}

func NewWeatherHandler(service WeatherService, logger *zap.Logger) *WeatherHandler {
	return &WeatherHandler{
		service: service,
		logger:  logger,
	}
}

func (h *WeatherHandler) GetWeather(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var req WeatherRequest
	if !bindQuery(c, &req) {
		return
	}

	u := h.resolveUnits(ctx, req.Units, reqLogger)

	loc, ok := req.location()
	if !ok {
		loc = h.service.Locate(ctx, *req.Lat, *req.Lon)
	}

	reqLogger.Info("Processing weather request",
		zap.Int64("location_id", loc.ID),
		zap.String("location", loc.DisplayName()),
		zap.String("units", u.String()))

	snap, err := h.service.Snapshot(ctx, loc, u)
	if err != nil {
		reqLogger.Warn("Failed to fetch weather data", zap.Error(err))
		upstreamFailure(c, err)
		return
	}

	view := dashboard.BuildView(snap, h.service.Now(), req.Day)

	reqLogger.Info("Weather request completed",
		zap.Int("days", len(view.Days)),
		zap.String("selected_day", view.SelectedDay))

	c.JSON(http.StatusOK, view)
}

// resolveUnits prefers the explicit query value, then the stored preference.
func (h *WeatherHandler) resolveUnits(ctx context.Context, raw string, logger *zap.Logger) units.Units {
	if raw != "" {
		return units.ParseOrDefault(raw)
	}
	u, err := h.service.Units(ctx)
	if err != nil {
		logger.Warn("Failed to read unit preference", zap.Error(err))
		return units.Default
	}
	return u
}
