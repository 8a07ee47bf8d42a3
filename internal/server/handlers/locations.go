package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/server/utils"
	"go.uber.org/zap"
)

// LocationFinder is the part of the dashboard the location endpoints use.
type LocationFinder interface {
	Search(ctx context.Context, query string) ([]location.Location, error)
	Locate(ctx context.Context, lat, lon float64) location.Location
}

type LocationHandler struct {
	finder LocationFinder
	logger *zap.Logger
}

func NewLocationHandler(finder LocationFinder, logger *zap.Logger) *LocationHandler {
	return &LocationHandler{
		finder: finder,
		logger: logger,
	}
}

func (h *LocationHandler) Search(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var req SearchRequest
	if !bindQuery(c, &req) {
		return
	}

	results, err := h.finder.Search(ctx, req.Query)
	if err != nil {
		reqLogger.Warn("Location search failed", zap.String("query", req.Query), zap.Error(err))
		upstreamFailure(c, err)
		return
	}

	reqLogger.Debug("Location search completed",
		zap.String("query", req.Query),
		zap.Int("results", len(results)))

	c.JSON(http.StatusOK, SearchResponse{Results: results})
}

func (h *LocationHandler) Reverse(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)

	var req ReverseRequest
	if !bindQuery(c, &req) {
		return
	}

	loc := h.finder.Locate(ctx, *req.Lat, *req.Lon)

	utils.RequestLogger(c, h.logger).Debug("Coordinates resolved",
		zap.Float64("lat", *req.Lat),
		zap.Float64("lon", *req.Lon),
		zap.String("location", loc.DisplayName()))

	c.JSON(http.StatusOK, loc)
}
