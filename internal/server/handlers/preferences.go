package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-dashboard/internal/server/utils"
	"github.com/vzahanych/weather-dashboard/internal/units"
	"go.uber.org/zap"
)

type PreferenceStore interface {
	Units(ctx context.Context) (units.Units, error)
	SaveUnits(ctx context.Context, u units.Units) error
}

type PreferencesHandler struct {
	store  PreferenceStore
	logger *zap.Logger
}

func NewPreferencesHandler(store PreferenceStore, logger *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		store:  store,
		logger: logger,
	}
}

func (h *PreferencesHandler) GetUnits(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)

	u, err := h.store.Units(ctx)
	if err != nil {
		utils.RequestLogger(c, h.logger).Error("Failed to load unit preference", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "Unit preference is unavailable",
			Code:  CodePreferencesUnavailable,
		})
		return
	}

	c.JSON(http.StatusOK, UnitsResponse{Units: u.String()})
}

func (h *PreferencesHandler) PutUnits(c *gin.Context) {
	ctx := utils.GetContextFromGinContext(c)
	reqLogger := utils.RequestLogger(c, h.logger)

	var req UnitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidParams(c, "malformed request body", nil)
		return
	}
	if fields := utils.ValidateStruct(req); len(fields) > 0 {
		invalidParams(c, "validation failed", fields)
		return
	}

	u := units.ParseOrDefault(req.Units)
	if err := h.store.SaveUnits(ctx, u); err != nil {
		reqLogger.Error("Failed to save unit preference", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{
			Error: "Unit preference is unavailable",
			Code:  CodePreferencesUnavailable,
		})
		return
	}

	reqLogger.Info("Unit preference updated", zap.String("units", u.String()))
	c.JSON(http.StatusOK, UnitsResponse{Units: u.String()})
}
