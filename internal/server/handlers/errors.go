package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vzahanych/weather-dashboard/internal/server/utils"
	apperrors "github.com/vzahanych/weather-dashboard/pkg/errors"
)

func invalidParams(c *gin.Context, details string, fields []utils.ValidationError) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "Invalid request parameters",
		Code:    CodeInvalidParams,
		Details: details,
		Fields:  fields,
	})
}

// upstreamFailure reports a provider failure using only the taxonomy message.
func upstreamFailure(c *gin.Context, err error) {
	_ = c.Error(err)

	werr, ok := apperrors.As(err)
	if !ok {
		werr = apperrors.FetchFailed(err)
	}
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error: werr.Message,
		Code:  werr.Code,
	})
}

// bindQuery binds and validates query parameters, writing a 400 on failure.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		invalidParams(c, "malformed query parameters", nil)
		return false
	}
	if fields := utils.ValidateStruct(req); len(fields) > 0 {
		invalidParams(c, "validation failed", fields)
		return false
	}
	return true
}
