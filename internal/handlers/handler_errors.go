package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps a service error onto its HTTP status. failureMsg is
// returned for errors the client cannot act on.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, failureMsg string) {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Request rejected by validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrForbidden):
		logger.Warn("Request forbidden", slog.String("error", err.Error()))
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Data fetch timed out", slog.String("error", err.Error()))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Timed out fetching report data"})
	case errors.Is(err, apperrors.ErrDataSource):
		logger.Error("Data source unavailable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Report data source unavailable"})
	default:
		logger.Error(failureMsg, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": failureMsg})
	}
}

// bindQuery binds query parameters and writes a 400 on failure.
func bindQuery(c *gin.Context, logger *slog.Logger, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		logger.Warn("Failed to bind query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return false
	}
	return true
}

func bindJSON(c *gin.Context, logger *slog.Logger, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		logger.Warn("Failed to bind request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return false
	}
	return true
}
