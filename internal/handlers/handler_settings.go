package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/dto"
	"github.com/SscSPs/budget_reconciler/internal/middleware"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	workspaceService portssvc.WorkspaceSettingsSvc
}

func newSettingsHandler(ws portssvc.WorkspaceSettingsSvc) *settingsHandler {
	return &settingsHandler{workspaceService: ws}
}

func registerSettingsRoutes(rg *gin.RouterGroup, workspaceService portssvc.WorkspaceSettingsSvc) {
	h := newSettingsHandler(workspaceService)

	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.updateSettings)
}

// getSettings godoc
// @Summary Get workspace settings
// @Description Returns the reporting currency, category filter and account tiers of a workspace. Defaults are created on first access.
// @Tags settings
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Success 200 {object} dto.SettingsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 502 {object} map[string]string "Data source unavailable"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	settings, err := h.workspaceService.GetSettings(c.Request.Context(), workspaceID)
	if err != nil {
		respondServiceError(c, logger.With(slog.String("workspace_id", workspaceID)), err, "Failed to load workspace settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update workspace settings
// @Tags settings
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param settings body dto.UpdateSettingsRequest true "Settings"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/settings [put]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.UpdateSettingsRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID))
	settings, err := h.workspaceService.UpdateSettings(c.Request.Context(), workspaceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update workspace settings")
		return
	}

	logger.Info("Workspace settings updated", slog.String("reporting_currency", settings.ReportingCurrency))
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}
