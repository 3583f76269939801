package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/dto"
	"github.com/SscSPs/budget_reconciler/internal/middleware"
	"github.com/gin-gonic/gin"
)

// budgetHandler handles writes to the plan and comment histories
type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func newBudgetHandler(bs portssvc.BudgetSvcFacade) *budgetHandler {
	return &budgetHandler{budgetService: bs}
}

// registerBudgetRoutes registers the budget routes of a workspace
func registerBudgetRoutes(rg *gin.RouterGroup, budgetService portssvc.BudgetSvcFacade) {
	h := newBudgetHandler(budgetService)

	budget := rg.Group("/budget")
	{
		budget.POST("/plan-lines", h.appendPlanLine)
		budget.POST("/comments", h.appendComment)
		budget.POST("/fill-forward", h.fillForward)
	}
}

// appendPlanLine godoc
// @Summary Append a plan version
// @Description Records a new base or modifier amount for a budget cell. Earlier versions are kept.
// @Tags budget
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param planLine body dto.AppendPlanLineRequest true "Plan line"
// @Success 201 {object} dto.PlanLineResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 502 {object} map[string]string "Data source unavailable"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/budget/plan-lines [post]
func (h *budgetHandler) appendPlanLine(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.AppendPlanLineRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("month", req.Month), slog.String("category", req.Category))
	line, err := h.budgetService.AppendPlanLine(c.Request.Context(), workspaceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to append plan line")
		return
	}

	logger.Info("Plan line appended", slog.String("kind", string(line.Kind)))
	c.JSON(http.StatusCreated, dto.ToPlanLineResponse(*line))
}

// appendComment godoc
// @Summary Append a comment version
// @Description Records a new comment for a budget cell. An empty comment clears it.
// @Tags budget
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param comment body dto.AppendCommentRequest true "Comment"
// @Success 201 {object} dto.CommentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/budget/comments [post]
func (h *budgetHandler) appendComment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.AppendCommentRequest
	if !bindJSON(c, logger, &req) {
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("month", req.Month))
	comment, err := h.budgetService.AppendComment(c.Request.Context(), workspaceID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to append comment")
		return
	}

	logger.Info("Comment appended")
	c.JSON(http.StatusCreated, dto.ToCommentResponse(*comment))
}

// fillForward godoc
// @Summary Copy a month's base plan forward
// @Description Appends the effective base plan of the source month to every later month of the same year
// @Tags budget
// @Accept json
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param request body dto.FillForwardRequest true "Source month"
// @Success 201 {array} dto.PlanLineResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/budget/fill-forward [post]
func (h *budgetHandler) fillForward(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var req dto.FillForwardRequest
	if !bindJSON(c, logger, &req) {
		return
	}
	source, err := req.ParseSourceMonth()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to fill plan forward")
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("source_month", req.SourceMonth))
	lines, err := h.budgetService.FillForward(c.Request.Context(), workspaceID, source)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to fill plan forward")
		return
	}

	logger.Info("Plan filled forward", slog.Int("line_count", len(lines)))
	c.JSON(http.StatusCreated, dto.ToListPlanLineResponse(lines))
}
