package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/dto"
	"github.com/SscSPs/budget_reconciler/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests for the reconciled reports
type reportingHandler struct {
	reportingService portssvc.ReportingSvc
	now              func() time.Time
}

func newReportingHandler(rs portssvc.ReportingSvc) *reportingHandler {
	return &reportingHandler{
		reportingService: rs,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

// registerReportingRoutes registers the report routes of a workspace
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvc) {
	h := newReportingHandler(reportingService)

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/budget-grid", h.getBudgetGrid)
		reportingGroup.GET("/fx-breakdown", h.getFxBreakdown)
		reportingGroup.GET("/balances", h.getBalancesSummary)
		reportingGroup.GET("/year-totals", h.getYearTotals)
	}
}

// getBudgetGrid godoc
// @Summary Reconcile the budget grid
// @Description Compares planned against actual amounts per month, direction and category, with month-end balance projections
// @Tags reports
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param monthFrom query string true "First month of the window (YYYY-MM)"
// @Param monthTo query string true "Last month of the window (YYYY-MM)"
// @Param actualFrom query string false "First month with actuals (YYYY-MM)"
// @Param actualTo query string false "Last month with actuals (YYYY-MM)"
// @Param currentMonth query string false "Month treated as current (YYYY-MM)" default(current month)
// @Param reportingCurrency query string false "Reporting currency override (ISO 4217)"
// @Success 200 {object} dto.BudgetGridResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 502 {object} map[string]string "Data source unavailable"
// @Failure 504 {object} map[string]string "Data fetch timed out"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/budget-grid [get]
func (h *reportingHandler) getBudgetGrid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var q dto.BudgetGridQuery
	if !bindQuery(c, logger, &q) {
		return
	}
	query, err := q.ToDomain(h.now())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile budget grid")
		return
	}

	logger = logger.With(
		slog.String("workspace_id", workspaceID),
		slog.String("monthFrom", q.MonthFrom),
		slog.String("monthTo", q.MonthTo),
	)
	logger.Info("Received request to reconcile budget grid")

	res, err := h.reportingService.BudgetGrid(c.Request.Context(), workspaceID, query)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to reconcile budget grid")
		return
	}

	logger.Info("Budget grid reconciled", slog.Int("row_count", len(res.Rows)), slog.Int("warning_count", len(res.ConversionWarnings)))
	c.JSON(http.StatusOK, dto.ToBudgetGridResponse(res))
}

// getFxBreakdown godoc
// @Summary Break down a month's balance change by currency
// @Description Splits the month-end balance change into cash-flow and exchange-rate effects per currency
// @Tags reports
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param month query string true "Month (YYYY-MM)"
// @Param reportingCurrency query string false "Reporting currency override (ISO 4217)"
// @Success 200 {object} dto.FxBreakdownResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 502 {object} map[string]string "Data source unavailable"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/fx-breakdown [get]
func (h *reportingHandler) getFxBreakdown(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var q dto.FxBreakdownQuery
	if !bindQuery(c, logger, &q) {
		return
	}
	month, err := q.ParseMonth()
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute FX breakdown")
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.String("month", q.Month))
	logger.Info("Received request for FX breakdown")

	res, err := h.reportingService.FxBreakdown(c.Request.Context(), workspaceID, month, q.ReportingCurrency)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute FX breakdown")
		return
	}

	c.JSON(http.StatusOK, dto.ToFxBreakdownResponse(res))
}

// getBalancesSummary godoc
// @Summary Summarize account balances
// @Description Lists every account balance as of a day, converted to the reporting currency, with per-currency totals and overdue flags
// @Tags reports
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param asOf query string false "As-of date (YYYY-MM-DD)" default(now)
// @Param reportingCurrency query string false "Reporting currency override (ISO 4217)"
// @Success 200 {object} dto.BalancesSummaryResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 502 {object} map[string]string "Data source unavailable"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/balances [get]
func (h *reportingHandler) getBalancesSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var q dto.BalancesQuery
	if !bindQuery(c, logger, &q) {
		return
	}
	asOf, err := q.ParseAsOf(h.now())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to summarize balances")
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.Time("asOf", asOf))
	logger.Info("Received request for balances summary")

	res, err := h.reportingService.BalancesSummary(c.Request.Context(), workspaceID, asOf, q.ReportingCurrency)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to summarize balances")
		return
	}

	logger.Info("Balances summarized", slog.Int("account_count", len(res.Accounts)))
	c.JSON(http.StatusOK, dto.ToBalancesSummaryResponse(res))
}

// getYearTotals godoc
// @Summary Compute full-year totals
// @Description Sums planned and actual amounts per direction and category for a calendar year
// @Tags reports
// @Produce json
// @Param workspace_id path string true "Workspace ID"
// @Param year query int true "Calendar year"
// @Param currentMonth query string false "Month treated as current (YYYY-MM)" default(current month)
// @Param reportingCurrency query string false "Reporting currency override (ISO 4217)"
// @Success 200 {object} dto.YearTotalsResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 502 {object} map[string]string "Data source unavailable"
// @Security BearerAuth
// @Router /workspaces/{workspace_id}/reports/year-totals [get]
func (h *reportingHandler) getYearTotals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	workspaceID := c.Param("workspace_id")

	var q dto.YearTotalsQuery
	if !bindQuery(c, logger, &q) {
		return
	}
	currentMonth, err := q.ParseCurrentMonth(h.now())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute year totals")
		return
	}

	logger = logger.With(slog.String("workspace_id", workspaceID), slog.Int("year", q.Year))
	logger.Info("Received request for year totals")

	res, err := h.reportingService.YearTotals(c.Request.Context(), workspaceID, q.Year, currentMonth, q.ReportingCurrency)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to compute year totals")
		return
	}

	c.JSON(http.StatusOK, dto.ToYearTotalsResponse(res))
}
