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

type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateReaderSvc
	now                 func() time.Time
}

func newExchangeRateHandler(ers portssvc.ExchangeRateReaderSvc) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
		now:                 func() time.Time { return time.Now().UTC() },
	}
}

// registerExchangeRateRoutes registers the workspace-independent rate routes
func registerExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateReaderSvc) {
	h := newExchangeRateHandler(exchangeRateService)

	rates := rg.Group("/rates")
	{
		rates.GET("/resolve", h.resolveRate)
	}
}

// resolveRate godoc
// @Summary Resolve a conversion rate
// @Description Finds the rate converting source into reporting currency as of a day, directly, inverted or through USD
// @Tags rates
// @Produce json
// @Param source query string true "Source currency (ISO 4217)"
// @Param reporting query string true "Reporting currency (ISO 4217)"
// @Param asOf query string false "As-of date (YYYY-MM-DD)" default(today)
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "No rate available"
// @Security BearerAuth
// @Router /rates/resolve [get]
func (h *exchangeRateHandler) resolveRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var q dto.ResolveRateQuery
	if !bindQuery(c, logger, &q) {
		return
	}
	asOf, err := q.ParseAsOf(h.now())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve exchange rate")
		return
	}

	logger = logger.With(slog.String("source", q.Source), slog.String("reporting", q.Reporting))
	rate, err := h.exchangeRateService.ResolveRate(c.Request.Context(), q.Source, q.Reporting, asOf)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to resolve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToResolvedRateResponse(rate))
}
