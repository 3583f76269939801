package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/dto"
	"github.com/SscSPs/budget_reconciler/internal/handlers"
	"github.com/SscSPs/budget_reconciler/internal/middleware"
	"github.com/SscSPs/budget_reconciler/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BudgetGrid(ctx context.Context, workspaceID string, query domain.GridQuery) (*domain.BudgetGridResult, error) {
	args := m.Called(ctx, workspaceID, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetGridResult), args.Error(1)
}

func (m *MockReportingService) FxBreakdown(ctx context.Context, workspaceID string, month domain.Month, reportingCurrency string) (*domain.FxBreakdownResult, error) {
	args := m.Called(ctx, workspaceID, month, reportingCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FxBreakdownResult), args.Error(1)
}

func (m *MockReportingService) BalancesSummary(ctx context.Context, workspaceID string, asOf time.Time, reportingCurrency string) (*domain.BalancesSummaryResult, error) {
	args := m.Called(ctx, workspaceID, asOf, reportingCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalancesSummaryResult), args.Error(1)
}

func (m *MockReportingService) YearTotals(ctx context.Context, workspaceID string, year int, currentMonth domain.Month, reportingCurrency string) (*domain.YearTotals, error) {
	args := m.Called(ctx, workspaceID, year, currentMonth, reportingCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.YearTotals), args.Error(1)
}

var _ portssvc.ReportingSvc = (*MockReportingService)(nil)

type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) AppendPlanLine(ctx context.Context, workspaceID string, req dto.AppendPlanLineRequest) (*domain.BudgetPlanLine, error) {
	args := m.Called(ctx, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetPlanLine), args.Error(1)
}

func (m *MockBudgetService) AppendComment(ctx context.Context, workspaceID string, req dto.AppendCommentRequest) (*domain.BudgetComment, error) {
	args := m.Called(ctx, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetComment), args.Error(1)
}

func (m *MockBudgetService) FillForward(ctx context.Context, workspaceID string, source domain.Month) ([]domain.BudgetPlanLine, error) {
	args := m.Called(ctx, workspaceID, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetPlanLine), args.Error(1)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

type MockWorkspaceService struct {
	mock.Mock
}

func (m *MockWorkspaceService) GetSettings(ctx context.Context, workspaceID string) (*domain.WorkspaceSettings, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceSettings), args.Error(1)
}

func (m *MockWorkspaceService) UpdateSettings(ctx context.Context, workspaceID string, req dto.UpdateSettingsRequest) (*domain.WorkspaceSettings, error) {
	args := m.Called(ctx, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceSettings), args.Error(1)
}

var _ portssvc.WorkspaceSettingsSvc = (*MockWorkspaceService)(nil)

type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) ResolveRate(ctx context.Context, source, reporting string, asOf time.Time) (*domain.ResolvedRate, error) {
	args := m.Called(ctx, source, reporting, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResolvedRate), args.Error(1)
}

var _ portssvc.ExchangeRateReaderSvc = (*MockExchangeRateService)(nil)

// --- Test Suite ---

type HandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	cfg           *config.Config
	mockReporting *MockReportingService
	mockBudget    *MockBudgetService
	mockWorkspace *MockWorkspaceService
	mockRates     *MockExchangeRateService
	token         string
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidators()

	suite.cfg = &config.Config{
		JWTSecret:    "test-secret-key-that-is-long-enough",
		JWTIssuer:    "budget-reconciler-test",
		IsProduction: true,
	}
	suite.mockReporting = new(MockReportingService)
	suite.mockBudget = new(MockBudgetService)
	suite.mockWorkspace = new(MockWorkspaceService)
	suite.mockRates = new(MockExchangeRateService)

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, suite.cfg, &portssvc.ServiceContainer{
		Reporting:    suite.mockReporting,
		Budget:       suite.mockBudget,
		Workspace:    suite.mockWorkspace,
		ExchangeRate: suite.mockRates,
	})

	token, err := middleware.IssueToken(suite.cfg.JWTSecret, suite.cfg.JWTIssuer, "user-1", []string{"ws-1"}, time.Hour)
	suite.Require().NoError(err)
	suite.token = token
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockReporting.AssertExpectations(suite.T())
	suite.mockBudget.AssertExpectations(suite.T())
	suite.mockWorkspace.AssertExpectations(suite.T())
	suite.mockRates.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+suite.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestHealth() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("OK", w.Body.String())
}

func (suite *HandlerTestSuite) TestBudgetGrid_Success() {
	query := domain.GridQuery{
		MonthFrom:    domain.MustParseMonth("2026-01"),
		MonthTo:      domain.MustParseMonth("2026-03"),
		CurrentMonth: domain.MustParseMonth("2026-02"),
	}
	result := &domain.BudgetGridResult{
		ReportingCurrency: "USD",
		Rows: []domain.GridRow{{
			Month:     domain.MustParseMonth("2026-01"),
			Direction: domain.Spend,
			Category:  "Food",
			Planned:   decimal.RequireFromString("200"),
			Actual:    decimal.RequireFromString("187.456"),
		}},
	}
	suite.mockReporting.On("BudgetGrid", mock.Anything, "ws-1", query).Return(result, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/budget-grid?monthFrom=2026-01&monthTo=2026-03&currentMonth=2026-02", nil)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.BudgetGridResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.ReportingCurrency)
	suite.Require().Len(resp.Rows, 1)
	suite.Equal("187.46", resp.Rows[0].Actual.String())
	suite.NotNil(resp.ConversionWarnings)
}

func (suite *HandlerTestSuite) TestBudgetGrid_InvalidQuery() {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing monthFrom", query: "monthTo=2026-03"},
		{name: "malformed month", query: "monthFrom=2026-1&monthTo=2026-03"},
		{name: "unknown currency", query: "monthFrom=2026-01&monthTo=2026-03&reportingCurrency=QQQ"},
		{name: "reversed window", query: "monthFrom=2026-04&monthTo=2026-03"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/budget-grid?"+tt.query, nil)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockReporting.AssertNotCalled(suite.T(), "BudgetGrid", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestBudgetGrid_ErrorMapping() {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "data source", err: apperrors.NewDataSourceError("failed to list ledger entries", fmt.Errorf("connection refused")), wantStatus: http.StatusBadGateway},
		{name: "timeout", err: fmt.Errorf("load report data: %w", context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout},
		{name: "unexpected", err: fmt.Errorf("boom"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockReporting.On("BudgetGrid", mock.Anything, "ws-1", mock.Anything).Return(nil, tt.err).Once()
			w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/budget-grid?monthFrom=2026-01&monthTo=2026-03&currentMonth=2026-02", nil)
			suite.Equal(tt.wantStatus, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestBudgetGrid_OtherWorkspaceForbidden() {
	w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-2/reports/budget-grid?monthFrom=2026-01&monthTo=2026-03", nil)
	suite.Equal(http.StatusForbidden, w.Code)
}

func (suite *HandlerTestSuite) TestFxBreakdown_Success() {
	adj := decimal.RequireFromString("10")
	suite.mockReporting.On("FxBreakdown", mock.Anything, "ws-1", domain.MustParseMonth("2026-02"), "EUR").
		Return(&domain.FxBreakdownResult{
			Month:             domain.MustParseMonth("2026-02"),
			ReportingCurrency: "EUR",
			TotalChange:       decimal.RequireFromString("10"),
			FxAdjustment:      &adj,
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/fx-breakdown?month=2026-02&reportingCurrency=EUR", nil)

	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.FxBreakdownResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2026-02", resp.Month)
	suite.Require().NotNil(resp.FxAdjustment)
	suite.Equal("10", resp.FxAdjustment.String())
}

func (suite *HandlerTestSuite) TestBalancesSummary_ParsesAsOf() {
	suite.mockReporting.On("BalancesSummary", mock.Anything, "ws-1", mock.MatchedBy(func(t time.Time) bool {
		return t.Format("2006-01-02") == "2026-03-31"
	}), "").Return(&domain.BalancesSummaryResult{ReportingCurrency: "USD"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/balances?asOf=2026-03-31", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/balances?asOf=31-03-2026", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestYearTotals() {
	suite.mockReporting.On("YearTotals", mock.Anything, "ws-1", 2026, domain.MustParseMonth("2026-05"), "").
		Return(&domain.YearTotals{Year: 2026, ReportingCurrency: "USD"}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/year-totals?year=2026&currentMonth=2026-05", nil)
	suite.Equal(http.StatusOK, w.Code, w.Body.String())

	w = suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/reports/year-totals?year=abc", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAppendPlanLine() {
	req := dto.AppendPlanLineRequest{
		Month:     "2026-02",
		Direction: "spend",
		Category:  "Rent",
		Kind:      "base",
		Value:     decimal.RequireFromString("1200"),
	}
	suite.mockBudget.On("AppendPlanLine", mock.Anything, "ws-1", mock.AnythingOfType("dto.AppendPlanLineRequest")).
		Return(&domain.BudgetPlanLine{
			WorkspaceID:  "ws-1",
			Month:        domain.MustParseMonth("2026-02"),
			Direction:    domain.Spend,
			Category:     "Rent",
			Kind:         domain.PlanBase,
			CurrencyCode: "USD",
			Value:        decimal.RequireFromString("1200"),
			InsertedAt:   time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/workspaces/ws-1/budget/plan-lines", req)

	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var resp dto.PlanLineResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("2026-02", resp.Month)
	suite.Equal("base", resp.Kind)
	suite.Equal("USD", resp.CurrencyCode)
}

func (suite *HandlerTestSuite) TestAppendPlanLine_RejectsTransferDirection() {
	req := dto.AppendPlanLineRequest{Month: "2026-02", Direction: "transfer", Category: "Rent", Kind: "base"}
	w := suite.do(http.MethodPost, "/api/v1/workspaces/ws-1/budget/plan-lines", req)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestAppendComment() {
	suite.mockBudget.On("AppendComment", mock.Anything, "ws-1", dto.AppendCommentRequest{Month: "2026-02", Direction: "transfer", Comment: "savings"}).
		Return(&domain.BudgetComment{
			WorkspaceID: "ws-1",
			Month:       domain.MustParseMonth("2026-02"),
			Direction:   domain.Transfer,
			Comment:     "savings",
			InsertedAt:  time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/workspaces/ws-1/budget/comments", dto.AppendCommentRequest{Month: "2026-02", Direction: "transfer", Comment: "savings"})
	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
}

func (suite *HandlerTestSuite) TestFillForward_DecemberRejected() {
	suite.mockBudget.On("FillForward", mock.Anything, "ws-1", domain.MustParseMonth("2026-12")).
		Return(nil, apperrors.NewValidationError("December has no later months in its year")).Once()

	w := suite.do(http.MethodPost, "/api/v1/workspaces/ws-1/budget/fill-forward", dto.FillForwardRequest{SourceMonth: "2026-12"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestSettings() {
	settings := &domain.WorkspaceSettings{
		WorkspaceID:       "ws-1",
		ReportingCurrency: "SEK",
		CategoryFilter:    []string{},
		AccountTiers:      map[string]string{},
		UpdatedAt:         time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
	}
	suite.mockWorkspace.On("GetSettings", mock.Anything, "ws-1").Return(settings, nil).Once()
	w := suite.do(http.MethodGet, "/api/v1/workspaces/ws-1/settings", nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.SettingsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SEK", resp.ReportingCurrency)

	w = suite.do(http.MethodPut, "/api/v1/workspaces/ws-1/settings", dto.UpdateSettingsRequest{ReportingCurrency: "NOPE"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestResolveRate() {
	suite.mockRates.On("ResolveRate", mock.Anything, "SEK", "EUR", mock.AnythingOfType("time.Time")).
		Return(nil, apperrors.NewNotFoundError("no rate converts SEK into EUR")).Once()

	w := suite.do(http.MethodGet, "/api/v1/rates/resolve?source=SEK&reporting=EUR&asOf=2026-01-15", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/v1/rates/resolve?source=SEK", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestMissingToken() {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/workspaces/ws-1/settings", nil))
	suite.Equal(http.StatusUnauthorized, w.Code)
}
