package services

import (
	"context"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/SscSPs/budget_reconciler/internal/dto"
)

// ReportingSvc produces the reconciled reports of a workspace. An empty
// reportingCurrency uses the workspace setting.
type ReportingSvc interface {
	// BudgetGrid reconciles plan and actuals over a month window.
	BudgetGrid(ctx context.Context, workspaceID string, query domain.GridQuery) (*domain.BudgetGridResult, error)

	// FxBreakdown decomposes the month-end balance change of one month by currency.
	FxBreakdown(ctx context.Context, workspaceID string, month domain.Month, reportingCurrency string) (*domain.FxBreakdownResult, error)

	// BalancesSummary lists account balances as of a point in time.
	BalancesSummary(ctx context.Context, workspaceID string, asOf time.Time, reportingCurrency string) (*domain.BalancesSummaryResult, error)

	// YearTotals computes the full-year summary cells.
	YearTotals(ctx context.Context, workspaceID string, year int, currentMonth domain.Month, reportingCurrency string) (*domain.YearTotals, error)
}

// BudgetWriterSvc appends plan and comment versions.
type BudgetWriterSvc interface {
	AppendPlanLine(ctx context.Context, workspaceID string, req dto.AppendPlanLineRequest) (*domain.BudgetPlanLine, error)
	AppendComment(ctx context.Context, workspaceID string, req dto.AppendCommentRequest) (*domain.BudgetComment, error)

	// FillForward copies the effective base plan of source into the later months of its year.
	FillForward(ctx context.Context, workspaceID string, source domain.Month) ([]domain.BudgetPlanLine, error)
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetWriterSvc
}

// WorkspaceSettingsSvc reads and updates workspace settings.
type WorkspaceSettingsSvc interface {
	// GetSettings returns the settings, provisioning defaults on first access.
	GetSettings(ctx context.Context, workspaceID string) (*domain.WorkspaceSettings, error)
	UpdateSettings(ctx context.Context, workspaceID string, req dto.UpdateSettingsRequest) (*domain.WorkspaceSettings, error)
}

// ExchangeRateReaderSvc defines read operations for exchange rate data
type ExchangeRateReaderSvc interface {
	// ResolveRate finds the rate converting source into reporting currency as of a day.
	ResolveRate(ctx context.Context, source, reporting string, asOf time.Time) (*domain.ResolvedRate, error)
}
