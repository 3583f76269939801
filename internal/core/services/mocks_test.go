package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/SscSPs/budget_reconciler/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, workspaceID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListDailyMovementsBefore(ctx context.Context, workspaceID string, before time.Time) ([]domain.DailyMovement, error) {
	args := m.Called(ctx, workspaceID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DailyMovement), args.Error(1)
}

func (m *MockLedgerRepository) ListMonthlyMovements(ctx context.Context, workspaceID string, before time.Time) ([]domain.MonthlyMovement, error) {
	args := m.Called(ctx, workspaceID, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MonthlyMovement), args.Error(1)
}

func (m *MockLedgerRepository) ListCurrencyCoverage(ctx context.Context, workspaceID string) ([]domain.CurrencyCoverage, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyCoverage), args.Error(1)
}

func (m *MockLedgerRepository) ListAccountActivity(ctx context.Context, workspaceID string, asOf time.Time, recentDays, trailingDays int) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, workspaceID, asOf, recentDays, trailingDays)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) ListPlanLines(ctx context.Context, workspaceID string, rng domain.MonthRange) ([]domain.BudgetPlanLine, error) {
	args := m.Called(ctx, workspaceID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetPlanLine), args.Error(1)
}

func (m *MockBudgetRepository) ListComments(ctx context.Context, workspaceID string, rng domain.MonthRange) ([]domain.BudgetComment, error) {
	args := m.Called(ctx, workspaceID, rng)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BudgetComment), args.Error(1)
}

func (m *MockBudgetRepository) AppendPlanLines(ctx context.Context, lines []domain.BudgetPlanLine) error {
	args := m.Called(ctx, lines)
	return args.Error(0)
}

func (m *MockBudgetRepository) AppendComment(ctx context.Context, comment domain.BudgetComment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) ListRatesBetween(ctx context.Context, from, through time.Time) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx, from, through)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindRateAsOf(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, baseCurrency, quoteCurrency, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

// --- Mock WorkspaceSettingsRepository ---
type MockWorkspaceSettingsRepository struct {
	mock.Mock
}

func (m *MockWorkspaceSettingsRepository) FindSettings(ctx context.Context, workspaceID string) (*domain.WorkspaceSettings, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceSettings), args.Error(1)
}

func (m *MockWorkspaceSettingsRepository) EnsureSettings(ctx context.Context, defaults domain.WorkspaceSettings) (*domain.WorkspaceSettings, error) {
	args := m.Called(ctx, defaults)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceSettings), args.Error(1)
}

func (m *MockWorkspaceSettingsRepository) SaveSettings(ctx context.Context, settings domain.WorkspaceSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

// --- Mock WorkspaceSettingsService ---
type MockWorkspaceSettingsService struct {
	mock.Mock
}

func (m *MockWorkspaceSettingsService) GetSettings(ctx context.Context, workspaceID string) (*domain.WorkspaceSettings, error) {
	args := m.Called(ctx, workspaceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceSettings), args.Error(1)
}

func (m *MockWorkspaceSettingsService) UpdateSettings(ctx context.Context, workspaceID string, req dto.UpdateSettingsRequest) (*domain.WorkspaceSettings, error) {
	args := m.Called(ctx, workspaceID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.WorkspaceSettings), args.Error(1)
}

var fixedNow = time.Date(2026, time.February, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }
