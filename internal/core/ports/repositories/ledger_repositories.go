package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
)

// LedgerReader defines the read-only views of the ledger the engine consumes.
// Every method is scoped to one workspace.
type LedgerReader interface {
	// ListEntries returns ledger entries with from <= timestamp < to.
	ListEntries(ctx context.Context, workspaceID string, from, to time.Time) ([]domain.LedgerEntry, error)

	// ListDailyMovementsBefore sums directed amounts per day, currency and kind before a cut-off.
	ListDailyMovementsBefore(ctx context.Context, workspaceID string, before time.Time) ([]domain.DailyMovement, error)

	// ListMonthlyMovements returns per-account monthly net changes before a cut-off.
	ListMonthlyMovements(ctx context.Context, workspaceID string, before time.Time) ([]domain.MonthlyMovement, error)

	// ListCurrencyCoverage returns the first day each currency is used.
	ListCurrencyCoverage(ctx context.Context, workspaceID string) ([]domain.CurrencyCoverage, error)

	// ListAccountActivity returns balances and recent non-transfer activity per
	// (account, currency): the last recentDays distinct active days and the
	// count of entries within trailingDays of the last one.
	ListAccountActivity(ctx context.Context, workspaceID string, asOf time.Time, recentDays, trailingDays int) ([]domain.AccountActivity, error)
}
