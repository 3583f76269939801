package repositories

import (
	"context"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
)

// BudgetReader defines read operations over plan and comment histories.
type BudgetReader interface {
	// ListPlanLines returns every plan version of the months in rng.
	ListPlanLines(ctx context.Context, workspaceID string, rng domain.MonthRange) ([]domain.BudgetPlanLine, error)

	// ListComments returns every comment version of the months in rng.
	ListComments(ctx context.Context, workspaceID string, rng domain.MonthRange) ([]domain.BudgetComment, error)
}

// BudgetWriter appends new versions. Nothing is ever updated in place.
type BudgetWriter interface {
	// AppendPlanLines inserts all lines atomically.
	AppendPlanLines(ctx context.Context, lines []domain.BudgetPlanLine) error

	AppendComment(ctx context.Context, comment domain.BudgetComment) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
