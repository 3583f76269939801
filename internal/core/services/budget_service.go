package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/core/reconcile"
	"github.com/SscSPs/budget_reconciler/internal/dto"
)

// budgetService appends plan and comment versions. It never updates rows.
type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	settings   portssvc.WorkspaceSettingsSvc
}

// BudgetServiceOption is a functional option for configuring the budget service
type BudgetServiceOption func(*budgetService)

// WithBudgetClock overrides the clock used to stamp new versions.
func WithBudgetClock(clock func() time.Time) BudgetServiceOption {
	return func(s *budgetService) {
		s.Clock = clock
	}
}

// NewBudgetService creates a new budget service
func NewBudgetService(repo portsrepo.BudgetRepositoryFacade, settings portssvc.WorkspaceSettingsSvc, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{budgetRepo: repo, settings: settings}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// AppendPlanLine stores a new version of a base or modifier plan. Plans
// without a currency are recorded in the workspace reporting currency.
func (s *budgetService) AppendPlanLine(ctx context.Context, workspaceID string, req dto.AppendPlanLineRequest) (*domain.BudgetPlanLine, error) {
	settings, err := s.settings.GetSettings(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	line, err := req.ToDomain(workspaceID, settings.ReportingCurrency)
	if err != nil {
		return nil, err
	}
	line.InsertedAt = s.Now()

	if err := s.budgetRepo.AppendPlanLines(ctx, []domain.BudgetPlanLine{line}); err != nil {
		s.LogError(ctx, err, "Failed to append plan line",
			slog.String("workspace_id", workspaceID),
			slog.String("month", line.Month.String()))
		return nil, fmt.Errorf("failed to append plan line: %w", err)
	}

	s.LogInfo(ctx, "Plan line appended",
		slog.String("workspace_id", workspaceID),
		slog.String("month", line.Month.String()),
		slog.String("direction", string(line.Direction)),
		slog.String("kind", string(line.Kind)))
	return &line, nil
}

// AppendComment stores a new comment version. A blank comment clears the cell.
func (s *budgetService) AppendComment(ctx context.Context, workspaceID string, req dto.AppendCommentRequest) (*domain.BudgetComment, error) {
	comment, err := req.ToDomain(workspaceID)
	if err != nil {
		return nil, err
	}
	comment.InsertedAt = s.Now()

	if err := s.budgetRepo.AppendComment(ctx, comment); err != nil {
		s.LogError(ctx, err, "Failed to append comment",
			slog.String("workspace_id", workspaceID),
			slog.String("month", comment.Month.String()))
		return nil, fmt.Errorf("failed to append comment: %w", err)
	}
	return &comment, nil
}

// FillForward copies the effective base plan of every cell of source into
// each later month of the same year. Modifiers stay with their month.
func (s *budgetService) FillForward(ctx context.Context, workspaceID string, source domain.Month) ([]domain.BudgetPlanLine, error) {
	if source.IsZero() {
		return nil, apperrors.NewValidationError("source month is required")
	}
	if source.Month == time.December {
		return nil, apperrors.NewValidationError("cannot fill forward from December: no later month in the year")
	}

	lines, err := s.budgetRepo.ListPlanLines(ctx, workspaceID, domain.MonthRange{From: source, To: source})
	if err != nil {
		s.LogError(ctx, err, "Failed to list plan lines for fill forward",
			slog.String("workspace_id", workspaceID),
			slog.String("source_month", source.String()))
		return nil, fmt.Errorf("failed to list plan lines: %w", err)
	}

	bases := make([]domain.BudgetPlanLine, 0)
	for _, plan := range reconcile.ResolvePlan(lines) {
		if plan.Base != nil {
			bases = append(bases, *plan.Base)
		}
	}
	sort.Slice(bases, func(i, j int) bool { return bases[i].Key().Less(bases[j].Key()) })

	now := s.Now()
	targets := domain.MonthRange{From: source.Next(), To: domain.NewMonth(source.Year, time.December)}.Months()
	out := make([]domain.BudgetPlanLine, 0, len(bases)*len(targets))
	for _, target := range targets {
		for _, base := range bases {
			copied := base
			copied.WorkspaceID = workspaceID
			copied.Month = target
			copied.InsertedAt = now
			out = append(out, copied)
		}
	}

	if len(out) == 0 {
		s.LogInfo(ctx, "Nothing to fill forward",
			slog.String("workspace_id", workspaceID),
			slog.String("source_month", source.String()))
		return out, nil
	}

	if err := s.budgetRepo.AppendPlanLines(ctx, out); err != nil {
		s.LogError(ctx, err, "Failed to append filled plan lines",
			slog.String("workspace_id", workspaceID),
			slog.String("source_month", source.String()))
		return nil, fmt.Errorf("failed to fill forward plan: %w", err)
	}

	s.LogInfo(ctx, "Plan filled forward",
		slog.String("workspace_id", workspaceID),
		slog.String("source_month", source.String()),
		slog.Int("cells", len(bases)),
		slog.Int("lines", len(out)))
	return out, nil
}
