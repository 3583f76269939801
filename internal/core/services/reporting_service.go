package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/core/reconcile"
	"golang.org/x/sync/errgroup"
)

// DefaultFetchTimeout bounds the fetch stage of a report.
const DefaultFetchTimeout = 10 * time.Second

// reportingService implements the ReportingSvc interface
type reportingService struct {
	BaseService
	ledgerRepo   portsrepo.LedgerReader
	budgetRepo   portsrepo.BudgetReader
	rateRepo     portsrepo.ExchangeRateReader
	settings     portssvc.WorkspaceSettingsSvc
	fetchTimeout time.Duration
	detector     *reconcile.StalenessDetector
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithFetchTimeout bounds the concurrent fetches of one report.
func WithFetchTimeout(d time.Duration) ReportingServiceOption {
	return func(s *reportingService) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

// WithStalenessStrategy selects the detector used by the balances summary.
func WithStalenessStrategy(strategy reconcile.StalenessStrategy) ReportingServiceOption {
	return func(s *reportingService) {
		s.detector = reconcile.NewStalenessDetector(strategy)
	}
}

// WithReportingClock overrides the clock that defines the current month.
func WithReportingClock(clock func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Clock = clock
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(
	ledgerRepo portsrepo.LedgerReader,
	budgetRepo portsrepo.BudgetReader,
	rateRepo portsrepo.ExchangeRateReader,
	settings portssvc.WorkspaceSettingsSvc,
	options ...ReportingServiceOption,
) portssvc.ReportingSvc {
	svc := &reportingService{
		ledgerRepo:   ledgerRepo,
		budgetRepo:   budgetRepo,
		rateRepo:     rateRepo,
		settings:     settings,
		fetchTimeout: DefaultFetchTimeout,
		detector:     reconcile.NewStalenessDetector(nil),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingSvc interface
var _ portssvc.ReportingSvc = (*reportingService)(nil)

// resolveSettings loads the workspace settings and picks the reporting currency.
func (s *reportingService) resolveSettings(ctx context.Context, workspaceID, override string) (*domain.WorkspaceSettings, string, error) {
	settings, err := s.settings.GetSettings(ctx, workspaceID)
	if err != nil {
		return nil, "", err
	}
	reporting := strings.ToUpper(strings.TrimSpace(override))
	if reporting == "" {
		reporting = settings.ReportingCurrency
	}
	return settings, reporting, nil
}

// intersect returns the overlap of two month ranges.
func intersect(a, b domain.MonthRange) (domain.MonthRange, bool) {
	out := a
	if b.From.After(out.From) {
		out.From = b.From
	}
	if b.To.Before(out.To) {
		out.To = b.To
	}
	return out, !out.To.Before(out.From)
}

// loadReconcileInput fetches every fact a reconciliation of query needs.
// Fetches run concurrently, each with its own pooled connection, and the
// first failure cancels the rest. Rates follow in a second stage bounded by
// the earliest day the fetched history needs.
func (s *reportingService) loadReconcileInput(ctx context.Context, workspaceID string, settings *domain.WorkspaceSettings, reporting string, query domain.GridQuery) (reconcile.ReconcileInput, error) {
	in := reconcile.ReconcileInput{
		ReportingCurrency: reporting,
		Query:             query,
		Settings:          *settings,
	}
	window := query.Window()

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(fetchCtx)

	// Entries cover the displayed actuals and the cash flow of every month up
	// to the current one.
	span := reconcile.CashFlowSpan(query)
	if actuals := query.Actuals(); actuals.To.After(span.To) {
		span.To = actuals.To
	}
	if fetch, ok := intersect(window, span); ok {
		g.Go(func() error {
			entries, err := s.ledgerRepo.ListEntries(gctx, workspaceID, fetch.From.FirstDay(), fetch.To.Next().FirstDay())
			if err != nil {
				return fmt.Errorf("listing ledger entries: %w", err)
			}
			in.Entries = entries
			return nil
		})
	}
	g.Go(func() error {
		lines, err := s.budgetRepo.ListPlanLines(gctx, workspaceID, window)
		if err != nil {
			return fmt.Errorf("listing plan lines: %w", err)
		}
		in.PlanLines = lines
		return nil
	})
	g.Go(func() error {
		comments, err := s.budgetRepo.ListComments(gctx, workspaceID, window)
		if err != nil {
			return fmt.Errorf("listing comments: %w", err)
		}
		in.Comments = comments
		return nil
	})
	g.Go(func() error {
		history, err := s.ledgerRepo.ListDailyMovementsBefore(gctx, workspaceID, window.From.FirstDay())
		if err != nil {
			return fmt.Errorf("listing pre-window history: %w", err)
		}
		in.History = history
		return nil
	})
	g.Go(func() error {
		movements, err := s.ledgerRepo.ListMonthlyMovements(gctx, workspaceID, window.To.Next().FirstDay())
		if err != nil {
			return fmt.Errorf("listing monthly movements: %w", err)
		}
		in.Movements = movements
		return nil
	})
	g.Go(func() error {
		coverage, err := s.ledgerRepo.ListCurrencyCoverage(gctx, workspaceID)
		if err != nil {
			return fmt.Errorf("listing currency coverage: %w", err)
		}
		in.Coverage = coverage
		return nil
	})
	if err := g.Wait(); err != nil {
		return in, err
	}

	// Rates are fetched once the earliest conversion day is known.
	rates, err := s.rateRepo.ListRatesBetween(fetchCtx, earliestRateDay(window.From.Prev().LastDay(), in.History, in.Coverage), window.To.LastDay())
	if err != nil {
		return in, fmt.Errorf("listing exchange rates: %w", err)
	}
	in.Rates = reconcile.NewRateBook(rates)
	return in, nil
}

// earliestRateDay is the first day any conversion of a reconciliation needs.
func earliestRateDay(from time.Time, history []domain.DailyMovement, coverage []domain.CurrencyCoverage) time.Time {
	for _, m := range history {
		if m.Day.Before(from) {
			from = m.Day
		}
	}
	for _, c := range coverage {
		if c.FirstUsed.Before(from) {
			from = domain.Day(c.FirstUsed)
		}
	}
	return from
}

// BudgetGrid reconciles plan and actuals over the query window.
func (s *reportingService) BudgetGrid(ctx context.Context, workspaceID string, query domain.GridQuery) (*domain.BudgetGridResult, error) {
	if query.MonthFrom.IsZero() || query.MonthTo.IsZero() {
		return nil, apperrors.NewValidationError("monthFrom and monthTo are required")
	}
	if query.MonthTo.Before(query.MonthFrom) {
		return nil, apperrors.NewValidationError("monthFrom must not be after monthTo")
	}
	if query.CurrentMonth.IsZero() {
		query.CurrentMonth = domain.MonthOf(s.Now())
	}

	settings, reporting, err := s.resolveSettings(ctx, workspaceID, query.ReportingCurrency)
	if err != nil {
		return nil, err
	}

	in, err := s.loadReconcileInput(ctx, workspaceID, settings, reporting, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch budget grid data",
			slog.String("workspace_id", workspaceID),
			slog.String("month_from", query.MonthFrom.String()),
			slog.String("month_to", query.MonthTo.String()))
		return nil, fmt.Errorf("failed to fetch budget grid data: %w", err)
	}

	rec := reconcile.Reconcile(in)

	s.LogInfo(ctx, "Budget grid generated successfully",
		slog.String("workspace_id", workspaceID),
		slog.String("reporting_currency", reporting),
		slog.Int("row_count", len(rec.Grid.Rows)),
		slog.Int("warning_count", len(rec.Grid.ConversionWarnings)))
	return &rec.Grid, nil
}

// FxBreakdown decomposes the change of the marked-to-market balance of month by currency.
func (s *reportingService) FxBreakdown(ctx context.Context, workspaceID string, month domain.Month, reportingCurrency string) (*domain.FxBreakdownResult, error) {
	if month.IsZero() {
		return nil, apperrors.NewValidationError("month is required")
	}

	_, reporting, err := s.resolveSettings(ctx, workspaceID, reportingCurrency)
	if err != nil {
		return nil, err
	}

	var (
		entries   []domain.LedgerEntry
		movements []domain.MonthlyMovement
		rates     []domain.ExchangeRate
	)
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		entries, err = s.ledgerRepo.ListEntries(gctx, workspaceID, month.FirstDay(), month.Next().FirstDay())
		if err != nil {
			return fmt.Errorf("listing ledger entries: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		movements, err = s.ledgerRepo.ListMonthlyMovements(gctx, workspaceID, month.Next().FirstDay())
		if err != nil {
			return fmt.Errorf("listing monthly movements: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rates, err = s.rateRepo.ListRatesBetween(gctx, month.Prev().LastDay(), month.LastDay())
		if err != nil {
			return fmt.Errorf("listing exchange rates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch fx breakdown data",
			slog.String("workspace_id", workspaceID),
			slog.String("month", month.String()))
		return nil, fmt.Errorf("failed to fetch fx breakdown data: %w", err)
	}

	book := reconcile.NewRateBook(rates)
	flow, _ := reconcile.NetMovementsByMonth(entries, domain.MonthRange{From: month, To: month}, reporting, book)

	projection := reconcile.Project(reconcile.ProjectionInput{
		ReportingCurrency: reporting,
		Range:             domain.MonthRange{From: month.Prev(), To: month},
		Movements:         movements,
		Rates:             book,
	})

	res := reconcile.FxBreakdown(reconcile.FxBreakdownInput{
		ReportingCurrency: reporting,
		Month:             month,
		Projection:        projection,
		NetActual:         flow[month].Net,
		Rates:             book,
	})

	s.LogInfo(ctx, "FX breakdown generated successfully",
		slog.String("workspace_id", workspaceID),
		slog.String("month", month.String()),
		slog.Int("row_count", len(res.Rows)))
	return &res, nil
}

// BalancesSummary lists every account balance as of asOf with overdue flags.
func (s *reportingService) BalancesSummary(ctx context.Context, workspaceID string, asOf time.Time, reportingCurrency string) (*domain.BalancesSummaryResult, error) {
	if asOf.IsZero() {
		asOf = s.Now()
	}

	_, reporting, err := s.resolveSettings(ctx, workspaceID, reportingCurrency)
	if err != nil {
		return nil, err
	}

	var (
		activity []domain.AccountActivity
		rates    []domain.ExchangeRate
	)
	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	g, gctx := errgroup.WithContext(fetchCtx)
	g.Go(func() error {
		var err error
		// One extra active day yields RecentGaps gaps.
		activity, err = s.ledgerRepo.ListAccountActivity(gctx, workspaceID, asOf, reconcile.RecentGaps+1, reconcile.TrailingDays)
		if err != nil {
			return fmt.Errorf("listing account activity: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rates, err = s.rateRepo.ListRatesBetween(gctx, asOf, asOf)
		if err != nil {
			return fmt.Errorf("listing exchange rates: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to fetch balances data", slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to fetch balances data: %w", err)
	}

	res := reconcile.SummarizeBalances(reconcile.SummaryInput{
		ReportingCurrency: reporting,
		AsOf:              asOf,
		Activity:          activity,
		Rates:             reconcile.NewRateBook(rates),
		Detector:          s.detector,
	})

	s.LogInfo(ctx, "Balances summary generated successfully",
		slog.String("workspace_id", workspaceID),
		slog.String("staleness_strategy", s.detector.Strategy().Name()),
		slog.Int("account_count", len(res.Accounts)))
	return &res, nil
}

// YearTotals reconciles January..December of year independently of any
// display window and folds the result into summary cells.
func (s *reportingService) YearTotals(ctx context.Context, workspaceID string, year int, currentMonth domain.Month, reportingCurrency string) (*domain.YearTotals, error) {
	if year < 1900 || year > 9999 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("invalid year %d", year))
	}
	if currentMonth.IsZero() {
		currentMonth = domain.MonthOf(s.Now())
	}

	settings, reporting, err := s.resolveSettings(ctx, workspaceID, reportingCurrency)
	if err != nil {
		return nil, err
	}

	full := domain.YearRange(year)
	query := domain.GridQuery{MonthFrom: full.From, MonthTo: full.To, CurrentMonth: currentMonth}
	in, err := s.loadReconcileInput(ctx, workspaceID, settings, reporting, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch year totals data",
			slog.String("workspace_id", workspaceID),
			slog.Int("year", year))
		return nil, fmt.Errorf("failed to fetch year totals data: %w", err)
	}

	totals := reconcile.ComputeYearTotals(year, in)

	s.LogInfo(ctx, "Year totals generated successfully",
		slog.String("workspace_id", workspaceID),
		slog.Int("year", year),
		slog.Bool("tainted", totals.Taint.Tainted))
	return &totals, nil
}
