package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/core/reconcile"
	"github.com/SscSPs/budget_reconciler/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first since the other services depend on it
	container.Workspace = NewWorkspaceService(
		repos.WorkspaceRepo,
		WithDefaultReportingCurrency(cfg.DefaultReportingCurrency),
	)

	strategy, err := reconcile.StrategyByName(cfg.StalenessStrategy)
	if err != nil {
		slog.Warn("Falling back to the percentile staleness strategy", slog.String("error", err.Error()))
		strategy = reconcile.NewPercentileStrategy()
	}

	container.Reporting = NewReportingService(
		repos.LedgerRepo,
		repos.BudgetRepo,
		repos.ExchangeRateRepo,
		container.Workspace,
		WithFetchTimeout(cfg.FetchTimeout),
		WithStalenessStrategy(strategy),
	)
	container.Budget = NewBudgetService(repos.BudgetRepo, container.Workspace)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	return container
}
