package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/core/services"
	"github.com/SscSPs/budget_reconciler/internal/platform/config"
	"github.com/SscSPs/budget_reconciler/internal/repositories/database/pgsql"
	"github.com/SscSPs/budget_reconciler/internal/utils"
	"github.com/SscSPs/budget_reconciler/pkg/database"
	"github.com/spf13/cobra"
)

// reportFlags are shared by every command that reads one workspace.
type reportFlags struct {
	workspaceID string
	currency    string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.workspaceID, "workspace", "w", "", "workspace ID (required)")
	_ = cmd.MarkFlagRequired("workspace")
	cmd.Flags().StringVar(&f.currency, "currency", "", "reporting currency override (ISO 4217)")
}

func (f *reportFlags) validate() error {
	if f.currency != "" && !utils.IsKnownCurrency(f.currency) {
		return apperrors.NewValidationError(fmt.Sprintf("unknown currency %q", f.currency))
	}
	f.currency = strings.ToUpper(f.currency)
	return nil
}

// withServices connects to the database, builds the service container and
// hands it to fn. The pool is closed when fn returns.
func withServices(ctx context.Context, fn func(*portssvc.ServiceContainer) error) error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer database.ClosePgxPool(pool)

	return fn(services.NewServiceContainer(cfg, pgsql.NewRepositoryProvider(pool)))
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
