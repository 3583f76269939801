package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxWorkspaceSettingsRepository stores the per-workspace settings singleton.
type PgxWorkspaceSettingsRepository struct {
	BaseRepository
}

func newPgxWorkspaceSettingsRepository(pool *pgxpool.Pool) portsrepo.WorkspaceSettingsRepositoryFacade {
	return &PgxWorkspaceSettingsRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WorkspaceSettingsRepositoryFacade = (*PgxWorkspaceSettingsRepository)(nil)

// FindSettings loads the settings row of a workspace.
func (r *PgxWorkspaceSettingsRepository) FindSettings(ctx context.Context, workspaceID string) (*domain.WorkspaceSettings, error) {
	query := `
		SELECT workspace_id, reporting_currency, category_filter, account_tiers, updated_at
		FROM workspace_settings
		WHERE workspace_id = $1
	`

	var s domain.WorkspaceSettings
	err := r.Pool.QueryRow(ctx, query, workspaceID).
		Scan(&s.WorkspaceID, &s.ReportingCurrency, &s.CategoryFilter, &s.AccountTiers, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("workspace settings not found")
		}
		return nil, apperrors.NewDataSourceError("failed to find workspace settings", err)
	}
	return &s, nil
}

// EnsureSettings inserts defaults unless a row already exists, then returns the stored row.
func (r *PgxWorkspaceSettingsRepository) EnsureSettings(ctx context.Context, defaults domain.WorkspaceSettings) (*domain.WorkspaceSettings, error) {
	query := `
		INSERT INTO workspace_settings (workspace_id, reporting_currency, category_filter, account_tiers, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id) DO NOTHING
	`
	_, err := r.Pool.Exec(ctx, query, defaults.WorkspaceID, defaults.ReportingCurrency,
		nonNilFilter(defaults.CategoryFilter), nonNilTiers(defaults.AccountTiers), defaults.UpdatedAt)
	if err != nil {
		return nil, apperrors.NewDataSourceError("failed to provision workspace settings", err)
	}
	return r.FindSettings(ctx, defaults.WorkspaceID)
}

// SaveSettings upserts the settings row.
func (r *PgxWorkspaceSettingsRepository) SaveSettings(ctx context.Context, s domain.WorkspaceSettings) error {
	query := `
		INSERT INTO workspace_settings (workspace_id, reporting_currency, category_filter, account_tiers, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id) DO UPDATE SET
			reporting_currency = EXCLUDED.reporting_currency,
			category_filter = EXCLUDED.category_filter,
			account_tiers = EXCLUDED.account_tiers,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.Pool.Exec(ctx, query, s.WorkspaceID, s.ReportingCurrency,
		nonNilFilter(s.CategoryFilter), nonNilTiers(s.AccountTiers), s.UpdatedAt)
	if err != nil {
		return apperrors.NewDataSourceError("failed to save workspace settings", err)
	}
	return nil
}

// The columns are NOT NULL, so nil collections are stored empty.
func nonNilFilter(f []string) []string {
	if f == nil {
		return []string{}
	}
	return f
}

func nonNilTiers(t map[string]string) map[string]string {
	if t == nil {
		return map[string]string{}
	}
	return t
}
