package repositories

import (
	"context"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
)

// WorkspaceSettingsReader defines read operations for workspace settings
type WorkspaceSettingsReader interface {
	// FindSettings returns apperrors.ErrNotFound when the workspace has no settings row.
	FindSettings(ctx context.Context, workspaceID string) (*domain.WorkspaceSettings, error)
}

// WorkspaceSettingsWriter defines write operations for workspace settings
type WorkspaceSettingsWriter interface {
	// EnsureSettings creates the settings row with defaults if it is missing and returns the stored row.
	EnsureSettings(ctx context.Context, defaults domain.WorkspaceSettings) (*domain.WorkspaceSettings, error)

	SaveSettings(ctx context.Context, settings domain.WorkspaceSettings) error
}

// WorkspaceSettingsRepositoryFacade combines all settings-related repository interfaces
type WorkspaceSettingsRepositoryFacade interface {
	WorkspaceSettingsReader
	WorkspaceSettingsWriter
}
