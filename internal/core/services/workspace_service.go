package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_reconciler/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_reconciler/internal/core/ports/services"
	"github.com/SscSPs/budget_reconciler/internal/dto"
)

// workspaceService implements the WorkspaceSettingsSvc interface
type workspaceService struct {
	BaseService
	settingsRepo    portsrepo.WorkspaceSettingsRepositoryFacade
	defaultCurrency string
}

// WorkspaceServiceOption is a functional option for configuring the workspace service
type WorkspaceServiceOption func(*workspaceService)

// WithDefaultReportingCurrency sets the currency given to newly provisioned workspaces.
func WithDefaultReportingCurrency(code string) WorkspaceServiceOption {
	return func(s *workspaceService) {
		if code != "" {
			s.defaultCurrency = strings.ToUpper(code)
		}
	}
}

// WithWorkspaceClock overrides the clock used to stamp updates.
func WithWorkspaceClock(clock func() time.Time) WorkspaceServiceOption {
	return func(s *workspaceService) {
		s.Clock = clock
	}
}

// NewWorkspaceService creates a new workspace settings service
func NewWorkspaceService(repo portsrepo.WorkspaceSettingsRepositoryFacade, options ...WorkspaceServiceOption) portssvc.WorkspaceSettingsSvc {
	svc := &workspaceService{
		settingsRepo:    repo,
		defaultCurrency: domain.PivotCurrency,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.WorkspaceSettingsSvc = (*workspaceService)(nil)

// GetSettings returns the workspace settings, creating them with defaults on first access.
func (s *workspaceService) GetSettings(ctx context.Context, workspaceID string) (*domain.WorkspaceSettings, error) {
	settings, err := s.settingsRepo.FindSettings(ctx, workspaceID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to load workspace settings", slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to load workspace settings: %w", err)
	}

	settings, err = s.settingsRepo.EnsureSettings(ctx, domain.WorkspaceSettings{
		WorkspaceID:       workspaceID,
		ReportingCurrency: s.defaultCurrency,
		CategoryFilter:    []string{},
		AccountTiers:      map[string]string{},
		UpdatedAt:         s.Now(),
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to provision workspace settings", slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to provision workspace settings: %w", err)
	}

	s.LogInfo(ctx, "Provisioned default workspace settings",
		slog.String("workspace_id", workspaceID),
		slog.String("reporting_currency", settings.ReportingCurrency))
	return settings, nil
}

// UpdateSettings replaces the mutable settings of a workspace.
func (s *workspaceService) UpdateSettings(ctx context.Context, workspaceID string, req dto.UpdateSettingsRequest) (*domain.WorkspaceSettings, error) {
	settings, err := req.ToDomain(workspaceID)
	if err != nil {
		return nil, err
	}
	settings.UpdatedAt = s.Now()

	if err := s.settingsRepo.SaveSettings(ctx, settings); err != nil {
		s.LogError(ctx, err, "Failed to save workspace settings", slog.String("workspace_id", workspaceID))
		return nil, fmt.Errorf("failed to save workspace settings: %w", err)
	}

	s.LogInfo(ctx, "Workspace settings updated",
		slog.String("workspace_id", workspaceID),
		slog.String("reporting_currency", settings.ReportingCurrency),
		slog.Int("category_filter", len(settings.CategoryFilter)),
		slog.Int("account_tiers", len(settings.AccountTiers)))
	return &settings, nil
}
