package dto

import (
	"strings"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/SscSPs/budget_reconciler/internal/utils"
)

// UpdateSettingsRequest replaces the mutable workspace settings.
type UpdateSettingsRequest struct {
	ReportingCurrency string            `json:"reportingCurrency" binding:"required,currency"`
	CategoryFilter    []string          `json:"categoryFilter" binding:"omitempty,dive,required,max=255"`
	AccountTiers      map[string]string `json:"accountTiers" binding:"omitempty,dive,keys,required,endkeys,required,max=64"`
}

// ToDomain validates the request and builds the settings row.
func (r UpdateSettingsRequest) ToDomain(workspaceID string) (domain.WorkspaceSettings, error) {
	currency := strings.ToUpper(strings.TrimSpace(r.ReportingCurrency))
	if !utils.IsKnownCurrency(currency) {
		return domain.WorkspaceSettings{}, apperrors.NewValidationError("unknown reporting currency " + r.ReportingCurrency)
	}
	filter := make([]string, 0, len(r.CategoryFilter))
	seen := make(map[string]bool, len(r.CategoryFilter))
	for _, c := range r.CategoryFilter {
		c = strings.TrimSpace(c)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		filter = append(filter, c)
	}
	tiers := make(map[string]string, len(r.AccountTiers))
	for account, tier := range r.AccountTiers {
		if tier = strings.TrimSpace(tier); tier != "" {
			tiers[account] = tier
		}
	}
	return domain.WorkspaceSettings{
		WorkspaceID:       workspaceID,
		ReportingCurrency: currency,
		CategoryFilter:    filter,
		AccountTiers:      tiers,
	}, nil
}

// SettingsResponse is the API view of workspace settings.
type SettingsResponse struct {
	WorkspaceID       string            `json:"workspaceID"`
	ReportingCurrency string            `json:"reportingCurrency"`
	CategoryFilter    []string          `json:"categoryFilter"`
	AccountTiers      map[string]string `json:"accountTiers"`
	UpdatedAt         string            `json:"updatedAt"`
}

// ToSettingsResponse converts domain settings to the response DTO.
func ToSettingsResponse(s *domain.WorkspaceSettings) SettingsResponse {
	resp := SettingsResponse{
		WorkspaceID:       s.WorkspaceID,
		ReportingCurrency: s.ReportingCurrency,
		CategoryFilter:    s.CategoryFilter,
		AccountTiers:      s.AccountTiers,
		UpdatedAt:         s.UpdatedAt.UTC().Format(timestampLayout),
	}
	if resp.CategoryFilter == nil {
		resp.CategoryFilter = []string{}
	}
	if resp.AccountTiers == nil {
		resp.AccountTiers = map[string]string{}
	}
	return resp
}
