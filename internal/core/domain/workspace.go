package domain

import "time"

// DefaultLiquidityTier is assigned to accounts without an explicit tier.
const DefaultLiquidityTier = "liquid"

// WorkspaceSettings is the mutable per-workspace configuration singleton.
type WorkspaceSettings struct {
	WorkspaceID       string            `json:"workspaceID"`
	ReportingCurrency string            `json:"reportingCurrency"`
	CategoryFilter    []string          `json:"categoryFilter"` // empty means all categories
	AccountTiers      map[string]string `json:"accountTiers"`   // accountID -> liquidity tier
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// TierOf returns the liquidity tier of an account.
func (s WorkspaceSettings) TierOf(accountID string) string {
	if tier, ok := s.AccountTiers[accountID]; ok && tier != "" {
		return tier
	}
	return DefaultLiquidityTier
}

// AllowsCategory reports whether a category passes the optional filter.
func (s WorkspaceSettings) AllowsCategory(category string) bool {
	if len(s.CategoryFilter) == 0 {
		return true
	}
	for _, c := range s.CategoryFilter {
		if c == category {
			return true
		}
	}
	return false
}
