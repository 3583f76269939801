package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// ListRatesBetween returns the rate facts dated in [from, through] plus,
	// per pair, the latest fact dated before from.
	ListRatesBetween(ctx context.Context, from, through time.Time) ([]domain.ExchangeRate, error)

	// FindRateAsOf returns the most recent rate for the pair on or before asOf.
	FindRateAsOf(ctx context.Context, baseCurrency, quoteCurrency string, asOf time.Time) (*domain.ExchangeRate, error)
}
