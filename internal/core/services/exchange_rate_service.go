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
	"github.com/shopspring/decimal"
)

// exchangeRateService answers single rate lookups straight from the store,
// following the same order as the in-memory rate book.
type exchangeRateService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateReader
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateReader) portssvc.ExchangeRateReaderSvc {
	return &exchangeRateService{rateRepo: rateRepo}
}

var _ portssvc.ExchangeRateReaderSvc = (*exchangeRateService)(nil)

// findRate returns the latest positive fact for a pair, or nil when none exists.
func (s *exchangeRateService) findRate(ctx context.Context, base, quote string, asOf time.Time) (*domain.ExchangeRate, error) {
	rate, err := s.rateRepo.FindRateAsOf(ctx, base, quote, asOf)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find rate %s/%s: %w", base, quote, err)
	}
	if rate == nil || !rate.Rate.IsPositive() {
		return nil, nil
	}
	return rate, nil
}

// ResolveRate tries identity, the direct pair, the inverted pair and finally
// a cross rate through the pivot currency.
func (s *exchangeRateService) ResolveRate(ctx context.Context, source, reporting string, asOf time.Time) (*domain.ResolvedRate, error) {
	source, reporting = strings.ToUpper(source), strings.ToUpper(reporting)
	asOf = domain.Day(asOf)
	resolved := &domain.ResolvedRate{SourceCurrency: source, ReportingCurrency: reporting, AsOf: asOf}

	if source == reporting {
		resolved.Rate, resolved.Method, resolved.RateDate = decimal.NewFromInt(1), domain.ResolvedIdentity, asOf
		return resolved, nil
	}

	direct, err := s.findRate(ctx, source, reporting, asOf)
	if err != nil {
		s.LogError(ctx, err, "Rate lookup failed", slog.String("source", source), slog.String("reporting", reporting))
		return nil, err
	}
	if direct != nil {
		resolved.Rate, resolved.Method, resolved.RateDate = direct.Rate, domain.ResolvedDirect, direct.RateDate
		return resolved, nil
	}

	inverse, err := s.findRate(ctx, reporting, source, asOf)
	if err != nil {
		s.LogError(ctx, err, "Rate lookup failed", slog.String("source", source), slog.String("reporting", reporting))
		return nil, err
	}
	if inverse != nil {
		resolved.Rate = decimal.NewFromInt(1).Div(inverse.Rate)
		resolved.Method, resolved.RateDate = domain.ResolvedInverse, inverse.RateDate
		return resolved, nil
	}

	toPivot, err := s.findRate(ctx, source, domain.PivotCurrency, asOf)
	if err != nil {
		return nil, err
	}
	reportingToPivot, err := s.findRate(ctx, reporting, domain.PivotCurrency, asOf)
	if err != nil {
		return nil, err
	}
	if toPivot == nil || reportingToPivot == nil {
		s.LogDebug(ctx, "No rate available", slog.String("source", source), slog.String("reporting", reporting), slog.Time("as_of", asOf))
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no rate converts %s to %s on %s", source, reporting, asOf.Format("2006-01-02")))
	}

	resolved.Rate = toPivot.Rate.Div(reportingToPivot.Rate)
	resolved.Method = domain.ResolvedPivot
	resolved.RateDate = toPivot.RateDate
	if reportingToPivot.RateDate.Before(resolved.RateDate) {
		resolved.RateDate = reportingToPivot.RateDate
	}
	return resolved, nil
}
