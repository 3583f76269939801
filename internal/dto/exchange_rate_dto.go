package dto

import (
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ResolvedRateResponse defines the API response of a single rate lookup.
type ResolvedRateResponse struct {
	SourceCurrency    string          `json:"sourceCurrency"`
	ReportingCurrency string          `json:"reportingCurrency"`
	AsOf              string          `json:"asOf"`
	Rate              decimal.Decimal `json:"rate"`
	Method            string          `json:"method"`
	RateDate          string          `json:"rateDate"`
}

// ToResolvedRateResponse converts a domain.ResolvedRate to its response DTO.
// Rates are never rounded.
func ToResolvedRateResponse(r *domain.ResolvedRate) ResolvedRateResponse {
	return ResolvedRateResponse{
		SourceCurrency:    r.SourceCurrency,
		ReportingCurrency: r.ReportingCurrency,
		AsOf:              r.AsOf.Format(DateLayout),
		Rate:              r.Rate,
		Method:            string(r.Method),
		RateDate:          r.RateDate.Format(DateLayout),
	}
}
