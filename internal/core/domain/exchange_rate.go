package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PivotCurrency is the quote currency every upstream rate fact is expressed in.
const PivotCurrency = "USD"

// ExchangeRate is an immutable daily fact: one unit of BaseCurrency is worth Rate units of QuoteCurrency.
type ExchangeRate struct {
	BaseCurrency  string          `json:"baseCurrency"`
	QuoteCurrency string          `json:"quoteCurrency"`
	RateDate      time.Time       `json:"rateDate"`
	Rate          decimal.Decimal `json:"rate"`
}

// ResolutionMethod records how a conversion rate was obtained.
type ResolutionMethod string

const (
	ResolvedIdentity ResolutionMethod = "identity"
	ResolvedDirect   ResolutionMethod = "direct"
	ResolvedInverse  ResolutionMethod = "inverse"
	ResolvedPivot    ResolutionMethod = "pivot"
)

// ResolvedRate is the answer to a single rate lookup.
type ResolvedRate struct {
	SourceCurrency    string           `json:"sourceCurrency"`
	ReportingCurrency string           `json:"reportingCurrency"`
	AsOf              time.Time        `json:"asOf"`
	Rate              decimal.Decimal  `json:"rate"`
	Method            ResolutionMethod `json:"method"`
	// RateDate is the date of the oldest fact used.
	RateDate time.Time `json:"rateDate"`
}
