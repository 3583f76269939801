// Package reconcile holds the pure aggregation engine behind budget grids,
// balance summaries and FX breakdowns. Nothing in here performs I/O.
package reconcile

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// RateResolver resolves the rate converting one unit of source into reporting
// currency as of a day. ok is false when no rate exists at or before the day.
type RateResolver interface {
	Resolve(source, reporting string, day time.Time) (rate decimal.Decimal, ok bool)
}

type currencyPair struct{ base, quote string }

// rateSeries is a chronologically sorted list of daily rates for one pair.
type rateSeries struct {
	days  []time.Time
	rates []decimal.Decimal
}

// asOf returns the most recent rate at or before day.
func (s *rateSeries) asOf(day time.Time) (decimal.Decimal, bool) {
	i, found := slices.BinarySearchFunc(s.days, day, func(d, t time.Time) int { return d.Compare(t) })
	if found {
		return s.rates[i], true
	}
	if i == 0 {
		return decimal.Zero, false
	}
	return s.rates[i-1], true
}

// RateBook is an in-memory index of sparse daily rate facts.
type RateBook struct {
	series map[currencyPair]*rateSeries
}

// NewRateBook indexes rates per currency pair. When two facts share a
// (base, quote, date) the later one in the slice wins.
func NewRateBook(rates []domain.ExchangeRate) *RateBook {
	byPair := make(map[currencyPair]map[time.Time]decimal.Decimal)
	for _, r := range rates {
		if !r.Rate.IsPositive() {
			continue
		}
		key := currencyPair{strings.ToUpper(r.BaseCurrency), strings.ToUpper(r.QuoteCurrency)}
		if byPair[key] == nil {
			byPair[key] = make(map[time.Time]decimal.Decimal)
		}
		byPair[key][domain.Day(r.RateDate)] = r.Rate
	}

	book := &RateBook{series: make(map[currencyPair]*rateSeries, len(byPair))}
	for key, byDay := range byPair {
		s := &rateSeries{}
		for day := range byDay {
			s.days = append(s.days, day)
		}
		sort.Slice(s.days, func(i, j int) bool { return s.days[i].Before(s.days[j]) })
		s.rates = make([]decimal.Decimal, len(s.days))
		for i, day := range s.days {
			s.rates[i] = byDay[day]
		}
		book.series[key] = s
	}
	return book
}

func (b *RateBook) lookup(base, quote string, day time.Time) (decimal.Decimal, bool) {
	if base == quote {
		return one, true
	}
	s, ok := b.series[currencyPair{base, quote}]
	if !ok {
		return decimal.Zero, false
	}
	return s.asOf(day)
}

// Resolve tries, in order: identity, the direct pair, the inverted pair and a
// cross rate through the pivot currency.
func (b *RateBook) Resolve(source, reporting string, day time.Time) (decimal.Decimal, bool) {
	source, reporting = strings.ToUpper(source), strings.ToUpper(reporting)
	day = domain.Day(day)
	if source == reporting {
		return one, true
	}
	if rate, ok := b.lookup(source, reporting, day); ok {
		return rate, true
	}
	if inverse, ok := b.lookup(reporting, source, day); ok {
		return one.Div(inverse), true
	}
	toPivot, ok := b.lookup(source, domain.PivotCurrency, day)
	if !ok {
		return decimal.Zero, false
	}
	reportingToPivot, ok := b.lookup(reporting, domain.PivotCurrency, day)
	if !ok {
		return decimal.Zero, false
	}
	return toPivot.Div(reportingToPivot), true
}

// Convert converts amount from source into reporting currency as of day.
func Convert(rates RateResolver, amount decimal.Decimal, source, reporting string, day time.Time) (decimal.Decimal, bool) {
	rate, ok := rates.Resolve(source, reporting, day)
	if !ok {
		return decimal.Zero, false
	}
	return amount.Mul(rate), true
}

// farFuture is used to test whether a currency is convertible at all.
var farFuture = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// CoverageWarnings reports currencies that cannot be converted on the first
// day they are used. Rates are looked up backwards, so a currency convertible on
// its first use is convertible on every later day.
func CoverageWarnings(rates RateResolver, reporting string, coverage []domain.CurrencyCoverage) []domain.ConversionWarning {
	var warnings []domain.ConversionWarning
	for _, c := range coverage {
		if _, ok := rates.Resolve(c.CurrencyCode, reporting, c.FirstUsed); ok {
			continue
		}
		reason := fmt.Sprintf("no exchange rate to %s available", reporting)
		if _, ok := rates.Resolve(c.CurrencyCode, reporting, farFuture); ok {
			reason = fmt.Sprintf("no exchange rate to %s on or before %s", reporting, domain.Day(c.FirstUsed).Format(time.DateOnly))
		}
		warnings = append(warnings, domain.ConversionWarning{Currency: strings.ToUpper(c.CurrencyCode), Reason: reason})
	}
	return warnings
}

// mergeWarnings adds a generic warning for every unconvertible currency not
// already reported, and returns the list sorted by currency.
func mergeWarnings(warnings []domain.ConversionWarning, currencies []string, reporting string) []domain.ConversionWarning {
	seen := make(map[string]bool, len(warnings))
	out := make([]domain.ConversionWarning, 0, len(warnings)+len(currencies))
	for _, w := range warnings {
		if seen[w.Currency] {
			continue
		}
		seen[w.Currency] = true
		out = append(out, w)
	}
	for _, c := range currencies {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, domain.ConversionWarning{
			Currency: c,
			Reason:   fmt.Sprintf("missing exchange rate to %s for some dates", reporting),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

// currencySet collects currency codes that failed conversion.
type currencySet map[string]struct{}

func (s currencySet) add(code string) { s[strings.ToUpper(code)] = struct{}{} }

func (s currencySet) merge(o currencySet) {
	for c := range o {
		s[c] = struct{}{}
	}
}

func (s currencySet) sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
