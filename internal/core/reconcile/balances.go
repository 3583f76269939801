package reconcile

import (
	"sort"
	"strings"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProjectionInput drives the BalanceProjector.
type ProjectionInput struct {
	ReportingCurrency string
	// Range is the span of months to report. History before Range.From still
	// contributes to the running balance.
	Range     domain.MonthRange
	Movements []domain.MonthlyMovement
	Rates     RateResolver
	// TierOf partitions accounts by liquidity tier when set.
	TierOf func(accountID string) string
}

// Projection holds month-end balances of every month in the projected range.
type Projection struct {
	// Native is currency -> month -> native month-end balance.
	Native map[string]map[domain.Month]decimal.Decimal
	// MonthEnd holds the marked-to-market total of fully convertible months only.
	MonthEnd map[domain.Month]decimal.Decimal
	// Unconvertible lists, per month, the currencies with a balance but no rate.
	Unconvertible map[domain.Month][]string
	// ByTier is tier -> month -> marked-to-market total; nil without a partition.
	ByTier map[string]map[domain.Month]decimal.Decimal
}

// Observed returns the month-end total of m if every currency converted.
func (p Projection) Observed(m domain.Month) (decimal.Decimal, bool) {
	v, ok := p.MonthEnd[m]
	return v, ok
}

// NativeAt returns the native month-end balance of a currency.
func (p Projection) NativeAt(currency string, m domain.Month) decimal.Decimal {
	return p.Native[strings.ToUpper(currency)][m]
}

// Currencies lists every currency with a projected balance.
func (p Projection) Currencies() []string {
	out := make([]string, 0, len(p.Native))
	for c := range p.Native {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

type tierCurrency struct{ tier, currency string }

// prefixBalances turns monthly deltas into running month-end balances over rng.
// Deltas before rng.From are folded into the opening balance.
func prefixBalances(deltas map[domain.Month]decimal.Decimal, rng domain.MonthRange) map[domain.Month]decimal.Decimal {
	opening := decimal.Zero
	for m, d := range deltas {
		if m.Before(rng.From) {
			opening = opening.Add(d)
		}
	}
	out := make(map[domain.Month]decimal.Decimal)
	running := opening
	for _, m := range rng.Months() {
		running = running.Add(deltas[m])
		out[m] = running
	}
	return out
}

// Project computes per-currency running balances as a prefix sum over all
// history and marks each month end to market at the rate of its final day.
func Project(in ProjectionInput) Projection {
	deltas := make(map[string]map[domain.Month]decimal.Decimal)
	var tierDeltas map[tierCurrency]map[domain.Month]decimal.Decimal
	if in.TierOf != nil {
		tierDeltas = make(map[tierCurrency]map[domain.Month]decimal.Decimal)
	}

	for _, mv := range in.Movements {
		cur := strings.ToUpper(mv.CurrencyCode)
		if deltas[cur] == nil {
			deltas[cur] = make(map[domain.Month]decimal.Decimal)
		}
		deltas[cur][mv.Month] = deltas[cur][mv.Month].Add(mv.Net)
		if tierDeltas != nil {
			key := tierCurrency{tier: in.TierOf(mv.AccountID), currency: cur}
			if tierDeltas[key] == nil {
				tierDeltas[key] = make(map[domain.Month]decimal.Decimal)
			}
			tierDeltas[key][mv.Month] = tierDeltas[key][mv.Month].Add(mv.Net)
		}
	}

	p := Projection{
		Native:        make(map[string]map[domain.Month]decimal.Decimal, len(deltas)),
		MonthEnd:      make(map[domain.Month]decimal.Decimal),
		Unconvertible: make(map[domain.Month][]string),
	}
	for cur, d := range deltas {
		p.Native[cur] = prefixBalances(d, in.Range)
	}

	currencies := p.Currencies()
	for _, m := range in.Range.Months() {
		total := decimal.Zero
		var missing []string
		for _, cur := range currencies {
			native := p.Native[cur][m]
			if native.IsZero() {
				continue
			}
			v, ok := Convert(in.Rates, native, cur, in.ReportingCurrency, m.LastDay())
			if !ok {
				missing = append(missing, cur)
				continue
			}
			total = total.Add(v)
		}
		if len(missing) > 0 {
			p.Unconvertible[m] = missing
			continue
		}
		p.MonthEnd[m] = total
	}

	if tierDeltas != nil {
		p.ByTier = projectTiers(tierDeltas, in)
	}
	return p
}

// projectTiers marks tier balances to market. A tier month with an
// unconvertible balance is left out rather than understated.
func projectTiers(tierDeltas map[tierCurrency]map[domain.Month]decimal.Decimal, in ProjectionInput) map[string]map[domain.Month]decimal.Decimal {
	type tierMonth struct {
		total  decimal.Decimal
		broken bool
	}
	acc := make(map[string]map[domain.Month]*tierMonth)
	for key, d := range tierDeltas {
		if acc[key.tier] == nil {
			acc[key.tier] = make(map[domain.Month]*tierMonth)
		}
		for m, native := range prefixBalances(d, in.Range) {
			tm := acc[key.tier][m]
			if tm == nil {
				tm = &tierMonth{}
				acc[key.tier][m] = tm
			}
			if native.IsZero() {
				continue
			}
			v, ok := Convert(in.Rates, native, key.currency, in.ReportingCurrency, m.LastDay())
			if !ok {
				tm.broken = true
				continue
			}
			tm.total = tm.total.Add(v)
		}
	}

	out := make(map[string]map[domain.Month]decimal.Decimal, len(acc))
	for tier, months := range acc {
		out[tier] = make(map[domain.Month]decimal.Decimal)
		for m, tm := range months {
			if !tm.broken {
				out[tier][m] = tm.total
			}
		}
	}
	return out
}
