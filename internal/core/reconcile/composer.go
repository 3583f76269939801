package reconcile

import (
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthFacts are the inputs of one transition of the cumulative state machine.
type MonthFacts struct {
	Month         domain.Month
	Regime        domain.Regime
	NetActual     decimal.Decimal
	NetPlanned    decimal.Decimal
	Observed      *decimal.Decimal
	Unconvertible bool
}

// CumulativeState is carried from one month to the next.
type CumulativeState struct {
	Actual       *decimal.Decimal
	Plan         *decimal.Decimal
	PrevObserved *decimal.Decimal
	Tainted      bool
}

// NewCumulativeState seeds the state machine. A nil seed falls back to
// the pre-window cumulative net.
func NewCumulativeState(seed *decimal.Decimal, before domain.CumulativeBefore, prevObserved *decimal.Decimal) CumulativeState {
	start := before.Net()
	if seed != nil {
		start = *seed
	}
	actual, plan := start, start
	return CumulativeState{
		Actual:       &actual,
		Plan:         &plan,
		PrevObserved: prevObserved,
		Tainted:      before.HasUnconvertible && seed == nil,
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func advance(prev *decimal.Decimal, by decimal.Decimal) *decimal.Decimal {
	if prev == nil {
		return ptr(by)
	}
	return ptr(prev.Add(by))
}

// RegimeOf classifies m against the current month.
func RegimeOf(m, current domain.Month) domain.Regime {
	switch m.Compare(current) {
	case -1:
		return domain.RegimeClosed
	case 0:
		return domain.RegimeOpen
	default:
		return domain.RegimeProjected
	}
}

// Step is the transition function of the cumulative balance. Closed months
// snap both columns to the observed balance, the open month advances the plan
// by the planned net, and projected months only carry the plan.
func Step(state CumulativeState, f MonthFacts) (domain.MonthSummary, CumulativeState) {
	next := CumulativeState{PrevObserved: f.Observed, Tainted: state.Tainted || f.Unconvertible}

	switch f.Regime {
	case domain.RegimeClosed:
		if f.Observed != nil {
			next.Actual, next.Plan = ptr(*f.Observed), ptr(*f.Observed)
		} else {
			next.Actual = advance(state.Actual, f.NetActual)
			next.Plan = advance(state.Plan, f.NetActual)
		}
	case domain.RegimeOpen:
		if f.Observed != nil {
			next.Actual = ptr(*f.Observed)
		} else {
			next.Actual = advance(state.Actual, f.NetActual)
		}
		next.Plan = advance(state.Plan, f.NetPlanned)
	case domain.RegimeProjected:
		next.Actual = nil
		next.Plan = advance(state.Plan, f.NetPlanned)
		next.PrevObserved = nil
	}

	summary := domain.MonthSummary{
		Month:            f.Month,
		Regime:           f.Regime,
		NetActual:        f.NetActual,
		NetPlanned:       f.NetPlanned,
		ObservedBalance:  f.Observed,
		CumulativeActual: next.Actual,
		CumulativePlan:   next.Plan,
		Unconvertible:    f.Unconvertible,
		Tainted:          next.Tainted,
	}
	if f.Observed != nil && state.PrevObserved != nil {
		summary.FxAdjustment = ptr(f.Observed.Sub(*state.PrevObserved).Sub(f.NetActual))
	}
	return summary, next
}

// ComposeInput feeds the cumulative state machine over a window.
type ComposeInput struct {
	Window       domain.MonthRange
	CurrentMonth domain.Month
	Rows         []domain.GridRow
	// CashFlow is the unfiltered net movement per month. It advances unanchored
	// balances and is the cash term of the FX adjustment.
	CashFlow         map[domain.Month]NetMovement
	CumulativeBefore domain.CumulativeBefore
	Projection       Projection
	// Seed overrides the opening balance. When nil, the observed balance of the
	// month before the window is used, then the pre-window cumulative net.
	Seed *decimal.Decimal
}

// Compose walks the window month by month in chronological order.
func Compose(in ComposeInput) []domain.MonthSummary {
	totals := TotalsByMonth(in.Rows)

	observed := func(m domain.Month) *decimal.Decimal {
		if m.After(in.CurrentMonth) {
			return nil
		}
		if v, ok := in.Projection.Observed(m); ok {
			return ptr(v)
		}
		return nil
	}

	prev := in.Window.From.Prev()
	seed := in.Seed
	if seed == nil {
		seed = observed(prev)
	}
	state := NewCumulativeState(seed, in.CumulativeBefore, observed(prev))

	months := in.Window.Months()
	out := make([]domain.MonthSummary, 0, len(months))
	for _, m := range months {
		t := totals[m]
		income, spend, transfer := t[domain.Income], t[domain.Spend], t[domain.Transfer]
		flow := in.CashFlow[m]

		regime := RegimeOf(m, in.CurrentMonth)
		unconvertible := income.HasUnconvertible || spend.HasUnconvertible || transfer.HasUnconvertible
		if regime != domain.RegimeProjected && (flow.HasUnconvertible || len(in.Projection.Unconvertible[m]) > 0) {
			unconvertible = true
		}

		var summary domain.MonthSummary
		summary, state = Step(state, MonthFacts{
			Month:     m,
			Regime:    regime,
			NetActual: flow.Net,
			// Transfers carry no plan, so the planned net uses actual transfer movement.
			NetPlanned:    income.Planned.Sub(spend.Planned).Add(transfer.Actual),
			Observed:      observed(m),
			Unconvertible: unconvertible,
		})
		out = append(out, summary)
	}
	return out
}

// CashFlowSpan is the part of the window whose net movement is known: the
// window clipped to the current month. It ignores the actuals range.
func CashFlowSpan(q domain.GridQuery) domain.MonthRange {
	span := q.Window()
	if !q.CurrentMonth.IsZero() && q.CurrentMonth.Before(span.To) {
		span.To = q.CurrentMonth
	}
	return span
}

// ReconcileInput gathers every fetched fact for one grid invocation.
type ReconcileInput struct {
	ReportingCurrency string
	Query             domain.GridQuery
	Settings          domain.WorkspaceSettings
	Entries           []domain.LedgerEntry
	PlanLines         []domain.BudgetPlanLine
	Comments          []domain.BudgetComment
	History           []domain.DailyMovement
	Movements         []domain.MonthlyMovement
	Coverage          []domain.CurrencyCoverage
	Rates             RateResolver
	Seed              *decimal.Decimal
}

// Reconciliation is a composed grid plus the currencies that broke conversion.
type Reconciliation struct {
	Grid                    domain.BudgetGridResult
	UnconvertibleCurrencies []string
}

// Reconcile runs aggregator, projector and composer for one window. The
// display window and the full-year totals are two invocations of this function.
func Reconcile(in ReconcileInput) Reconciliation {
	window := in.Query.Window()

	agg := Aggregate(AggregateInput{
		ReportingCurrency: in.ReportingCurrency,
		Window:            window,
		Actuals:           in.Query.Actuals(),
		Settings:          in.Settings,
		Entries:           in.Entries,
		PlanLines:         in.PlanLines,
		Comments:          in.Comments,
		Rates:             in.Rates,
	})

	before, beforeFailed := CumulativeFromHistory(in.History, in.ReportingCurrency, in.Rates)
	cashFlow, cashFailed := NetMovementsByMonth(in.Entries, CashFlowSpan(in.Query), in.ReportingCurrency, in.Rates)

	projIn := ProjectionInput{
		ReportingCurrency: in.ReportingCurrency,
		Range:             domain.MonthRange{From: window.From.Prev(), To: window.To},
		Movements:         in.Movements,
		Rates:             in.Rates,
	}
	if len(in.Settings.AccountTiers) > 0 {
		projIn.TierOf = in.Settings.TierOf
	}
	projection := Project(projIn)

	months := Compose(ComposeInput{
		Window:           window,
		CurrentMonth:     in.Query.CurrentMonth,
		Rows:             agg.Rows,
		CashFlow:         cashFlow,
		CumulativeBefore: before,
		Projection:       projection,
		Seed:             in.Seed,
	})

	failed := make(currencySet)
	for _, c := range agg.UnconvertibleCurrencies {
		failed.add(c)
	}
	for _, c := range beforeFailed {
		failed.add(c)
	}
	for _, c := range cashFailed {
		failed.add(c)
	}
	monthEnd := make(map[domain.Month]decimal.Decimal)
	for _, m := range window.Months() {
		if m.After(in.Query.CurrentMonth) {
			continue
		}
		if v, ok := projection.Observed(m); ok {
			monthEnd[m] = v
		}
		for _, c := range projection.Unconvertible[m] {
			failed.add(c)
		}
	}

	var byTier map[string]map[domain.Month]decimal.Decimal
	if projection.ByTier != nil {
		byTier = make(map[string]map[domain.Month]decimal.Decimal, len(projection.ByTier))
		for tier, series := range projection.ByTier {
			byTier[tier] = make(map[domain.Month]decimal.Decimal)
			for m, v := range series {
				if window.Contains(m) && !m.After(in.Query.CurrentMonth) {
					byTier[tier][m] = v
				}
			}
		}
	}

	currencies := failed.sorted()
	return Reconciliation{
		Grid: domain.BudgetGridResult{
			ReportingCurrency:  in.ReportingCurrency,
			Rows:               agg.Rows,
			ConversionWarnings: mergeWarnings(CoverageWarnings(in.Rates, in.ReportingCurrency, in.Coverage), currencies, in.ReportingCurrency),
			CumulativeBefore:   before,
			MonthEndBalances:   monthEnd,
			MonthEndByTier:     byTier,
			Months:             months,
		},
		UnconvertibleCurrencies: currencies,
	}
}
