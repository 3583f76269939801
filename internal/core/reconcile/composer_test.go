package reconcile_test

import (
	"testing"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/SscSPs/budget_reconciler/internal/core/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestRegimeOf(t *testing.T) {
	current := month("2026-05")
	assert.Equal(t, domain.RegimeClosed, reconcile.RegimeOf(month("2026-04"), current))
	assert.Equal(t, domain.RegimeOpen, reconcile.RegimeOf(month("2026-05"), current))
	assert.Equal(t, domain.RegimeProjected, reconcile.RegimeOf(month("2027-01"), current))
}

func TestStep(t *testing.T) {
	state := reconcile.CumulativeState{Actual: decPtr("10"), Plan: decPtr("10"), PrevObserved: decPtr("100")}

	t.Run("closed snaps to observed", func(t *testing.T) {
		summary, next := reconcile.Step(state, reconcile.MonthFacts{
			Regime: domain.RegimeClosed, NetActual: dec("5"), Observed: decPtr("120"),
		})
		assertDecimalPtr(t, "120", next.Actual)
		assertDecimalPtr(t, "120", next.Plan)
		assertDecimalPtr(t, "15", summary.FxAdjustment)
		assert.False(t, summary.Tainted)
	})

	t.Run("closed without observation falls back to net movement", func(t *testing.T) {
		summary, next := reconcile.Step(state, reconcile.MonthFacts{
			Regime: domain.RegimeClosed, NetActual: dec("5"), NetPlanned: dec("99"),
		})
		assertDecimal(t, "5", next.Actual.Sub(*state.Actual))
		assertDecimalPtr(t, "15", next.Plan)
		assert.Nil(t, summary.FxAdjustment)
		assert.Nil(t, next.PrevObserved)
	})

	t.Run("open advances plan by planned net", func(t *testing.T) {
		summary, next := reconcile.Step(state, reconcile.MonthFacts{
			Regime: domain.RegimeOpen, NetActual: dec("5"), NetPlanned: dec("7"), Observed: decPtr("120"),
		})
		assertDecimalPtr(t, "120", next.Actual)
		assertDecimalPtr(t, "17", next.Plan)
		assertDecimalPtr(t, "15", summary.FxAdjustment)
	})

	t.Run("open without observation", func(t *testing.T) {
		_, next := reconcile.Step(state, reconcile.MonthFacts{
			Regime: domain.RegimeOpen, NetActual: dec("5"), NetPlanned: dec("7"),
		})
		assertDecimalPtr(t, "15", next.Actual)
		assertDecimalPtr(t, "17", next.Plan)
	})

	t.Run("projected carries only the plan", func(t *testing.T) {
		summary, next := reconcile.Step(state, reconcile.MonthFacts{
			Regime: domain.RegimeProjected, NetActual: dec("5"), NetPlanned: dec("7"),
		})
		assert.Nil(t, next.Actual)
		assert.Nil(t, summary.CumulativeActual)
		assertDecimalPtr(t, "17", next.Plan)
		assert.Nil(t, summary.FxAdjustment)
	})

	t.Run("taint is sticky", func(t *testing.T) {
		tainted := state
		tainted.Tainted = true
		summary, next := reconcile.Step(tainted, reconcile.MonthFacts{Regime: domain.RegimeClosed, Observed: decPtr("1")})
		assert.True(t, summary.Tainted)
		assert.True(t, next.Tainted)
	})
}

func composeFixture() reconcile.ComposeInput {
	return reconcile.ComposeInput{
		Window:       domain.MonthRange{From: month("2026-01"), To: month("2026-04")},
		CurrentMonth: month("2026-03"),
		Rows: []domain.GridRow{
			{Month: month("2026-01"), Direction: domain.Income, Category: "salary", Actual: dec("100")},
			{Month: month("2026-02"), Direction: domain.Spend, Category: "food", Actual: dec("40"), HasUnconvertible: true},
			{Month: month("2026-03"), Direction: domain.Income, Category: "salary", Actual: dec("50"), Planned: dec("60")},
			{Month: month("2026-03"), Direction: domain.Spend, Category: "rent", Planned: dec("30")},
			{Month: month("2026-04"), Direction: domain.Income, Category: "salary", Planned: dec("60")},
			{Month: month("2026-04"), Direction: domain.Spend, Category: "rent", Planned: dec("30")},
		},
		CashFlow: map[domain.Month]reconcile.NetMovement{
			month("2026-01"): {Net: dec("100")},
			month("2026-02"): {Net: dec("-40"), HasUnconvertible: true},
			month("2026-03"): {Net: dec("50")},
		},
		Projection: reconcile.Projection{
			MonthEnd: map[domain.Month]decimal.Decimal{
				month("2025-12"): dec("1000"),
				month("2026-01"): dec("1110"),
				month("2026-03"): dec("1200"),
			},
			Unconvertible: map[domain.Month][]string{month("2026-02"): {"JPY"}},
		},
	}
}

func TestCompose_Regimes(t *testing.T) {
	months := reconcile.Compose(composeFixture())
	require.Len(t, months, 4)

	jan, feb, mar, apr := months[0], months[1], months[2], months[3]

	assert.Equal(t, domain.RegimeClosed, jan.Regime)
	assertDecimalPtr(t, "1110", jan.CumulativeActual)
	assertDecimalPtr(t, "1110", jan.CumulativePlan)
	assertDecimalPtr(t, "10", jan.FxAdjustment)

	assert.Equal(t, domain.RegimeClosed, feb.Regime)
	assertDecimalPtr(t, "1070", feb.CumulativeActual)
	assertDecimalPtr(t, "1070", feb.CumulativePlan)
	assert.Nil(t, feb.FxAdjustment)
	assert.True(t, feb.Unconvertible)

	assert.Equal(t, domain.RegimeOpen, mar.Regime)
	assertDecimalPtr(t, "1200", mar.CumulativeActual)
	assertDecimalPtr(t, "1100", mar.CumulativePlan)
	assert.Nil(t, mar.FxAdjustment, "previous month has no observation")

	assert.Equal(t, domain.RegimeProjected, apr.Regime)
	assert.Nil(t, apr.CumulativeActual)
	assertDecimalPtr(t, "1130", apr.CumulativePlan)
}

func TestCompose_TaintIsMonotone(t *testing.T) {
	months := reconcile.Compose(composeFixture())

	seen := false
	for _, m := range months {
		if seen {
			assert.True(t, m.Tainted, "month %s cleared taint", m.Month)
		}
		seen = seen || m.Tainted
	}
	assert.Equal(t, []bool{false, true, true, true}, []bool{months[0].Tainted, months[1].Tainted, months[2].Tainted, months[3].Tainted})
}

func TestCompose_SeedFallbacks(t *testing.T) {
	in := reconcile.ComposeInput{
		Window:       domain.MonthRange{From: month("2026-01"), To: month("2026-01")},
		CurrentMonth: month("2026-06"),
		Rows: []domain.GridRow{
			{Month: month("2026-01"), Direction: domain.Income, Category: "salary", Actual: dec("100")},
		},
		CashFlow:         map[domain.Month]reconcile.NetMovement{month("2026-01"): {Net: dec("100")}},
		CumulativeBefore: domain.CumulativeBefore{IncomeActual: dec("300"), SpendActual: dec("100")},
	}

	months := reconcile.Compose(in)
	assertDecimalPtr(t, "300", months[0].CumulativeActual)

	in.Seed = decPtr("500")
	months = reconcile.Compose(in)
	assertDecimalPtr(t, "600", months[0].CumulativeActual)

	in.Seed = nil
	in.CumulativeBefore.HasUnconvertible = true
	months = reconcile.Compose(in)
	assert.True(t, months[0].Tainted)
}

func TestReconcile_AnchoredBalances(t *testing.T) {
	book := reconcile.NewRateBook([]domain.ExchangeRate{
		rate("EUR", "USD", "2025-12-01", "1.0"),
		rate("EUR", "USD", "2026-01-31", "1.2"),
		rate("EUR", "USD", "2026-02-27", "1.1"),
	})

	rec := reconcile.Reconcile(reconcile.ReconcileInput{
		ReportingCurrency: "USD",
		Query: domain.GridQuery{
			MonthFrom:    month("2026-01"),
			MonthTo:      month("2026-03"),
			CurrentMonth: month("2026-02"),
		},
		Entries: []domain.LedgerEntry{
			entry("2026-01-05", "acc-1", "1000", "USD", domain.Income, "salary"),
			entry("2026-02-10", "acc-2", "-100", "EUR", domain.Spend, "food"),
			entry("2026-03-01", "acc-1", "-999", "USD", domain.Spend, "future"),
		},
		History: []domain.DailyMovement{
			{Day: day("2025-12-01"), CurrencyCode: "USD", Kind: domain.Income, Amount: dec("500")},
			{Day: day("2025-12-01"), CurrencyCode: "EUR", Kind: domain.Income, Amount: dec("300")},
		},
		Movements: []domain.MonthlyMovement{
			movement("acc-1", "USD", "2025-12", "500"),
			movement("acc-1", "USD", "2026-01", "1000"),
			movement("acc-2", "EUR", "2025-12", "300"),
			movement("acc-2", "EUR", "2026-02", "-100"),
		},
		Rates: book,
	})

	grid := rec.Grid
	assert.Empty(t, rec.UnconvertibleCurrencies)
	assert.Empty(t, grid.ConversionWarnings)
	assertDecimal(t, "800", grid.CumulativeBefore.Net())
	require.Len(t, grid.Rows, 2, "actuals after the current month are not counted")
	assertDecimal(t, "120", findRow(t, grid.Rows, "2026-02", domain.Spend, "food").Actual)

	require.Len(t, grid.MonthEndBalances, 2)
	assertDecimal(t, "1860", grid.MonthEndBalances[month("2026-01")])
	assertDecimal(t, "1720", grid.MonthEndBalances[month("2026-02")])

	require.Len(t, grid.Months, 3)
	assertDecimalPtr(t, "60", grid.Months[0].FxAdjustment)
	assertDecimalPtr(t, "-20", grid.Months[1].FxAdjustment)
	assertDecimalPtr(t, "1860", grid.Months[1].CumulativePlan)
	assertDecimalPtr(t, "1860", grid.Months[2].CumulativePlan)

	// The anchor-implied delta is net movement plus the FX adjustment.
	delta := grid.Months[1].CumulativeActual.Sub(*grid.Months[0].CumulativeActual)
	assertDecimal(t, delta.String(), grid.Months[1].NetActual.Add(*grid.Months[1].FxAdjustment))
}

func TestReconcile_CategoryFilterLeavesCashFlowWhole(t *testing.T) {
	in := reconcile.ReconcileInput{
		ReportingCurrency: "USD",
		Query: domain.GridQuery{
			MonthFrom:    month("2026-01"),
			MonthTo:      month("2026-02"),
			CurrentMonth: month("2026-02"),
		},
		Settings: domain.WorkspaceSettings{ReportingCurrency: "USD", CategoryFilter: []string{"food"}},
		Entries: []domain.LedgerEntry{
			entry("2026-01-05", "acc-1", "1000", "USD", domain.Income, "rent"),
			entry("2026-02-05", "acc-1", "-100", "USD", domain.Spend, "rent"),
		},
		Movements: []domain.MonthlyMovement{
			movement("acc-1", "USD", "2026-01", "1000"),
			movement("acc-1", "USD", "2026-02", "-100"),
		},
		Rates: reconcile.NewRateBook(nil),
	}

	rec := reconcile.Reconcile(in)
	assert.Empty(t, rec.Grid.Rows, "rent is outside the filter")
	require.Len(t, rec.Grid.Months, 2)
	jan, feb := rec.Grid.Months[0], rec.Grid.Months[1]
	assertDecimal(t, "1000", jan.NetActual)
	assertDecimal(t, "-100", feb.NetActual)
	assertDecimalPtr(t, "0", feb.FxAdjustment)
	assertDecimalPtr(t, "900", feb.CumulativeActual)

	totals := reconcile.ComputeYearTotals(2026, in)
	assertDecimal(t, "0", totals.FxAdjustmentTotal)

	// Without month-end observations the running balance follows the same cash flow.
	flow, failed := reconcile.NetMovementsByMonth(in.Entries, reconcile.CashFlowSpan(in.Query), "USD", in.Rates)
	assert.Empty(t, failed)
	months := reconcile.Compose(reconcile.ComposeInput{
		Window:       in.Query.Window(),
		CurrentMonth: in.Query.CurrentMonth,
		CashFlow:     flow,
	})
	assertDecimalPtr(t, "1000", months[0].CumulativeActual)
	assertDecimalPtr(t, "900", months[1].CumulativeActual)
}

func TestReconcile_ActualRangeLeavesCashFlowWhole(t *testing.T) {
	rec := reconcile.Reconcile(reconcile.ReconcileInput{
		ReportingCurrency: "USD",
		Query: domain.GridQuery{
			MonthFrom:    month("2026-01"),
			MonthTo:      month("2026-02"),
			ActualFrom:   month("2026-02"),
			CurrentMonth: month("2026-02"),
		},
		Entries: []domain.LedgerEntry{
			entry("2026-01-05", "acc-1", "1000", "USD", domain.Income, "salary"),
			entry("2026-02-05", "acc-1", "-100", "USD", domain.Spend, "food"),
		},
		Movements: []domain.MonthlyMovement{
			movement("acc-1", "USD", "2025-12", "500"),
			movement("acc-1", "USD", "2026-01", "1000"),
			movement("acc-1", "USD", "2026-02", "-100"),
		},
		Rates: reconcile.NewRateBook(nil),
	})

	require.Len(t, rec.Grid.Rows, 1)
	assert.Equal(t, "food", rec.Grid.Rows[0].Category)
	assertDecimalPtr(t, "0", rec.Grid.Months[0].FxAdjustment)
	assertDecimalPtr(t, "0", rec.Grid.Months[1].FxAdjustment)
}

func TestReconcile_WarnsAboutUnconvertibleCurrencies(t *testing.T) {
	rec := reconcile.Reconcile(reconcile.ReconcileInput{
		ReportingCurrency: "USD",
		Query: domain.GridQuery{
			MonthFrom:    month("2026-01"),
			MonthTo:      month("2026-01"),
			CurrentMonth: month("2026-01"),
		},
		Entries: []domain.LedgerEntry{
			entry("2026-01-05", "acc-1", "-1000", "JPY", domain.Spend, "food"),
		},
		Movements: []domain.MonthlyMovement{movement("acc-1", "JPY", "2026-01", "-1000")},
		Coverage:  []domain.CurrencyCoverage{{CurrencyCode: "JPY", FirstUsed: day("2026-01-05")}},
		Rates:     reconcile.NewRateBook(nil),
	})

	assert.Equal(t, []string{"JPY"}, rec.UnconvertibleCurrencies)
	require.Len(t, rec.Grid.ConversionWarnings, 1)
	assert.Equal(t, "no exchange rate to USD available", rec.Grid.ConversionWarnings[0].Reason)
	assert.Empty(t, rec.Grid.MonthEndBalances)
	assert.True(t, rec.Grid.Months[0].Tainted)
}
