package reconcile_test

import (
	"testing"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/SscSPs/budget_reconciler/internal/core/reconcile"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRow(t *testing.T, rows []domain.GridRow, m string, direction domain.Direction, category string) domain.GridRow {
	t.Helper()
	for _, r := range rows {
		if r.Month == month(m) && r.Direction == direction && r.Category == category {
			return r
		}
	}
	t.Fatalf("no row for %s/%s/%s", m, direction, category)
	return domain.GridRow{}
}

func marchWindow() domain.MonthRange {
	return domain.MonthRange{From: month("2026-03"), To: month("2026-03")}
}

func TestAggregate_ForeignCurrencyActual(t *testing.T) {
	book := reconcile.NewRateBook([]domain.ExchangeRate{rate("EUR", "USD", "2026-03-01", "1.1")})

	agg := reconcile.Aggregate(reconcile.AggregateInput{
		ReportingCurrency: "USD",
		Window:            marchWindow(),
		Actuals:           marchWindow(),
		Entries: []domain.LedgerEntry{
			entry("2026-03-04", "acc-1", "-100", "EUR", domain.Spend, "travel"),
			entry("2026-03-20", "acc-1", "-50", "EUR", domain.Spend, "travel"),
		},
		Rates: book,
	})

	require.Len(t, agg.Rows, 1)
	row := agg.Rows[0]
	assertDecimal(t, "165.0", row.Actual)
	assert.False(t, row.HasUnconvertible)
	assert.Empty(t, agg.UnconvertibleCurrencies)
}

func TestAggregate_PartialTotalsAreFlagged(t *testing.T) {
	book := reconcile.NewRateBook([]domain.ExchangeRate{rate("EUR", "USD", "2026-03-01", "1.1")})

	agg := reconcile.Aggregate(reconcile.AggregateInput{
		ReportingCurrency: "USD",
		Window:            marchWindow(),
		Actuals:           marchWindow(),
		Entries: []domain.LedgerEntry{
			entry("2026-03-04", "acc-1", "-100", "EUR", domain.Spend, "food"),
			entry("2026-03-05", "acc-2", "-5000", "JPY", domain.Spend, "food"),
		},
		Rates: book,
	})

	row := findRow(t, agg.Rows, "2026-03", domain.Spend, "food")
	assertDecimal(t, "110", row.Actual)
	assert.True(t, row.HasUnconvertible)
	assert.Equal(t, []string{"JPY"}, agg.UnconvertibleCurrencies)
}

func TestAggregate_FullOuterJoin(t *testing.T) {
	book := reconcile.NewRateBook(nil)

	agg := reconcile.Aggregate(reconcile.AggregateInput{
		ReportingCurrency: "USD",
		Window:            marchWindow(),
		Actuals:           marchWindow(),
		Entries: []domain.LedgerEntry{
			entry("2026-03-02", "acc-1", "2500", "USD", domain.Income, "salary"),
			entry("2026-03-03", "acc-1", "-300", "USD", domain.Transfer, ""),
		},
		PlanLines: []domain.BudgetPlanLine{
			planLine("2026-03", domain.Spend, "rent", domain.PlanBase, "100", "USD", t1),
			planLine("2026-03", domain.Spend, "rent", domain.PlanBase, "150", "USD", t2),
			planLine("2026-03", domain.Spend, "rent", domain.PlanModifier, "20", "USD", t3),
		},
		Comments: []domain.BudgetComment{
			{Month: month("2026-03"), Direction: domain.Spend, Category: "gifts", Comment: "birthday", InsertedAt: t1},
			{Month: month("2026-03"), Direction: domain.Spend, Category: "rent", Comment: "raised", InsertedAt: t1},
			{Month: month("2026-03"), Direction: domain.Spend, Category: "rent", Comment: "", InsertedAt: t2},
		},
		Rates: book,
	})

	require.Len(t, agg.Rows, 4)
	assert.Equal(t, domain.Income, agg.Rows[0].Direction)
	assert.Equal(t, domain.Transfer, agg.Rows[3].Direction)

	salary := findRow(t, agg.Rows, "2026-03", domain.Income, "salary")
	assertDecimal(t, "2500", salary.Actual)
	assert.True(t, salary.Planned.IsZero())

	rent := findRow(t, agg.Rows, "2026-03", domain.Spend, "rent")
	assertDecimal(t, "150", rent.PlannedBase)
	assertDecimal(t, "20", rent.PlannedModifier)
	assertDecimal(t, "170", rent.Planned)
	assert.True(t, rent.Actual.IsZero())
	assert.False(t, rent.HasComment, "blank latest comment suppresses the older one")

	gifts := findRow(t, agg.Rows, "2026-03", domain.Spend, "gifts")
	assert.True(t, gifts.HasComment)
	assert.Equal(t, "birthday", gifts.Comment)

	transfer := findRow(t, agg.Rows, "2026-03", domain.Transfer, "")
	assertDecimal(t, "-300", transfer.Actual)
}

func TestAggregate_ActualsRangeAndFilter(t *testing.T) {
	window := domain.MonthRange{From: month("2026-03"), To: month("2026-04")}

	agg := reconcile.Aggregate(reconcile.AggregateInput{
		ReportingCurrency: "USD",
		Window:            window,
		Actuals:           marchWindow(),
		Settings:          domain.WorkspaceSettings{CategoryFilter: []string{"food"}},
		Entries: []domain.LedgerEntry{
			entry("2026-03-02", "acc-1", "-10", "USD", domain.Spend, "food"),
			entry("2026-03-02", "acc-1", "-99", "USD", domain.Spend, "hobby"),
			entry("2026-03-09", "acc-1", "40", "USD", domain.Transfer, ""),
			entry("2026-04-02", "acc-1", "-20", "USD", domain.Spend, "food"),
			entry("2026-05-02", "acc-1", "-30", "USD", domain.Spend, "food"),
		},
		Rates: reconcile.NewRateBook(nil),
	})

	require.Len(t, agg.Rows, 2)
	assertDecimal(t, "10", findRow(t, agg.Rows, "2026-03", domain.Spend, "food").Actual)
	assertDecimal(t, "40", findRow(t, agg.Rows, "2026-03", domain.Transfer, "").Actual)
}

func TestAggregate_CategorySumEqualsSubtotal(t *testing.T) {
	book := reconcile.NewRateBook([]domain.ExchangeRate{
		rate("EUR", "USD", "2026-01-01", "1.1"),
		rate("EUR", "USD", "2026-03-15", "1.2"),
		rate("GBP", "USD", "2026-01-01", "1.3"),
	})
	entries := []domain.LedgerEntry{
		entry("2026-03-01", "a", "-12.34", "EUR", domain.Spend, "food"),
		entry("2026-03-16", "a", "-7.66", "EUR", domain.Spend, "food"),
		entry("2026-03-05", "b", "-40", "GBP", domain.Spend, "rent"),
		entry("2026-03-06", "b", "-1", "USD", domain.Spend, "misc"),
		entry("2026-03-07", "b", "1000", "GBP", domain.Income, "salary"),
		entry("2026-03-08", "c", "12", "EUR", domain.Income, "refund"),
	}

	agg := reconcile.Aggregate(reconcile.AggregateInput{
		ReportingCurrency: "USD",
		Window:            marchWindow(),
		Actuals:           marchWindow(),
		Entries:           entries,
		Rates:             book,
	})
	totals := reconcile.TotalsByMonth(agg.Rows)

	for _, direction := range []domain.Direction{domain.Income, domain.Spend} {
		sum := decimal.Zero
		for _, r := range agg.Rows {
			if r.Direction == direction {
				sum = sum.Add(r.Actual)
			}
		}
		assert.True(t, sum.Equal(totals[month("2026-03")][direction].Actual), "direction %s", direction)
	}
	assertDecimal(t, "75.766", totals[month("2026-03")][domain.Spend].Actual)
}

func TestCumulativeFromHistory(t *testing.T) {
	book := reconcile.NewRateBook([]domain.ExchangeRate{rate("EUR", "USD", "2025-01-01", "2")})

	before, failed := reconcile.CumulativeFromHistory([]domain.DailyMovement{
		{Day: day("2025-06-01"), CurrencyCode: "EUR", Kind: domain.Income, Amount: dec("100")},
		{Day: day("2025-06-02"), CurrencyCode: "USD", Kind: domain.Spend, Amount: dec("30")},
		{Day: day("2025-06-03"), CurrencyCode: "USD", Kind: domain.Transfer, Amount: dec("-5")},
		{Day: day("2025-06-04"), CurrencyCode: "NOK", Kind: domain.Spend, Amount: dec("10")},
	}, "USD", book)

	assertDecimal(t, "200", before.IncomeActual)
	assertDecimal(t, "30", before.SpendActual)
	assertDecimal(t, "-5", before.TransferActual)
	assertDecimal(t, "165", before.Net())
	assert.True(t, before.HasUnconvertible)
	assert.Equal(t, []string{"NOK"}, failed)
}

func TestNetMovementsByMonth(t *testing.T) {
	book := reconcile.NewRateBook([]domain.ExchangeRate{rate("EUR", "USD", "2026-01-01", "1.5")})
	entries := []domain.LedgerEntry{
		entry("2026-01-03", "acc-1", "1000", "USD", domain.Income, "salary"),
		entry("2026-01-04", "acc-1", "-100", "USD", domain.Spend, "rent"),
		entry("2026-01-05", "acc-2", "20", "EUR", domain.Transfer, ""),
		entry("2026-02-01", "acc-3", "-500", "JPY", domain.Spend, "food"),
		entry("2026-03-01", "acc-1", "-999", "USD", domain.Spend, "later"),
	}

	flow, failed := reconcile.NetMovementsByMonth(entries, domain.MonthRange{From: month("2026-01"), To: month("2026-02")}, "USD", book)

	assert.Equal(t, []string{"JPY"}, failed)
	require.Len(t, flow, 2)
	assertDecimal(t, "930", flow[month("2026-01")].Net)
	assert.False(t, flow[month("2026-01")].HasUnconvertible)
	assert.True(t, flow[month("2026-02")].HasUnconvertible)
	assert.True(t, flow[month("2026-02")].Net.IsZero())
}
