package reconcile

import (
	"sort"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregateInput is everything the aggregator needs for one month window.
type AggregateInput struct {
	ReportingCurrency string
	Window            domain.MonthRange
	Actuals           domain.MonthRange
	Settings          domain.WorkspaceSettings
	Entries           []domain.LedgerEntry
	PlanLines         []domain.BudgetPlanLine
	Comments          []domain.BudgetComment
	Rates             RateResolver
}

// Aggregation is the grid of a window plus the currencies that failed conversion.
type Aggregation struct {
	Rows                    []domain.GridRow
	UnconvertibleCurrencies []string
}

// included applies the optional category filter; transfers are never filtered.
func included(settings domain.WorkspaceSettings, direction domain.Direction, category string) bool {
	if direction == domain.Transfer {
		return true
	}
	return settings.AllowsCategory(category)
}

// Aggregate groups ledger entries by (month, direction, category), converts
// them to the reporting currency and joins them with the resolved plan and
// comments. Cells with plan-only, actual-only or comment-only data all surface.
func Aggregate(in AggregateInput) Aggregation {
	cells := make(map[domain.CellKey]*domain.GridRow)
	failed := make(currencySet)

	cellFor := func(key domain.CellKey) *domain.GridRow {
		row, ok := cells[key]
		if !ok {
			row = &domain.GridRow{Month: key.Month, Direction: key.Direction, Category: key.Category}
			cells[key] = row
		}
		return row
	}

	for _, e := range in.Entries {
		month := domain.MonthOf(e.Timestamp)
		if !in.Window.Contains(month) || !in.Actuals.Contains(month) {
			continue
		}
		if !included(in.Settings, e.Kind, e.CategoryName()) {
			continue
		}
		row := cellFor(domain.CellKey{Month: month, Direction: e.Kind, Category: e.CategoryName()})
		converted, ok := Convert(in.Rates, e.DirectedAmount(), e.CurrencyCode, in.ReportingCurrency, e.Timestamp)
		if !ok {
			row.HasUnconvertible = true
			failed.add(e.CurrencyCode)
			continue
		}
		row.Actual = row.Actual.Add(converted)
	}

	inWindow := make([]domain.BudgetPlanLine, 0, len(in.PlanLines))
	for _, l := range in.PlanLines {
		if in.Window.Contains(l.Month) && included(in.Settings, l.Direction, l.Category) {
			inWindow = append(inWindow, l)
		}
	}
	for key, plan := range ResolvePlan(inWindow) {
		row := cellFor(key)
		// Plans are valued at the rate of the plan month's last day.
		day := key.Month.LastDay()
		if plan.Base != nil {
			if v, ok := Convert(in.Rates, plan.Base.Value, plan.Base.CurrencyCode, in.ReportingCurrency, day); ok {
				row.PlannedBase = v
			} else {
				row.HasUnconvertible = true
				failed.add(plan.Base.CurrencyCode)
			}
		}
		if plan.Modifier != nil {
			if v, ok := Convert(in.Rates, plan.Modifier.Value, plan.Modifier.CurrencyCode, in.ReportingCurrency, day); ok {
				row.PlannedModifier = v
			} else {
				row.HasUnconvertible = true
				failed.add(plan.Modifier.CurrencyCode)
			}
		}
		row.Planned = row.PlannedBase.Add(row.PlannedModifier)
	}

	for key, c := range ResolveComments(in.Comments) {
		if !in.Window.Contains(key.Month) || !included(in.Settings, key.Direction, key.Category) {
			continue
		}
		// A blank latest version suppresses older comments.
		if c.IsBlank() {
			continue
		}
		row := cellFor(key)
		row.Comment, row.HasComment = c.Comment, true
	}

	rows := make([]domain.GridRow, 0, len(cells))
	for _, row := range cells {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key().Less(rows[j].Key()) })

	return Aggregation{Rows: rows, UnconvertibleCurrencies: failed.sorted()}
}

// DirectionTotals sums planned and actual values per month and direction.
type DirectionTotals struct {
	Planned          decimal.Decimal
	Actual           decimal.Decimal
	HasUnconvertible bool
}

// TotalsByMonth sums grid rows per month and direction.
func TotalsByMonth(rows []domain.GridRow) map[domain.Month]map[domain.Direction]DirectionTotals {
	out := make(map[domain.Month]map[domain.Direction]DirectionTotals)
	for _, r := range rows {
		if out[r.Month] == nil {
			out[r.Month] = make(map[domain.Direction]DirectionTotals)
		}
		t := out[r.Month][r.Direction]
		t.Planned = t.Planned.Add(r.Planned)
		t.Actual = t.Actual.Add(r.Actual)
		t.HasUnconvertible = t.HasUnconvertible || r.HasUnconvertible
		out[r.Month][r.Direction] = t
	}
	return out
}

// NetMovement is the converted cash flow of one month over every account,
// direction and category.
type NetMovement struct {
	Net              decimal.Decimal
	HasUnconvertible bool
}

// NetMovementsByMonth sums the cash flow of the entries dated in span, each
// converted at its own day's rate. The category filter does not apply, so the
// result is comparable with the observed balances.
func NetMovementsByMonth(entries []domain.LedgerEntry, span domain.MonthRange, reporting string, rates RateResolver) (map[domain.Month]NetMovement, []string) {
	out := make(map[domain.Month]NetMovement)
	failed := make(currencySet)
	for _, e := range entries {
		month := domain.MonthOf(e.Timestamp)
		if !span.Contains(month) {
			continue
		}
		m := out[month]
		if converted, ok := Convert(rates, e.CashFlow(), e.CurrencyCode, reporting, e.Timestamp); ok {
			m.Net = m.Net.Add(converted)
		} else {
			m.HasUnconvertible = true
			failed.add(e.CurrencyCode)
		}
		out[month] = m
	}
	return out, failed.sorted()
}

// CumulativeFromHistory converts pre-window daily movements, each at its own
// day's rate, into the cumulative seed of the running balance.
func CumulativeFromHistory(history []domain.DailyMovement, reporting string, rates RateResolver) (domain.CumulativeBefore, []string) {
	var out domain.CumulativeBefore
	failed := make(currencySet)
	for _, m := range history {
		converted, ok := Convert(rates, m.Amount, m.CurrencyCode, reporting, m.Day)
		if !ok {
			out.HasUnconvertible = true
			failed.add(m.CurrencyCode)
			continue
		}
		switch m.Kind {
		case domain.Income:
			out.IncomeActual = out.IncomeActual.Add(converted)
		case domain.Spend:
			out.SpendActual = out.SpendActual.Add(converted)
		case domain.Transfer:
			out.TransferActual = out.TransferActual.Add(converted)
		}
	}
	return out, failed.sorted()
}
