package reconcile

import (
	"sort"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeYearTotals runs the reconciliation over January..December of year,
// independent of any display window, and folds it into summary cells.
// in.Query month bounds are replaced by the full year.
func ComputeYearTotals(year int, in ReconcileInput) domain.YearTotals {
	full := domain.YearRange(year)
	in.Query.MonthFrom, in.Query.MonthTo = full.From, full.To
	in.Query.ActualFrom, in.Query.ActualTo = domain.Month{}, domain.Month{}
	rec := Reconcile(in)
	return FoldYear(year, rec)
}

// FoldYear turns a full-year reconciliation into year totals.
func FoldYear(year int, rec Reconciliation) domain.YearTotals {
	out := domain.YearTotals{
		Year:              year,
		ReportingCurrency: rec.Grid.ReportingCurrency,
		Taint:             domain.TaintSummary{Currencies: rec.UnconvertibleCurrencies},
	}
	if out.Taint.Currencies == nil {
		out.Taint.Currencies = []string{}
	}

	byDirection := make(map[domain.Direction]*domain.DirectionTotal, len(domain.Directions))
	for _, d := range domain.Directions {
		byDirection[d] = &domain.DirectionTotal{Direction: d}
	}
	type catKey struct {
		direction domain.Direction
		category  string
	}
	byCategory := make(map[catKey]*domain.CategoryTotal)

	for _, r := range rec.Grid.Rows {
		dt, ok := byDirection[r.Direction]
		if !ok {
			continue
		}
		dt.Planned = dt.Planned.Add(r.Planned)
		dt.Actual = dt.Actual.Add(r.Actual)
		dt.HasUnconvertible = dt.HasUnconvertible || r.HasUnconvertible

		key := catKey{r.Direction, r.Category}
		ct, ok := byCategory[key]
		if !ok {
			ct = &domain.CategoryTotal{Direction: r.Direction, Category: r.Category}
			byCategory[key] = ct
		}
		ct.Planned = ct.Planned.Add(r.Planned)
		ct.Actual = ct.Actual.Add(r.Actual)
		ct.HasUnconvertible = ct.HasUnconvertible || r.HasUnconvertible
	}

	for _, d := range domain.Directions {
		out.Directions = append(out.Directions, *byDirection[d])
	}
	for _, ct := range byCategory {
		out.Categories = append(out.Categories, *ct)
	}
	sort.Slice(out.Categories, func(i, j int) bool {
		a, b := out.Categories[i], out.Categories[j]
		if a.Direction != b.Direction {
			return a.Direction.Rank() < b.Direction.Rank()
		}
		if c := a.Actual.Cmp(b.Actual); c != 0 {
			return c > 0
		}
		return a.Category < b.Category
	})

	income, spend, transfer := byDirection[domain.Income], byDirection[domain.Spend], byDirection[domain.Transfer]
	out.RemainderActual = income.Actual.Sub(spend.Actual).Add(transfer.Actual)
	// Transfers have no plan, so the planned remainder carries actual transfers.
	out.RemainderPlanned = income.Planned.Sub(spend.Planned).Add(transfer.Actual)

	out.FxAdjustmentTotal = decimal.Zero
	for _, m := range rec.Grid.Months {
		if m.FxAdjustment != nil {
			out.FxAdjustmentTotal = out.FxAdjustmentTotal.Add(*m.FxAdjustment)
		}
		if m.Tainted && out.Taint.FirstTaintedMonth == nil {
			first := m.Month
			out.Taint.FirstTaintedMonth = &first
		}
		if m.Month.Month == 12 {
			out.DecemberCumulativeActual = m.CumulativeActual
			out.DecemberCumulativePlan = m.CumulativePlan
		}
	}
	out.Taint.Tainted = out.Taint.FirstTaintedMonth != nil
	return out
}
