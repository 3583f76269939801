package reconcile

import (
	"sort"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// negligibleNative is the native balance below which a currency is left out
// of the breakdown when it is negligible at both endpoints.
var negligibleNative = decimal.RequireFromString("0.005")

// FxBreakdownInput selects the month to decompose.
type FxBreakdownInput struct {
	ReportingCurrency string
	Month             domain.Month
	// Projection must cover Month.Prev() and Month.
	Projection Projection
	// NetActual is the month's converted cash-flow movement.
	NetActual decimal.Decimal
	Rates     RateResolver
}

// FxBreakdown explains a month's change of the marked-to-market balance per
// currency. The per-currency changes sum to monthEnd(M) - monthEnd(M-1).
func FxBreakdown(in FxBreakdownInput) domain.FxBreakdownResult {
	prev := in.Month.Prev()
	openDay, closeDay := prev.LastDay(), in.Month.LastDay()

	res := domain.FxBreakdownResult{Month: in.Month, ReportingCurrency: in.ReportingCurrency}
	for _, cur := range in.Projection.Currencies() {
		row := domain.FxBreakdownRow{
			Currency:    cur,
			OpenNative:  in.Projection.NativeAt(cur, prev),
			CloseNative: in.Projection.NativeAt(cur, in.Month),
		}
		if row.OpenNative.Abs().LessThan(negligibleNative) && row.CloseNative.Abs().LessThan(negligibleNative) {
			continue
		}
		row.DeltaNative = row.CloseNative.Sub(row.OpenNative)

		if rate, ok := in.Rates.Resolve(cur, in.ReportingCurrency, openDay); ok {
			row.OpenRate, row.OpenReporting = ptr(rate), ptr(row.OpenNative.Mul(rate))
		}
		if rate, ok := in.Rates.Resolve(cur, in.ReportingCurrency, closeDay); ok {
			row.CloseRate, row.CloseReporting = ptr(rate), ptr(row.CloseNative.Mul(rate))
		}
		if !row.OpenNative.IsZero() && row.OpenReporting == nil || !row.CloseNative.IsZero() && row.CloseReporting == nil {
			res.HasUnconvertible = true
		} else {
			open, closing := decimal.Zero, decimal.Zero
			if row.OpenReporting != nil {
				open = *row.OpenReporting
			}
			if row.CloseReporting != nil {
				closing = *row.CloseReporting
			}
			row.ChangeReporting = ptr(closing.Sub(open))
			res.TotalChange = res.TotalChange.Add(*row.ChangeReporting)
		}
		res.Rows = append(res.Rows, row)
	}

	sort.SliceStable(res.Rows, func(i, j int) bool {
		a, b := res.Rows[i].ChangeReporting, res.Rows[j].ChangeReporting
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Abs().GreaterThan(b.Abs())
		}
	})

	closeObs, closeOK := in.Projection.Observed(in.Month)
	openObs, openOK := in.Projection.Observed(prev)
	if closeOK && openOK {
		res.FxAdjustment = ptr(closeObs.Sub(openObs).Sub(in.NetActual))
	}
	return res
}
