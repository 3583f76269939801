package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GridQuery selects the months of a budget grid.
type GridQuery struct {
	ReportingCurrency string // optional override of the workspace setting
	MonthFrom         Month
	MonthTo           Month
	// ActualFrom and ActualTo bound the months whose ledger actuals are counted.
	// Zero values default to MonthFrom and min(MonthTo, CurrentMonth).
	ActualFrom   Month
	ActualTo     Month
	CurrentMonth Month
}

// Window returns the display range of the query.
func (q GridQuery) Window() MonthRange { return MonthRange{From: q.MonthFrom, To: q.MonthTo} }

// Actuals returns the range whose actuals are counted, with defaults applied.
func (q GridQuery) Actuals() MonthRange {
	r := MonthRange{From: q.ActualFrom, To: q.ActualTo}
	if r.From.IsZero() {
		r.From = q.MonthFrom
	}
	if r.To.IsZero() {
		r.To = q.MonthTo
		if !q.CurrentMonth.IsZero() && q.CurrentMonth.Before(r.To) {
			r.To = q.CurrentMonth
		}
	}
	return r
}

// GridRow is one (month, direction, category) cell of the planned-vs-actual grid.
type GridRow struct {
	Month            Month           `json:"month"`
	Direction        Direction       `json:"direction"`
	Category         string          `json:"category"`
	PlannedBase      decimal.Decimal `json:"plannedBase"`
	PlannedModifier  decimal.Decimal `json:"plannedModifier"`
	Planned          decimal.Decimal `json:"planned"`
	Actual           decimal.Decimal `json:"actual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
	Comment          string          `json:"comment"`
	HasComment       bool            `json:"hasComment"`
}

// Key returns the cell address of the row.
func (r GridRow) Key() CellKey {
	return CellKey{Month: r.Month, Direction: r.Direction, Category: r.Category}
}

// ConversionWarning reports a currency that could not be converted.
type ConversionWarning struct {
	Currency string `json:"currency"`
	Reason   string `json:"reason"`
}

// CumulativeBefore sums all converted actuals before the display window.
type CumulativeBefore struct {
	IncomeActual     decimal.Decimal `json:"incomeActual"`
	SpendActual      decimal.Decimal `json:"spendActual"`
	TransferActual   decimal.Decimal `json:"transferActual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
}

// Net returns income - spend + transfer.
func (c CumulativeBefore) Net() decimal.Decimal {
	return c.IncomeActual.Sub(c.SpendActual).Add(c.TransferActual)
}

// Regime is the position of a month relative to the current month.
type Regime string

const (
	RegimeClosed    Regime = "closed"
	RegimeOpen      Regime = "open"
	RegimeProjected Regime = "projected"
)

// MonthSummary is the cumulative-balance state of one month. NetActual is
// the unfiltered cash flow of the month.
type MonthSummary struct {
	Month            Month            `json:"month"`
	Regime           Regime           `json:"regime"`
	NetActual        decimal.Decimal  `json:"netActual"`
	NetPlanned       decimal.Decimal  `json:"netPlanned"`
	ObservedBalance  *decimal.Decimal `json:"observedBalance"`
	CumulativeActual *decimal.Decimal `json:"cumulativeActual"`
	CumulativePlan   *decimal.Decimal `json:"cumulativePlan"`
	FxAdjustment     *decimal.Decimal `json:"fxAdjustment"`
	Unconvertible    bool             `json:"unconvertible"`
	Tainted          bool             `json:"tainted"`
}

// BudgetGridResult is the full planned-vs-actual grid of a month window.
type BudgetGridResult struct {
	ReportingCurrency  string                               `json:"reportingCurrency"`
	Rows               []GridRow                            `json:"rows"`
	ConversionWarnings []ConversionWarning                  `json:"conversionWarnings"`
	CumulativeBefore   CumulativeBefore                     `json:"cumulativeBefore"`
	MonthEndBalances   map[Month]decimal.Decimal            `json:"monthEndBalances"`
	MonthEndByTier     map[string]map[Month]decimal.Decimal `json:"monthEndByTier,omitempty"`
	Months             []MonthSummary                       `json:"months"`
}

// FxBreakdownRow is the contribution of one currency to a month's balance change.
type FxBreakdownRow struct {
	Currency        string           `json:"currency"`
	OpenNative      decimal.Decimal  `json:"openNative"`
	OpenRate        *decimal.Decimal `json:"openRate"`
	OpenReporting   *decimal.Decimal `json:"openReporting"`
	DeltaNative     decimal.Decimal  `json:"deltaNative"`
	CloseNative     decimal.Decimal  `json:"closeNative"`
	CloseRate       *decimal.Decimal `json:"closeRate"`
	CloseReporting  *decimal.Decimal `json:"closeReporting"`
	ChangeReporting *decimal.Decimal `json:"changeReporting"`
}

// FxBreakdownResult decomposes a month's balance change by currency.
type FxBreakdownResult struct {
	Month             Month            `json:"month"`
	ReportingCurrency string           `json:"reportingCurrency"`
	Rows              []FxBreakdownRow `json:"rows"`
	TotalChange       decimal.Decimal  `json:"totalChange"`
	FxAdjustment      *decimal.Decimal `json:"fxAdjustment"`
	HasUnconvertible  bool             `json:"hasUnconvertible"`
}

// AccountStatus is derived from an account's balance and activity.
type AccountStatus string

const (
	AccountActive  AccountStatus = "active"
	AccountDormant AccountStatus = "dormant"
)

// AccountBalance is one row of the balances summary.
type AccountBalance struct {
	AccountID         string           `json:"accountId"`
	Currency          string           `json:"currency"`
	Status            AccountStatus    `json:"status"`
	Balance           decimal.Decimal  `json:"balance"`
	BalanceReporting  *decimal.Decimal `json:"balanceReporting"`
	LastTransactionTs *time.Time       `json:"lastTransactionTs"`
	Overdue           bool             `json:"overdue"`
}

// CurrencyTotal sums account balances of one currency.
type CurrencyTotal struct {
	Currency         string           `json:"currency"`
	Balance          decimal.Decimal  `json:"balance"`
	BalancePositive  decimal.Decimal  `json:"balancePositive"`
	BalanceNegative  decimal.Decimal  `json:"balanceNegative"`
	BalanceReporting *decimal.Decimal `json:"balanceReporting"`
	HasUnconvertible bool             `json:"hasUnconvertible"`
}

// BalancesSummaryResult lists account balances and per-currency totals.
type BalancesSummaryResult struct {
	ReportingCurrency  string              `json:"reportingCurrency"`
	AsOf               time.Time           `json:"asOf"`
	Accounts           []AccountBalance    `json:"accounts"`
	Totals             []CurrencyTotal     `json:"totals"`
	ConversionWarnings []ConversionWarning `json:"conversionWarnings"`
}

// DirectionTotal is a year subtotal of one direction.
type DirectionTotal struct {
	Direction        Direction       `json:"direction"`
	Planned          decimal.Decimal `json:"planned"`
	Actual           decimal.Decimal `json:"actual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
}

// CategoryTotal is a year total of one category.
type CategoryTotal struct {
	Direction        Direction       `json:"direction"`
	Category         string          `json:"category"`
	Planned          decimal.Decimal `json:"planned"`
	Actual           decimal.Decimal `json:"actual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
}

// TaintSummary describes where missing rates compromised a year.
type TaintSummary struct {
	Tainted           bool     `json:"tainted"`
	FirstTaintedMonth *Month   `json:"firstTaintedMonth"`
	Currencies        []string `json:"currencies"`
}

// YearTotals are the full-year summary cells.
type YearTotals struct {
	Year                     int              `json:"year"`
	ReportingCurrency        string           `json:"reportingCurrency"`
	Directions               []DirectionTotal `json:"directions"`
	Categories               []CategoryTotal  `json:"categories"`
	RemainderActual          decimal.Decimal  `json:"remainderActual"`
	RemainderPlanned         decimal.Decimal  `json:"remainderPlanned"`
	FxAdjustmentTotal        decimal.Decimal  `json:"fxAdjustmentTotal"`
	DecemberCumulativeActual *decimal.Decimal `json:"decemberCumulativeActual"`
	DecemberCumulativePlan   *decimal.Decimal `json:"decemberCumulativePlan"`
	Taint                    TaintSummary     `json:"taint"`
}
