package dto

import (
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/SscSPs/budget_reconciler/internal/utils"
	"github.com/shopspring/decimal"
)

const timestampLayout = time.RFC3339

// Amounts are computed at full precision and only rounded here, to the minor
// unit of the currency they are expressed in. Rates are never rounded.

// GridRowResponse represents one cell of the budget grid.
type GridRowResponse struct {
	Month            string          `json:"month"`
	Direction        string          `json:"direction"`
	Category         string          `json:"category"`
	PlannedBase      decimal.Decimal `json:"plannedBase"`
	PlannedModifier  decimal.Decimal `json:"plannedModifier"`
	Planned          decimal.Decimal `json:"planned"`
	Actual           decimal.Decimal `json:"actual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
	Comment          string          `json:"comment"`
	HasComment       bool            `json:"hasComment"`
}

// CumulativeBeforeResponse sums converted actuals before the window.
type CumulativeBeforeResponse struct {
	IncomeActual     decimal.Decimal `json:"incomeActual"`
	SpendActual      decimal.Decimal `json:"spendActual"`
	TransferActual   decimal.Decimal `json:"transferActual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
}

// MonthSummaryResponse is the cumulative state of one month.
type MonthSummaryResponse struct {
	Month            string           `json:"month"`
	Regime           string           `json:"regime"`
	NetActual        decimal.Decimal  `json:"netActual"`
	NetPlanned       decimal.Decimal  `json:"netPlanned"`
	ObservedBalance  *decimal.Decimal `json:"observedBalance"`
	CumulativeActual *decimal.Decimal `json:"cumulativeActual"`
	CumulativePlan   *decimal.Decimal `json:"cumulativePlan"`
	FxAdjustment     *decimal.Decimal `json:"fxAdjustment"`
	Unconvertible    bool             `json:"unconvertible"`
	Tainted          bool             `json:"tainted"`
}

// BudgetGridResponse represents the planned-vs-actual grid report.
type BudgetGridResponse struct {
	ReportingCurrency  string                                `json:"reportingCurrency"`
	Rows               []GridRowResponse                     `json:"rows"`
	ConversionWarnings []domain.ConversionWarning            `json:"conversionWarnings"`
	CumulativeBefore   CumulativeBeforeResponse              `json:"cumulativeBefore"`
	MonthEndBalances   map[string]decimal.Decimal            `json:"monthEndBalances"`
	MonthEndByTier     map[string]map[string]decimal.Decimal `json:"monthEndByTier,omitempty"`
	Months             []MonthSummaryResponse                `json:"months"`
}

func warningsOrEmpty(w []domain.ConversionWarning) []domain.ConversionWarning {
	if w == nil {
		return []domain.ConversionWarning{}
	}
	return w
}

func roundSeries(r utils.Rounder, series map[domain.Month]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(series))
	for m, v := range series {
		out[m.String()] = r.Round(v)
	}
	return out
}

// ToBudgetGridResponse converts the grid result to its response DTO.
func ToBudgetGridResponse(res *domain.BudgetGridResult) BudgetGridResponse {
	r := utils.NewRounder(res.ReportingCurrency)

	resp := BudgetGridResponse{
		ReportingCurrency:  res.ReportingCurrency,
		Rows:               make([]GridRowResponse, len(res.Rows)),
		ConversionWarnings: warningsOrEmpty(res.ConversionWarnings),
		CumulativeBefore: CumulativeBeforeResponse{
			IncomeActual:     r.Round(res.CumulativeBefore.IncomeActual),
			SpendActual:      r.Round(res.CumulativeBefore.SpendActual),
			TransferActual:   r.Round(res.CumulativeBefore.TransferActual),
			HasUnconvertible: res.CumulativeBefore.HasUnconvertible,
		},
		MonthEndBalances: roundSeries(r, res.MonthEndBalances),
		Months:           make([]MonthSummaryResponse, len(res.Months)),
	}

	for i, row := range res.Rows {
		resp.Rows[i] = GridRowResponse{
			Month:            row.Month.String(),
			Direction:        string(row.Direction),
			Category:         row.Category,
			PlannedBase:      r.Round(row.PlannedBase),
			PlannedModifier:  r.Round(row.PlannedModifier),
			Planned:          r.Round(row.Planned),
			Actual:           r.Round(row.Actual),
			HasUnconvertible: row.HasUnconvertible,
			Comment:          row.Comment,
			HasComment:       row.HasComment,
		}
	}

	if res.MonthEndByTier != nil {
		resp.MonthEndByTier = make(map[string]map[string]decimal.Decimal, len(res.MonthEndByTier))
		for tier, series := range res.MonthEndByTier {
			resp.MonthEndByTier[tier] = roundSeries(r, series)
		}
	}

	for i, m := range res.Months {
		resp.Months[i] = MonthSummaryResponse{
			Month:            m.Month.String(),
			Regime:           string(m.Regime),
			NetActual:        r.Round(m.NetActual),
			NetPlanned:       r.Round(m.NetPlanned),
			ObservedBalance:  r.RoundPtr(m.ObservedBalance),
			CumulativeActual: r.RoundPtr(m.CumulativeActual),
			CumulativePlan:   r.RoundPtr(m.CumulativePlan),
			FxAdjustment:     r.RoundPtr(m.FxAdjustment),
			Unconvertible:    m.Unconvertible,
			Tainted:          m.Tainted,
		}
	}
	return resp
}

// FxBreakdownRowResponse is one currency row of the FX breakdown.
type FxBreakdownRowResponse struct {
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

// FxBreakdownResponse represents the FX breakdown report.
type FxBreakdownResponse struct {
	Month             string                   `json:"month"`
	ReportingCurrency string                   `json:"reportingCurrency"`
	Rows              []FxBreakdownRowResponse `json:"rows"`
	TotalChange       decimal.Decimal          `json:"totalChange"`
	FxAdjustment      *decimal.Decimal         `json:"fxAdjustment"`
	HasUnconvertible  bool                     `json:"hasUnconvertible"`
}

// ToFxBreakdownResponse converts the breakdown to its response DTO.
func ToFxBreakdownResponse(res *domain.FxBreakdownResult) FxBreakdownResponse {
	r := utils.NewRounder(res.ReportingCurrency)
	resp := FxBreakdownResponse{
		Month:             res.Month.String(),
		ReportingCurrency: res.ReportingCurrency,
		Rows:              make([]FxBreakdownRowResponse, len(res.Rows)),
		TotalChange:       r.Round(res.TotalChange),
		FxAdjustment:      r.RoundPtr(res.FxAdjustment),
		HasUnconvertible:  res.HasUnconvertible,
	}
	for i, row := range res.Rows {
		native := utils.NewRounder(row.Currency)
		resp.Rows[i] = FxBreakdownRowResponse{
			Currency:        row.Currency,
			OpenNative:      native.Round(row.OpenNative),
			OpenRate:        row.OpenRate,
			OpenReporting:   r.RoundPtr(row.OpenReporting),
			DeltaNative:     native.Round(row.DeltaNative),
			CloseNative:     native.Round(row.CloseNative),
			CloseRate:       row.CloseRate,
			CloseReporting:  r.RoundPtr(row.CloseReporting),
			ChangeReporting: r.RoundPtr(row.ChangeReporting),
		}
	}
	return resp
}

// AccountBalanceResponse is one account row of the balances summary.
type AccountBalanceResponse struct {
	AccountID         string           `json:"accountId"`
	Currency          string           `json:"currency"`
	Status            string           `json:"status"`
	Balance           decimal.Decimal  `json:"balance"`
	BalanceReporting  *decimal.Decimal `json:"balanceReporting"`
	LastTransactionTs *string          `json:"lastTransactionTs"`
	Overdue           bool             `json:"overdue"`
}

// CurrencyTotalResponse sums balances of one currency.
type CurrencyTotalResponse struct {
	Currency         string           `json:"currency"`
	Balance          decimal.Decimal  `json:"balance"`
	BalancePositive  decimal.Decimal  `json:"balancePositive"`
	BalanceNegative  decimal.Decimal  `json:"balanceNegative"`
	BalanceReporting *decimal.Decimal `json:"balanceReporting"`
	HasUnconvertible bool             `json:"hasUnconvertible"`
}

// BalancesSummaryResponse represents the balances summary report.
type BalancesSummaryResponse struct {
	ReportingCurrency  string                     `json:"reportingCurrency"`
	AsOf               string                     `json:"asOf"`
	Accounts           []AccountBalanceResponse   `json:"accounts"`
	Totals             []CurrencyTotalResponse    `json:"totals"`
	ConversionWarnings []domain.ConversionWarning `json:"conversionWarnings"`
}

// ToBalancesSummaryResponse converts the summary to its response DTO.
func ToBalancesSummaryResponse(res *domain.BalancesSummaryResult) BalancesSummaryResponse {
	r := utils.NewRounder(res.ReportingCurrency)
	resp := BalancesSummaryResponse{
		ReportingCurrency:  res.ReportingCurrency,
		AsOf:               res.AsOf.UTC().Format(timestampLayout),
		Accounts:           make([]AccountBalanceResponse, len(res.Accounts)),
		Totals:             make([]CurrencyTotalResponse, len(res.Totals)),
		ConversionWarnings: warningsOrEmpty(res.ConversionWarnings),
	}
	for i, a := range res.Accounts {
		native := utils.NewRounder(a.Currency)
		row := AccountBalanceResponse{
			AccountID:        a.AccountID,
			Currency:         a.Currency,
			Status:           string(a.Status),
			Balance:          native.Round(a.Balance),
			BalanceReporting: r.RoundPtr(a.BalanceReporting),
			Overdue:          a.Overdue,
		}
		if a.LastTransactionTs != nil {
			ts := a.LastTransactionTs.UTC().Format(timestampLayout)
			row.LastTransactionTs = &ts
		}
		resp.Accounts[i] = row
	}
	for i, t := range res.Totals {
		native := utils.NewRounder(t.Currency)
		resp.Totals[i] = CurrencyTotalResponse{
			Currency:         t.Currency,
			Balance:          native.Round(t.Balance),
			BalancePositive:  native.Round(t.BalancePositive),
			BalanceNegative:  native.Round(t.BalanceNegative),
			BalanceReporting: r.RoundPtr(t.BalanceReporting),
			HasUnconvertible: t.HasUnconvertible,
		}
	}
	return resp
}

// DirectionTotalResponse is a year subtotal of one direction.
type DirectionTotalResponse struct {
	Direction        string          `json:"direction"`
	Planned          decimal.Decimal `json:"planned"`
	Actual           decimal.Decimal `json:"actual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
}

// CategoryTotalResponse is a year total of one category.
type CategoryTotalResponse struct {
	Direction        string          `json:"direction"`
	Category         string          `json:"category"`
	Planned          decimal.Decimal `json:"planned"`
	Actual           decimal.Decimal `json:"actual"`
	HasUnconvertible bool            `json:"hasUnconvertible"`
}

// TaintResponse describes where missing rates compromised a year.
type TaintResponse struct {
	Tainted           bool     `json:"tainted"`
	FirstTaintedMonth *string  `json:"firstTaintedMonth"`
	Currencies        []string `json:"currencies"`
}

// YearTotalsResponse represents the full-year summary cells.
type YearTotalsResponse struct {
	Year                     int                      `json:"year"`
	ReportingCurrency        string                   `json:"reportingCurrency"`
	Directions               []DirectionTotalResponse `json:"directions"`
	Categories               []CategoryTotalResponse  `json:"categories"`
	RemainderActual          decimal.Decimal          `json:"remainderActual"`
	RemainderPlanned         decimal.Decimal          `json:"remainderPlanned"`
	FxAdjustmentTotal        decimal.Decimal          `json:"fxAdjustmentTotal"`
	DecemberCumulativeActual *decimal.Decimal         `json:"decemberCumulativeActual"`
	DecemberCumulativePlan   *decimal.Decimal         `json:"decemberCumulativePlan"`
	Taint                    TaintResponse            `json:"taint"`
}

// ToYearTotalsResponse converts year totals to the response DTO.
func ToYearTotalsResponse(res *domain.YearTotals) YearTotalsResponse {
	r := utils.NewRounder(res.ReportingCurrency)
	resp := YearTotalsResponse{
		Year:                     res.Year,
		ReportingCurrency:        res.ReportingCurrency,
		Directions:               make([]DirectionTotalResponse, len(res.Directions)),
		Categories:               make([]CategoryTotalResponse, len(res.Categories)),
		RemainderActual:          r.Round(res.RemainderActual),
		RemainderPlanned:         r.Round(res.RemainderPlanned),
		FxAdjustmentTotal:        r.Round(res.FxAdjustmentTotal),
		DecemberCumulativeActual: r.RoundPtr(res.DecemberCumulativeActual),
		DecemberCumulativePlan:   r.RoundPtr(res.DecemberCumulativePlan),
		Taint: TaintResponse{
			Tainted:    res.Taint.Tainted,
			Currencies: res.Taint.Currencies,
		},
	}
	if resp.Taint.Currencies == nil {
		resp.Taint.Currencies = []string{}
	}
	if res.Taint.FirstTaintedMonth != nil {
		m := res.Taint.FirstTaintedMonth.String()
		resp.Taint.FirstTaintedMonth = &m
	}
	for i, d := range res.Directions {
		resp.Directions[i] = DirectionTotalResponse{
			Direction:        string(d.Direction),
			Planned:          r.Round(d.Planned),
			Actual:           r.Round(d.Actual),
			HasUnconvertible: d.HasUnconvertible,
		}
	}
	for i, c := range res.Categories {
		resp.Categories[i] = CategoryTotalResponse{
			Direction:        string(c.Direction),
			Category:         c.Category,
			Planned:          r.Round(c.Planned),
			Actual:           r.Round(c.Actual),
			HasUnconvertible: c.HasUnconvertible,
		}
	}
	return resp
}
