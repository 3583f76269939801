package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
)

// DateLayout is the wire format of calendar days.
const DateLayout = "2006-01-02"

// BudgetGridQuery holds the query parameters of the budget grid report.
type BudgetGridQuery struct {
	MonthFrom         string `form:"monthFrom" binding:"required,yearmonth"`
	MonthTo           string `form:"monthTo" binding:"required,yearmonth"`
	ActualFrom        string `form:"actualFrom" binding:"omitempty,yearmonth"`
	ActualTo          string `form:"actualTo" binding:"omitempty,yearmonth"`
	CurrentMonth      string `form:"currentMonth" binding:"omitempty,yearmonth"`
	ReportingCurrency string `form:"reportingCurrency" binding:"omitempty,currency"`
}

// ToDomain parses and range-checks the query. An empty CurrentMonth is the month of now.
func (q BudgetGridQuery) ToDomain(now time.Time) (domain.GridQuery, error) {
	var out domain.GridQuery
	var err error

	if out.MonthFrom, err = parseRequiredMonth("monthFrom", q.MonthFrom); err != nil {
		return out, err
	}
	if out.MonthTo, err = parseRequiredMonth("monthTo", q.MonthTo); err != nil {
		return out, err
	}
	if out.MonthTo.Before(out.MonthFrom) {
		return out, apperrors.NewValidationError("monthFrom must not be after monthTo")
	}
	if out.ActualFrom, err = parseOptionalMonth("actualFrom", q.ActualFrom); err != nil {
		return out, err
	}
	if out.ActualTo, err = parseOptionalMonth("actualTo", q.ActualTo); err != nil {
		return out, err
	}
	if !out.ActualFrom.IsZero() && !out.ActualTo.IsZero() && out.ActualTo.Before(out.ActualFrom) {
		return out, apperrors.NewValidationError("actualFrom must not be after actualTo")
	}
	if out.CurrentMonth, err = parseCurrentMonth(q.CurrentMonth, now); err != nil {
		return out, err
	}
	out.ReportingCurrency = strings.ToUpper(q.ReportingCurrency)
	return out, nil
}

// FxBreakdownQuery holds the query parameters of the FX breakdown report.
type FxBreakdownQuery struct {
	Month             string `form:"month" binding:"required,yearmonth"`
	ReportingCurrency string `form:"reportingCurrency" binding:"omitempty,currency"`
}

// ParseMonth returns the requested month.
func (q FxBreakdownQuery) ParseMonth() (domain.Month, error) {
	return parseRequiredMonth("month", q.Month)
}

// BalancesQuery holds the query parameters of the balances summary.
type BalancesQuery struct {
	AsOf              string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
	ReportingCurrency string `form:"reportingCurrency" binding:"omitempty,currency"`
}

// ParseAsOf returns the end of the requested day, or now when no day is given.
func (q BalancesQuery) ParseAsOf(now time.Time) (time.Time, error) {
	if q.AsOf == "" {
		return now.UTC(), nil
	}
	day, err := time.Parse(DateLayout, q.AsOf)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("invalid asOf %q want format YYYY-MM-DD", q.AsOf))
	}
	return day.Add(24*time.Hour - time.Nanosecond), nil
}

// YearTotalsQuery holds the query parameters of the year totals report.
type YearTotalsQuery struct {
	Year              int    `form:"year" binding:"required,min=1900,max=9999"`
	CurrentMonth      string `form:"currentMonth" binding:"omitempty,yearmonth"`
	ReportingCurrency string `form:"reportingCurrency" binding:"omitempty,currency"`
}

// ParseCurrentMonth returns the requested current month, defaulting to the month of now.
func (q YearTotalsQuery) ParseCurrentMonth(now time.Time) (domain.Month, error) {
	if q.Year < 1900 || q.Year > 9999 {
		return domain.Month{}, apperrors.NewValidationError(fmt.Sprintf("invalid year %d", q.Year))
	}
	return parseCurrentMonth(q.CurrentMonth, now)
}

// ResolveRateQuery holds the query parameters of the single rate lookup.
type ResolveRateQuery struct {
	Source    string `form:"source" binding:"required,currency"`
	Reporting string `form:"reporting" binding:"required,currency"`
	AsOf      string `form:"asOf" binding:"omitempty,datetime=2006-01-02"`
}

// ParseAsOf returns the requested day, or today.
func (q ResolveRateQuery) ParseAsOf(now time.Time) (time.Time, error) {
	if q.AsOf == "" {
		return domain.Day(now), nil
	}
	day, err := time.Parse(DateLayout, q.AsOf)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError(fmt.Sprintf("invalid asOf %q want format YYYY-MM-DD", q.AsOf))
	}
	return day, nil
}

func parseRequiredMonth(field, value string) (domain.Month, error) {
	if value == "" {
		return domain.Month{}, apperrors.NewValidationError(field + " is required")
	}
	m, err := domain.ParseMonth(value)
	if err != nil {
		return domain.Month{}, apperrors.NewValidationError(fmt.Sprintf("invalid %s %q want format YYYY-MM", field, value))
	}
	return m, nil
}

func parseOptionalMonth(field, value string) (domain.Month, error) {
	if value == "" {
		return domain.Month{}, nil
	}
	return parseRequiredMonth(field, value)
}

func parseCurrentMonth(value string, now time.Time) (domain.Month, error) {
	if value == "" {
		return domain.MonthOf(now), nil
	}
	return parseRequiredMonth("currentMonth", value)
}
