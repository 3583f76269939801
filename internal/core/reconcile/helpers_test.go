package reconcile_test

import (
	"testing"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func month(s string) domain.Month { return domain.MustParseMonth(s) }

func stringPtr(s string) *string { return &s }

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func assertDecimalPtr(t *testing.T, want string, got *decimal.Decimal) {
	t.Helper()
	if assert.NotNil(t, got, "want %s, got nil", want) {
		assertDecimal(t, want, *got)
	}
}

func rate(base, quote, date, value string) domain.ExchangeRate {
	return domain.ExchangeRate{BaseCurrency: base, QuoteCurrency: quote, RateDate: day(date), Rate: dec(value)}
}

func entry(ts, account, amount, currency string, kind domain.Direction, category string) domain.LedgerEntry {
	e := domain.LedgerEntry{
		Timestamp:    day(ts).Add(12 * time.Hour),
		AccountID:    account,
		Amount:       dec(amount),
		CurrencyCode: currency,
		Kind:         kind,
	}
	if kind != domain.Transfer {
		e.Category = stringPtr(category)
	}
	return e
}

func planLine(m string, direction domain.Direction, category string, kind domain.PlanKind, value, currency string, insertedAt time.Time) domain.BudgetPlanLine {
	return domain.BudgetPlanLine{
		Month:        month(m),
		Direction:    direction,
		Category:     category,
		Kind:         kind,
		CurrencyCode: currency,
		Value:        dec(value),
		InsertedAt:   insertedAt,
	}
}
