package utils

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// defaultFraction is used for codes go-money does not know.
const defaultFraction = 2

// IsKnownCurrency reports whether code is an ISO 4217 currency known to go-money.
func IsKnownCurrency(code string) bool {
	return len(code) == 3 && money.GetCurrency(strings.ToUpper(code)) != nil
}

// CurrencyFraction returns the number of minor-unit digits of a currency.
// Example: USD returns 2, JPY returns 0, KWD returns 3.
func CurrencyFraction(code string) int {
	if cur := money.GetCurrency(strings.ToUpper(code)); cur != nil {
		return cur.Fraction
	}
	return defaultFraction
}

// Rounder rounds amounts to the minor unit of one currency.
type Rounder struct {
	places int32
}

// NewRounder returns a Rounder for the given currency code.
func NewRounder(code string) Rounder {
	return Rounder{places: int32(CurrencyFraction(code))}
}

// Round rounds half away from zero.
func (r Rounder) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(r.places)
}

// RoundPtr rounds a nullable amount, keeping nil as nil.
func (r Rounder) RoundPtr(amount *decimal.Decimal) *decimal.Decimal {
	if amount == nil {
		return nil
	}
	v := amount.Round(r.places)
	return &v
}

// FormatWithCurrencyPrecision formats an amount with the correct precision for a given currency.
// Example: amount 12.3456 with USD returns "12.35", with JPY returns "12".
func FormatWithCurrencyPrecision(amount decimal.Decimal, code string) string {
	return amount.StringFixed(int32(CurrencyFraction(code)))
}
