package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction classifies money movement. Ledger entry kinds and budget directions share it.
type Direction string

const (
	Income   Direction = "income"
	Spend    Direction = "spend"
	Transfer Direction = "transfer"
)

// Directions lists directions in display order.
var Directions = []Direction{Income, Spend, Transfer}

// IsValid reports whether d is a known direction.
func (d Direction) IsValid() bool {
	return d == Income || d == Spend || d == Transfer
}

// Rank gives the display position of a direction.
func (d Direction) Rank() int {
	switch d {
	case Income:
		return 0
	case Spend:
		return 1
	case Transfer:
		return 2
	default:
		return 3
	}
}

// LedgerEntry is an immutable fact of the ledger.
type LedgerEntry struct {
	EntryID      string          `json:"entryID"`
	EventID      string          `json:"eventID"` // groups transfer and split siblings
	Timestamp    time.Time       `json:"timestamp"`
	AccountID    string          `json:"accountID"`
	Amount       decimal.Decimal `json:"amount"` // signed, native currency
	CurrencyCode string          `json:"currencyCode"`
	Kind         Direction       `json:"kind"`
	Category     *string         `json:"category"` // nil for transfers
	Counterparty string          `json:"counterparty"`
	Note         string          `json:"note"`
	WorkspaceID  string          `json:"workspaceID"`
}

// CategoryName returns the category, or "" for uncategorized entries.
func (e LedgerEntry) CategoryName() string {
	if e.Category == nil {
		return ""
	}
	return *e.Category
}

// DirectedAmount is the amount as it contributes to its cell:
// absolute for income and spend, signed for transfers.
func (e LedgerEntry) DirectedAmount() decimal.Decimal {
	if e.Kind == Transfer {
		return e.Amount
	}
	return e.Amount.Abs()
}

// CashFlow is the entry's signed contribution to the net movement of a month:
// income adds, spend subtracts and transfers keep their sign.
func (e LedgerEntry) CashFlow() decimal.Decimal {
	switch e.Kind {
	case Spend:
		return e.Amount.Abs().Neg()
	case Transfer:
		return e.Amount
	default:
		return e.Amount.Abs()
	}
}

// DailyMovement is a per-day, per-currency, per-kind sum of directed amounts.
// It is the compact form of history used to seed cumulative totals.
type DailyMovement struct {
	Day          time.Time       `json:"day"`
	CurrencyCode string          `json:"currencyCode"`
	Kind         Direction       `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
}

// MonthlyMovement is the signed native net change of an account in one month.
type MonthlyMovement struct {
	AccountID    string          `json:"accountID"`
	CurrencyCode string          `json:"currencyCode"`
	Month        Month           `json:"month"`
	Net          decimal.Decimal `json:"net"`
}

// CurrencyCoverage records the earliest day a currency is used by a workspace.
type CurrencyCoverage struct {
	CurrencyCode string    `json:"currencyCode"`
	FirstUsed    time.Time `json:"firstUsed"`
}

// AccountActivity is the per-(account, currency) input of the balances summary.
type AccountActivity struct {
	AccountID         string          `json:"accountID"`
	CurrencyCode      string          `json:"currencyCode"`
	Balance           decimal.Decimal `json:"balance"`
	LastTransactionTs *time.Time      `json:"lastTransactionTs"`
	NonTransferCount  int             `json:"nonTransferCount"`
	// TrailingNonTransfer counts non-transfer entries in the trailing window
	// that ends on the day of the last one.
	TrailingNonTransfer int `json:"trailingNonTransfer"`
	// RecentNonTransfer holds the most recent distinct UTC days with
	// non-transfer activity, newest first.
	RecentNonTransfer []time.Time `json:"recentNonTransfer"`
}
