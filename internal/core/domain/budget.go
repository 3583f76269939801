package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PlanKind distinguishes the two additive components of a plan.
type PlanKind string

const (
	PlanBase     PlanKind = "base"
	PlanModifier PlanKind = "modifier"
)

// IsValid reports whether k is a known plan kind.
func (k PlanKind) IsValid() bool { return k == PlanBase || k == PlanModifier }

// CellKey addresses one cell of the budget grid.
type CellKey struct {
	Month     Month     `json:"month"`
	Direction Direction `json:"direction"`
	Category  string    `json:"category"`
}

// Less orders cells by month, direction rank and category.
func (k CellKey) Less(o CellKey) bool {
	if c := k.Month.Compare(o.Month); c != 0 {
		return c < 0
	}
	if k.Direction != o.Direction {
		return k.Direction.Rank() < o.Direction.Rank()
	}
	return k.Category < o.Category
}

// BudgetPlanLine is one append-only version of a planned amount.
type BudgetPlanLine struct {
	WorkspaceID  string          `json:"workspaceID"`
	Month        Month           `json:"month"`
	Direction    Direction       `json:"direction"`
	Category     string          `json:"category"`
	Kind         PlanKind        `json:"kind"`
	CurrencyCode string          `json:"currencyCode"`
	Value        decimal.Decimal `json:"value"`
	InsertedAt   time.Time       `json:"insertedAt"`
}

// Key returns the grid cell the line belongs to.
func (l BudgetPlanLine) Key() CellKey {
	return CellKey{Month: l.Month, Direction: l.Direction, Category: l.Category}
}

// BudgetComment is one append-only version of a cell comment.
type BudgetComment struct {
	WorkspaceID string    `json:"workspaceID"`
	Month       Month     `json:"month"`
	Direction   Direction `json:"direction"`
	Category    string    `json:"category"`
	Comment     string    `json:"comment"`
	InsertedAt  time.Time `json:"insertedAt"`
}

// Key returns the grid cell the comment belongs to.
func (c BudgetComment) Key() CellKey {
	return CellKey{Month: c.Month, Direction: c.Direction, Category: c.Category}
}

// IsBlank reports whether the comment text is empty after trimming.
func (c BudgetComment) IsBlank() bool { return strings.TrimSpace(c.Comment) == "" }
