package dto

import (
	"fmt"
	"strings"

	"github.com/SscSPs/budget_reconciler/internal/apperrors"
	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AppendPlanLineRequest appends a new version of one plan component of a cell.
// Transfers carry no plan.
type AppendPlanLineRequest struct {
	Month        string          `json:"month" binding:"required,yearmonth"`
	Direction    string          `json:"direction" binding:"required,oneof=income spend"`
	Category     string          `json:"category" binding:"required,max=255"`
	Kind         string          `json:"kind" binding:"required,oneof=base modifier"`
	CurrencyCode string          `json:"currencyCode" binding:"omitempty,currency"` // defaults to the reporting currency
	Value        decimal.Decimal `json:"value"`
}

// ToDomain validates the request and builds the plan line.
func (r AppendPlanLineRequest) ToDomain(workspaceID, defaultCurrency string) (domain.BudgetPlanLine, error) {
	month, err := parseRequiredMonth("month", r.Month)
	if err != nil {
		return domain.BudgetPlanLine{}, err
	}
	direction := domain.Direction(r.Direction)
	if direction != domain.Income && direction != domain.Spend {
		return domain.BudgetPlanLine{}, apperrors.NewValidationError(fmt.Sprintf("invalid plan direction %q", r.Direction))
	}
	kind := domain.PlanKind(r.Kind)
	if !kind.IsValid() {
		return domain.BudgetPlanLine{}, apperrors.NewValidationError(fmt.Sprintf("invalid plan kind %q", r.Kind))
	}
	category := strings.TrimSpace(r.Category)
	if category == "" {
		return domain.BudgetPlanLine{}, apperrors.NewValidationError("category is required")
	}
	currency := strings.ToUpper(r.CurrencyCode)
	if currency == "" {
		currency = defaultCurrency
	}
	return domain.BudgetPlanLine{
		WorkspaceID:  workspaceID,
		Month:        month,
		Direction:    direction,
		Category:     category,
		Kind:         kind,
		CurrencyCode: currency,
		Value:        r.Value,
	}, nil
}

// AppendCommentRequest appends a new version of a cell comment. A blank
// comment clears the cell.
type AppendCommentRequest struct {
	Month     string `json:"month" binding:"required,yearmonth"`
	Direction string `json:"direction" binding:"required,oneof=income spend transfer"`
	Category  string `json:"category" binding:"max=255"`
	Comment   string `json:"comment" binding:"max=4000"`
}

// ToDomain validates the request and builds the comment version.
func (r AppendCommentRequest) ToDomain(workspaceID string) (domain.BudgetComment, error) {
	month, err := parseRequiredMonth("month", r.Month)
	if err != nil {
		return domain.BudgetComment{}, err
	}
	direction := domain.Direction(r.Direction)
	if !direction.IsValid() {
		return domain.BudgetComment{}, apperrors.NewValidationError(fmt.Sprintf("invalid direction %q", r.Direction))
	}
	return domain.BudgetComment{
		WorkspaceID: workspaceID,
		Month:       month,
		Direction:   direction,
		Category:    strings.TrimSpace(r.Category),
		Comment:     r.Comment,
	}, nil
}

// FillForwardRequest copies the effective base plan of SourceMonth into the
// rest of its year.
type FillForwardRequest struct {
	SourceMonth string `json:"sourceMonth" binding:"required,yearmonth"`
}

// ParseSourceMonth returns the source month.
func (r FillForwardRequest) ParseSourceMonth() (domain.Month, error) {
	return parseRequiredMonth("sourceMonth", r.SourceMonth)
}

// PlanLineResponse is the API view of a stored plan line.
type PlanLineResponse struct {
	Month        string          `json:"month"`
	Direction    string          `json:"direction"`
	Category     string          `json:"category"`
	Kind         string          `json:"kind"`
	CurrencyCode string          `json:"currencyCode"`
	Value        decimal.Decimal `json:"value"`
	InsertedAt   string          `json:"insertedAt"`
}

// ToPlanLineResponse converts a domain plan line to its response DTO.
func ToPlanLineResponse(l domain.BudgetPlanLine) PlanLineResponse {
	return PlanLineResponse{
		Month:        l.Month.String(),
		Direction:    string(l.Direction),
		Category:     l.Category,
		Kind:         string(l.Kind),
		CurrencyCode: l.CurrencyCode,
		Value:        l.Value,
		InsertedAt:   l.InsertedAt.UTC().Format(timestampLayout),
	}
}

// ToListPlanLineResponse converts a slice of plan lines.
func ToListPlanLineResponse(lines []domain.BudgetPlanLine) []PlanLineResponse {
	out := make([]PlanLineResponse, len(lines))
	for i, l := range lines {
		out[i] = ToPlanLineResponse(l)
	}
	return out
}

// CommentResponse is the API view of a stored comment version.
type CommentResponse struct {
	Month      string `json:"month"`
	Direction  string `json:"direction"`
	Category   string `json:"category"`
	Comment    string `json:"comment"`
	InsertedAt string `json:"insertedAt"`
}

// ToCommentResponse converts a domain comment to its response DTO.
func ToCommentResponse(c domain.BudgetComment) CommentResponse {
	return CommentResponse{
		Month:      c.Month.String(),
		Direction:  string(c.Direction),
		Category:   c.Category,
		Comment:    c.Comment,
		InsertedAt: c.InsertedAt.UTC().Format(timestampLayout),
	}
}
