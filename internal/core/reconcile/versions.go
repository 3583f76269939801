package reconcile

import (
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
)

// Version is one entry of an append-only history.
type Version[T any] struct {
	SubKind    string
	Value      T
	InsertedAt time.Time
}

// LatestByKind folds a version history to the latest value per sub-kind.
// Equal insertion times resolve to the version observed last.
func LatestByKind[T any](history []Version[T]) map[string]T {
	latest := make(map[string]Version[T])
	for _, v := range history {
		cur, ok := latest[v.SubKind]
		if !ok || !v.InsertedAt.Before(cur.InsertedAt) {
			latest[v.SubKind] = v
		}
	}
	out := make(map[string]T, len(latest))
	for kind, v := range latest {
		out[kind] = v.Value
	}
	return out
}

// Latest folds a history to its single most recent value.
func Latest[T any](history []Version[T]) (T, bool) {
	var (
		best  Version[T]
		found bool
	)
	for _, v := range history {
		if !found || !v.InsertedAt.Before(best.InsertedAt) {
			best, found = v, true
		}
	}
	return best.Value, found
}

// EffectivePlan is the resolved plan of one cell. Missing kinds are nil.
type EffectivePlan struct {
	Base     *domain.BudgetPlanLine
	Modifier *domain.BudgetPlanLine
}

// ResolvePlan returns the latest base and modifier line of every cell.
func ResolvePlan(lines []domain.BudgetPlanLine) map[domain.CellKey]EffectivePlan {
	histories := make(map[domain.CellKey][]Version[domain.BudgetPlanLine])
	for _, l := range lines {
		histories[l.Key()] = append(histories[l.Key()], Version[domain.BudgetPlanLine]{
			SubKind:    string(l.Kind),
			Value:      l,
			InsertedAt: l.InsertedAt,
		})
	}

	out := make(map[domain.CellKey]EffectivePlan, len(histories))
	for key, history := range histories {
		latest := LatestByKind(history)
		var plan EffectivePlan
		if base, ok := latest[string(domain.PlanBase)]; ok {
			plan.Base = &base
		}
		if modifier, ok := latest[string(domain.PlanModifier)]; ok {
			plan.Modifier = &modifier
		}
		out[key] = plan
	}
	return out
}

// ResolveComments returns the latest comment version of every cell, blank or not.
func ResolveComments(comments []domain.BudgetComment) map[domain.CellKey]domain.BudgetComment {
	histories := make(map[domain.CellKey][]Version[domain.BudgetComment])
	for _, c := range comments {
		histories[c.Key()] = append(histories[c.Key()], Version[domain.BudgetComment]{
			Value:      c,
			InsertedAt: c.InsertedAt,
		})
	}
	out := make(map[domain.CellKey]domain.BudgetComment, len(histories))
	for key, history := range histories {
		if latest, ok := Latest(history); ok {
			out[key] = latest
		}
	}
	return out
}
