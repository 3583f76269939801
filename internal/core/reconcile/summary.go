package reconcile

import (
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DormantAfterDays is the silence after which a zero-balance account is dormant.
const DormantAfterDays = 90

// accountStatus derives the status of an account; accounts are not persisted.
func accountStatus(a domain.AccountActivity, asOf time.Time) domain.AccountStatus {
	if !a.Balance.IsZero() {
		return domain.AccountActive
	}
	if a.LastTransactionTs == nil || domain.DaysBetween(*a.LastTransactionTs, asOf) > DormantAfterDays {
		return domain.AccountDormant
	}
	return domain.AccountActive
}

// SummaryInput drives SummarizeBalances.
type SummaryInput struct {
	ReportingCurrency string
	AsOf              time.Time
	Activity          []domain.AccountActivity
	Rates             RateResolver
	Detector          *StalenessDetector
}

// SummarizeBalances lists every (account, currency) balance converted at the
// as-of rate, with per-currency totals and overdue flags.
func SummarizeBalances(in SummaryInput) domain.BalancesSummaryResult {
	detector := in.Detector
	if detector == nil {
		detector = NewStalenessDetector(nil)
	}

	res := domain.BalancesSummaryResult{
		ReportingCurrency: in.ReportingCurrency,
		AsOf:              in.AsOf,
		Accounts:          make([]domain.AccountBalance, 0, len(in.Activity)),
	}
	totals := make(map[string]*domain.CurrencyTotal)
	failed := make(currencySet)

	for _, a := range in.Activity {
		cur := strings.ToUpper(a.CurrencyCode)
		row := domain.AccountBalance{
			AccountID:         a.AccountID,
			Currency:          cur,
			Status:            accountStatus(a, in.AsOf),
			Balance:           a.Balance,
			LastTransactionTs: a.LastTransactionTs,
			Overdue:           detector.EvaluateActivity(a, in.AsOf).Overdue,
		}

		t, ok := totals[cur]
		if !ok {
			t = &domain.CurrencyTotal{Currency: cur}
			totals[cur] = t
		}
		t.Balance = t.Balance.Add(a.Balance)
		if a.Balance.IsPositive() {
			t.BalancePositive = t.BalancePositive.Add(a.Balance)
		} else {
			t.BalanceNegative = t.BalanceNegative.Add(a.Balance)
		}

		if v, ok := Convert(in.Rates, a.Balance, cur, in.ReportingCurrency, in.AsOf); ok {
			row.BalanceReporting = &v
		} else if !a.Balance.IsZero() {
			t.HasUnconvertible = true
			failed.add(cur)
		} else {
			row.BalanceReporting = ptr(decimal.Zero)
		}
		res.Accounts = append(res.Accounts, row)
	}

	for _, t := range totals {
		if !t.HasUnconvertible {
			v, _ := Convert(in.Rates, t.Balance, t.Currency, in.ReportingCurrency, in.AsOf)
			if t.Balance.IsZero() {
				v = decimal.Zero
			}
			t.BalanceReporting = &v
		}
		res.Totals = append(res.Totals, *t)
	}

	sort.Slice(res.Accounts, func(i, j int) bool {
		a, b := res.Accounts[i], res.Accounts[j]
		if a.AccountID != b.AccountID {
			return a.AccountID < b.AccountID
		}
		return a.Currency < b.Currency
	})
	sort.Slice(res.Totals, func(i, j int) bool { return res.Totals[i].Currency < res.Totals[j].Currency })

	res.ConversionWarnings = mergeWarnings(nil, failed.sorted(), in.ReportingCurrency)
	return res
}
