package reconcile

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"time"

	"github.com/SscSPs/budget_reconciler/internal/core/domain"
)

const (
	// RecentGaps is how many of the most recent inter-transaction gaps feed the statistic.
	RecentGaps = 20
	// MinTransactions is the lifetime non-transfer count an account needs to be judged.
	MinTransactions = 5
	// MinTrailing is the non-transfer count required inside the trailing window.
	MinTrailing = 4
	// TrailingDays is the length of the trailing activity window.
	TrailingDays = 30
	// MaxRhythmDays caps the statistic; slower accounts are never flagged.
	MaxRhythmDays = 90
)

// StalenessStrategy summarises an account's gaps and sets the thresholds
// applied to it. Implementations are alternatives, never combined.
type StalenessStrategy interface {
	Name() string
	// Statistic returns G for gaps ordered oldest first.
	Statistic(gaps []int) float64
	Multiplier() float64
	FloorDays() int
}

// PercentileStrategy uses a percentile of the gaps.
type PercentileStrategy struct {
	Percentile float64
	Factor     float64
	Floor      int
}

// NewPercentileStrategy returns the p75 × 2.0, floor 7 days variant.
func NewPercentileStrategy() PercentileStrategy {
	return PercentileStrategy{Percentile: 0.75, Factor: 2.0, Floor: 7}
}

func (s PercentileStrategy) Name() string        { return "percentile" }
func (s PercentileStrategy) Multiplier() float64 { return s.Factor }
func (s PercentileStrategy) FloorDays() int      { return s.Floor }

// Statistic interpolates linearly between closest ranks.
func (s PercentileStrategy) Statistic(gaps []int) float64 {
	if len(gaps) == 0 {
		return 0
	}
	sorted := slices.Clone(gaps)
	sort.Ints(sorted)
	pos := s.Percentile * float64(len(sorted)-1)
	lo, hi := int(math.Floor(pos)), int(math.Ceil(pos))
	frac := pos - float64(lo)
	return float64(sorted[lo]) + frac*float64(sorted[hi]-sorted[lo])
}

// MaxGapStrategy uses the longest recent gap.
type MaxGapStrategy struct {
	Factor float64
	Floor  int
}

// NewMaxGapStrategy returns the max × 1.5, floor 2 days variant.
func NewMaxGapStrategy() MaxGapStrategy {
	return MaxGapStrategy{Factor: 1.5, Floor: 2}
}

func (s MaxGapStrategy) Name() string        { return "max" }
func (s MaxGapStrategy) Multiplier() float64 { return s.Factor }
func (s MaxGapStrategy) FloorDays() int      { return s.Floor }

func (s MaxGapStrategy) Statistic(gaps []int) float64 {
	if len(gaps) == 0 {
		return 0
	}
	return float64(slices.Max(gaps))
}

// StrategyByName maps a configured name to its strategy.
func StrategyByName(name string) (StalenessStrategy, error) {
	switch name {
	case "", "percentile":
		return NewPercentileStrategy(), nil
	case "max":
		return NewMaxGapStrategy(), nil
	default:
		return nil, fmt.Errorf("unknown staleness strategy %q", name)
	}
}

// StalenessReport explains an overdue verdict.
type StalenessReport struct {
	Gap       float64
	DaysSince int
	Total     int
	Trailing  int
	Overdue   bool
}

// StalenessDetector flags accounts whose silence exceeds their own rhythm.
type StalenessDetector struct {
	strategy StalenessStrategy
}

func NewStalenessDetector(strategy StalenessStrategy) *StalenessDetector {
	if strategy == nil {
		strategy = NewPercentileStrategy()
	}
	return &StalenessDetector{strategy: strategy}
}

// Strategy returns the active strategy.
func (d *StalenessDetector) Strategy() StalenessStrategy { return d.strategy }

// recentGaps returns day gaps between distinct transaction days, oldest
// first, keeping at most the last limit.
func recentGaps(days []time.Time, limit int) []int {
	var gaps []int
	for i := 1; i < len(days); i++ {
		g := domain.DaysBetween(days[i-1], days[i])
		if g <= 0 {
			continue
		}
		gaps = append(gaps, g)
	}
	if len(gaps) > limit {
		gaps = gaps[len(gaps)-limit:]
	}
	return gaps
}

// Evaluate judges one account. timestamps are recent non-transfer
// transactions in any order; total is the lifetime non-transfer count.
// The trailing window ends at the last transaction.
func (d *StalenessDetector) Evaluate(timestamps []time.Time, total int, asOf time.Time) StalenessReport {
	days := sortedDays(timestamps)
	trailing := 0
	if len(days) > 0 {
		windowStart := days[len(days)-1].AddDate(0, 0, -TrailingDays)
		for _, day := range days {
			if day.After(windowStart) {
				trailing++
			}
		}
	}
	return d.judge(days, total, trailing, asOf)
}

// EvaluateActivity judges an account from its activity summary, whose recent
// days are distinct and whose trailing count covers every entry of the window.
func (d *StalenessDetector) EvaluateActivity(a domain.AccountActivity, asOf time.Time) StalenessReport {
	return d.judge(sortedDays(a.RecentNonTransfer), a.NonTransferCount, a.TrailingNonTransfer, asOf)
}

func sortedDays(timestamps []time.Time) []time.Time {
	days := make([]time.Time, len(timestamps))
	for i, ts := range timestamps {
		days[i] = domain.Day(ts)
	}
	slices.SortFunc(days, func(a, b time.Time) int { return a.Compare(b) })
	return days
}

// judge applies the thresholds to days sorted oldest first.
func (d *StalenessDetector) judge(days []time.Time, total, trailing int, asOf time.Time) StalenessReport {
	report := StalenessReport{Total: total, Trailing: trailing}
	if len(days) == 0 {
		return report
	}
	last := days[len(days)-1]

	report.Gap = d.strategy.Statistic(recentGaps(days, RecentGaps))
	report.DaysSince = domain.DaysBetween(last, domain.Day(asOf))

	report.Overdue = report.Total >= MinTransactions &&
		report.Trailing >= MinTrailing &&
		report.Gap > 0 && report.Gap <= MaxRhythmDays &&
		float64(report.DaysSince) > report.Gap*d.strategy.Multiplier() &&
		report.DaysSince >= d.strategy.FloorDays()
	return report
}
