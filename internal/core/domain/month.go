package domain

import (
	"fmt"
	"regexp"
	"time"
)

// MonthLayout is the wire format of a calendar month.
const MonthLayout = "2006-01"

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Month identifies a calendar month. The zero value means "unset".
type Month struct {
	Year  int
	Month time.Month
}

// NewMonth returns a normalized Month, so NewMonth(2025, 13) is January 2026.
func NewMonth(year int, month time.Month) Month {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Month{Year: t.Year(), Month: t.Month()}
}

// MonthOf returns the month containing t (in UTC).
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return Month{Year: t.Year(), Month: t.Month()}
}

// IsValidMonthString reports whether s matches the YYYY-MM format.
func IsValidMonthString(s string) bool { return monthPattern.MatchString(s) }

// ParseMonth parses a "YYYY-MM" string.
func ParseMonth(s string) (Month, error) {
	if !monthPattern.MatchString(s) {
		return Month{}, fmt.Errorf("invalid month %q want format YYYY-MM", s)
	}
	t, err := time.Parse(MonthLayout, s)
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return MonthOf(t), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(s string) Month {
	m, err := ParseMonth(s)
	if err != nil {
		panic(err.Error())
	}
	return m
}

func (m Month) IsZero() bool { return m.Year == 0 && m.Month == 0 }

func (m Month) String() string { return m.FirstDay().Format(MonthLayout) }

// FirstDay returns midnight UTC of the first day of the month.
func (m Month) FirstDay() time.Time { return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC) }

// LastDay returns midnight UTC of the final calendar day of the month.
func (m Month) LastDay() time.Time { return m.FirstDay().AddDate(0, 1, -1) }

func (m Month) Next() Month { return NewMonth(m.Year, m.Month+1) }
func (m Month) Prev() Month { return NewMonth(m.Year, m.Month-1) }

// Compare returns -1, 0 or +1 depending on whether m is before, equal to or after o.
func (m Month) Compare(o Month) int {
	switch {
	case m.Year < o.Year || (m.Year == o.Year && m.Month < o.Month):
		return -1
	case m == o:
		return 0
	default:
		return 1
	}
}

func (m Month) Before(o Month) bool { return m.Compare(o) < 0 }
func (m Month) After(o Month) bool  { return m.Compare(o) > 0 }

// MarshalText lets Month be used as a JSON map key.
func (m Month) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText parses the YYYY-MM form.
func (m *Month) UnmarshalText(b []byte) error {
	parsed, err := ParseMonth(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// MonthRange is an inclusive range of months.
type MonthRange struct {
	From Month
	To   Month
}

// YearRange returns January..December of the given year.
func YearRange(year int) MonthRange {
	return MonthRange{From: NewMonth(year, time.January), To: NewMonth(year, time.December)}
}

// Contains reports whether m lies within the range, boundaries included.
func (r MonthRange) Contains(m Month) bool { return !m.Before(r.From) && !m.After(r.To) }

// Months lists every month of the range in chronological order.
func (r MonthRange) Months() []Month {
	var out []Month
	for m := r.From; !m.After(r.To); m = m.Next() {
		out = append(out, m)
	}
	return out
}

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
