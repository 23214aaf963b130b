package date

import (
	"fmt"
	"slices"
	"strings"
)

// Period is the span of a calendar range: the day, week, month, quarter or
// year around a date. Transactions are filtered and summarized by period.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

var periodNames = [...]string{
	Daily:     "day",
	Weekly:    "week",
	Monthly:   "month",
	Quarterly: "quarter",
	Yearly:    "year",
}

// String returns the name of p, as accepted by ParsePeriod.
func (p Period) String() string {
	if p < Daily || p > Yearly {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodNames[p]
}

// Periods returns the period names, shortest first.
func Periods() []string { return slices.Clone(periodNames[:]) }

// ParsePeriod parses one of the names returned by Periods, ignoring case.
func ParsePeriod(s string) (Period, error) {
	i := slices.Index(periodNames[:], strings.ToLower(strings.TrimSpace(s)))
	if i < 0 {
		return Daily, fmt.Errorf("unknown period %q, want one of %s", s, strings.Join(periodNames[:], ", "))
	}
	return Period(i), nil
}
