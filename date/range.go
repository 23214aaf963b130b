package date

import "fmt"

// Range represents a range of dates, boundaries included.
type Range struct{ From, To Date }

// NewRange returns the period range containing d.
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Identifier computes a short name for the Range: "2025-09" for a month, the
// two boundaries otherwise.
func (r Range) Identifier() string {
	switch {
	case r.From == r.To:
		return r.From.String()
	case r.From.Day() == 1 && r.From.EndOf(Monthly) == r.To:
		return r.From.Format("2006-01")
	case r.From == r.From.StartOf(Yearly) && r.From.EndOf(Yearly) == r.To:
		return r.From.Format("2006")
	default:
		return fmt.Sprintf("%s_%s", r.From, r.To)
	}
}
