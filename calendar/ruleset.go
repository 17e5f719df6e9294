package calendar

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/prerak-proof/holiday-calendar/utils/date"
)

// Variant selects which rule list a calendar evaluates.
type Variant int

const (
	// Trading is the exchange's own holiday list (XNYS).
	Trading Variant = iota
	// Settlement is Trading plus the bank holidays that block settlement.
	Settlement
)

func (v Variant) String() string {
	switch v {
	case Trading:
		return "trading"
	case Settlement:
		return "settlement"
	default:
		return "unknown"
	}
}

// ParseVariant accepts "trading" or "settlement", case-insensitively.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trading":
		return Trading, nil
	case "settlement":
		return Settlement, nil
	default:
		return 0, errors.Wrapf(ErrUnknownVariant, "%q", s)
	}
}

var weekdaysBeforeFriday = []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday}

// tradingRules returns the XNYS regular and ad-hoc closures.
func tradingRules() []Rule {
	rules := []Rule{
		FixedDate("New Year's Day", time.January, 1, ObservedSundayToMonday),
		NthWeekday("Martin Luther King Jr. Day", time.January, time.Monday, 3).Since(1998),
		NthWeekday("Washington's Birthday", time.February, time.Monday, 3),
		EasterOffset("Good Friday", -2),
		NthWeekday("Memorial Day", time.May, time.Monday, -1),
		FixedDate("Juneteenth", time.June, 19, ObservedNearest).Since(2022),
		FixedDate("Independence Day", time.July, 4, ObservedNearest),
		NthWeekday("Labor Day", time.September, time.Monday, 1),
		NthWeekday("Thanksgiving Day", time.November, time.Thursday, 4),
		FixedDate("Christmas Day", time.December, 25, ObservedNearest),
	}
	return append(rules, adhocClosures()...)
}

func adhocClosures() []Rule {
	return []Rule{
		Exact("September 11 Attacks", date.New(2001, time.September, 11)),
		Exact("September 11 Attacks", date.New(2001, time.September, 12)),
		Exact("September 11 Attacks", date.New(2001, time.September, 13)),
		Exact("September 11 Attacks", date.New(2001, time.September, 14)),
		Exact("Reagan National Day of Mourning", date.New(2004, time.June, 11)),
		Exact("Ford National Day of Mourning", date.New(2007, time.January, 2)),
		Exact("Hurricane Sandy", date.New(2012, time.October, 29)),
		Exact("Hurricane Sandy", date.New(2012, time.October, 30)),
		Exact("G.H.W. Bush National Day of Mourning", date.New(2018, time.December, 5)),
		Exact("Carter National Day of Mourning", date.New(2025, time.January, 9)),
	}
}

// settlementRules are the extra bank holidays on top of Trading.
func settlementRules() []Rule {
	return []Rule{
		NthWeekday("Columbus Day", time.October, time.Monday, 2),
		FixedDate("Veterans Day", time.November, 11, ObservedNextMonday),
	}
}

// earlyCloseRules produce the half-day lookup table.
func earlyCloseRules() []Rule {
	return []Rule{
		FixedDate("Independence Day Eve", time.July, 3, ObservedExact).Since(2013).OnlyOn(weekdaysBeforeFriday...),
		NthWeekday("Day After Thanksgiving", time.November, time.Thursday, 4).Shifted(1),
		FixedDate("Christmas Eve", time.December, 24, ObservedExact).OnlyOn(weekdaysBeforeFriday...),
	}
}

// Rules returns a fresh copy of the holiday rules for v.
func Rules(v Variant) ([]Rule, error) {
	switch v {
	case Trading:
		return tradingRules(), nil
	case Settlement:
		return append(tradingRules(), settlementRules()...), nil
	default:
		return nil, errors.Wrapf(ErrUnknownVariant, "%d", int(v))
	}
}

// EarlyCloseRules returns a fresh copy of the half-day rules.
func EarlyCloseRules() []Rule {
	return earlyCloseRules()
}

// YearRange is a closed range of years.
type YearRange struct {
	First, Last int
}

// YearsOf returns the years touched by r, padded by one year on each side so
// observances that cross a year boundary are picked up.
func YearsOf(r date.Range) YearRange {
	return YearRange{First: r.Start.Year - 1, Last: r.End.Year + 1}
}

// DateSet maps each date to the name of the first rule that produced it.
type DateSet map[date.Date]string

func (s DateSet) Contains(d date.Date) bool {
	_, ok := s[d]
	return ok
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []date.Date {
	out := make([]date.Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// EvaluateRules runs every rule for every year in years.
func EvaluateRules(rules []Rule, years YearRange) DateSet {
	set := DateSet{}
	for year := years.First; year <= years.Last; year++ {
		for _, r := range rules {
			d, ok := r.Observe(year)
			if !ok {
				continue
			}
			if _, dup := set[d]; !dup {
				set[d] = r.Name
			}
		}
	}
	return set
}

// Evaluate returns the holidays of v falling in years.
func Evaluate(v Variant, years YearRange) (DateSet, error) {
	rules, err := Rules(v)
	if err != nil {
		return nil, err
	}
	return EvaluateRules(rules, years), nil
}
