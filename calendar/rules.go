package calendar

import (
	"time"

	cal "github.com/rickar/cal/v2"

	"github.com/prerak-proof/holiday-calendar/utils/date"
)

// Observance moves a rule's raw date when it lands on one of the listed
// weekdays. A rule with no observance keeps its raw date.
type Observance []cal.AltDay

var (
	// ObservedExact keeps the raw date, weekend or not.
	ObservedExact Observance
	// ObservedNearest moves Saturday to Friday and Sunday to Monday.
	ObservedNearest = Observance{
		{Day: time.Saturday, Offset: -1},
		{Day: time.Sunday, Offset: 1},
	}
	// ObservedSundayToMonday only moves Sunday; a Saturday date is not observed
	// on a weekday at all.
	ObservedSundayToMonday = Observance{
		{Day: time.Sunday, Offset: 1},
	}
	// ObservedNextMonday moves any weekend date forward to the following Monday.
	ObservedNextMonday = Observance{
		{Day: time.Saturday, Offset: 2},
		{Day: time.Sunday, Offset: 1},
	}
)

// Rule is a single holiday (or early close) definition. Evaluated against a
// year it yields zero or one date.
//
// A valid Rule is built with one of:
//   - FixedDate (such as July 4, with an observance for weekend dates)
//   - NthWeekday (such as the fourth Thursday of November)
//   - EasterOffset (such as Good Friday, two days before Easter Sunday)
//   - Exact (a one-off closure on a specific date)
type Rule struct {
	Name string

	month      time.Month
	day        int
	weekday    time.Weekday
	offset     int
	observance Observance
	startYear  int
	endYear    int
	fn         cal.HolidayFn

	// applied after observance
	shift    int
	weekdays []time.Weekday
}

// FixedDate is a rule for the same month and day every year.
func FixedDate(name string, month time.Month, day int, obs Observance) Rule {
	return Rule{Name: name, month: month, day: day, observance: obs, fn: cal.CalcDayOfMonth}
}

// NthWeekday is a rule for the nth weekday of a month. A negative n counts
// from the end of the month, so -1 is the last one.
func NthWeekday(name string, month time.Month, weekday time.Weekday, n int) Rule {
	return Rule{Name: name, month: month, weekday: weekday, offset: n, fn: cal.CalcWeekdayOffset}
}

// EasterOffset is a rule for a day relative to Western Easter Sunday.
func EasterOffset(name string, days int) Rule {
	return Rule{Name: name, offset: days, fn: cal.CalcEasterOffset}
}

// Exact is a rule that only fires on d.
func Exact(name string, d date.Date) Rule {
	return Rule{
		Name: name, month: d.Month, day: d.Day,
		startYear: d.Year, endYear: d.Year,
		fn: cal.CalcDayOfMonth,
	}
}

// Since limits the rule to years on or after year.
func (r Rule) Since(year int) Rule {
	r.startYear = year
	return r
}

// Until limits the rule to years on or before year.
func (r Rule) Until(year int) Rule {
	r.endYear = year
	return r
}

// Shifted moves the observed date by days, e.g. the day after Thanksgiving.
func (r Rule) Shifted(days int) Rule {
	r.shift = days
	return r
}

// OnlyOn drops the occurrence unless it falls on one of weekdays.
func (r Rule) OnlyOn(weekdays ...time.Weekday) Rule {
	r.weekdays = append([]time.Weekday(nil), weekdays...)
	return r
}

// holiday builds a fresh rickar/cal definition so evaluation never shares
// state between calendars.
func (r Rule) holiday() *cal.Holiday {
	return &cal.Holiday{
		Name:      r.Name,
		Month:     r.month,
		Day:       r.day,
		Weekday:   r.weekday,
		Offset:    r.offset,
		Observed:  []cal.AltDay(r.observance),
		StartYear: r.startYear,
		EndYear:   r.endYear,
		Func:      r.fn,
	}
}

// Observe returns the date the rule is observed on in year, if any.
func (r Rule) Observe(year int) (date.Date, bool) {
	if r.fn == nil || (r.startYear > 0 && year < r.startYear) || (r.endYear > 0 && year > r.endYear) {
		return date.Date{}, false
	}
	_, observed := r.holiday().Calc(year)
	if observed.IsZero() {
		return date.Date{}, false
	}
	d := date.DateOf(observed).AddDays(r.shift)
	if len(r.weekdays) == 0 {
		return d, true
	}
	wd := d.Weekday()
	for _, allowed := range r.weekdays {
		if wd == allowed {
			return d, true
		}
	}
	return date.Date{}, false
}
