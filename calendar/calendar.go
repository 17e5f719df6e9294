// Package calendar provides market calendars, with which you can check if
// the market holds a session on a given day and walk N sessions forward or
// backward from a reference date.
//
// A MarketCalendar is bound to a Variant and a closed window of dates. The
// holiday and early-close tables are evaluated once, at construction, for
// the years the window touches; every query outside the window fails with
// ErrOutOfWindow instead of guessing.
package calendar

import (
	"github.com/pkg/errors"

	"github.com/prerak-proof/holiday-calendar/utils/date"
	"github.com/prerak-proof/holiday-calendar/utils/log"
)

// IsWeekend is the cheap pre-filter: it needs no holiday data.
func IsWeekend(d date.Date) bool {
	return d.IsWeekend()
}

type MarketCalendar struct {
	variant  Variant
	window   date.Range
	holidays DateSet
	halfDays DateSet
}

type options struct {
	closures    []date.Date
	earlyCloses []date.Date
}

// Option customizes a MarketCalendar at construction.
type Option func(*options)

// WithClosures adds one-off full closures on top of the variant's rules.
func WithClosures(days ...date.Date) Option {
	return func(o *options) {
		o.closures = append(o.closures, days...)
	}
}

// WithEarlyCloses adds dates to the half-day lookup table.
func WithEarlyCloses(days ...date.Date) Option {
	return func(o *options) {
		o.earlyCloses = append(o.earlyCloses, days...)
	}
}

// New evaluates the rules of v over window and returns the calendar.
func New(v Variant, window date.Range, opts ...Option) (*MarketCalendar, error) {
	if window.Start.After(window.End) {
		return nil, errors.Wrapf(ErrInvalidWindow, "%s", window)
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	rules, err := Rules(v)
	if err != nil {
		return nil, err
	}
	for _, d := range o.closures {
		rules = append(rules, Exact("Closure", d))
	}
	earlyRules := EarlyCloseRules()
	for _, d := range o.earlyCloses {
		earlyRules = append(earlyRules, Exact("Early Close", d))
	}

	years := YearsOf(window)
	mc := &MarketCalendar{
		variant:  v,
		window:   window,
		holidays: EvaluateRules(rules, years),
		halfDays: EvaluateRules(earlyRules, years),
	}
	log.Debug("built %s calendar for %s: %d holidays, %d early closes in years %d-%d",
		v, window, len(mc.holidays), len(mc.halfDays), years.First, years.Last)
	return mc, nil
}

// NewAround builds a calendar whose window is [ref-days, ref+days].
func NewAround(v Variant, ref date.Date, days int, opts ...Option) (*MarketCalendar, error) {
	if days < 0 {
		days = -days
	}
	return New(v, date.Range{Start: ref.AddDays(-days), End: ref.AddDays(days)}, opts...)
}

func (mc *MarketCalendar) Variant() Variant {
	return mc.variant
}

func (mc *MarketCalendar) Window() date.Range {
	return mc.window
}

func (mc *MarketCalendar) check(d date.Date) error {
	if !mc.window.Contains(d) {
		return errors.Wrapf(ErrOutOfWindow, "%s not in %s", d, mc.window)
	}
	return nil
}

// IsWeekend reports whether d is a Saturday or Sunday.
func (mc *MarketCalendar) IsWeekend(d date.Date) bool {
	return IsWeekend(d)
}

// IsSession reports whether the market holds a session on d.
func (mc *MarketCalendar) IsSession(d date.Date) (bool, error) {
	if err := mc.check(d); err != nil {
		return false, err
	}
	if IsWeekend(d) {
		return false, nil
	}
	return !mc.holidays.Contains(d), nil
}

// IsHoliday reports whether d is a non-trading day, weekend included.
func (mc *MarketCalendar) IsHoliday(d date.Date) (bool, error) {
	open, err := mc.IsSession(d)
	if err != nil {
		return false, err
	}
	return !open, nil
}

// IsHalfDay reports whether d is a session with an early close.
func (mc *MarketCalendar) IsHalfDay(d date.Date) (bool, error) {
	open, err := mc.IsSession(d)
	if err != nil || !open {
		return false, err
	}
	return mc.halfDays.Contains(d), nil
}

// HolidayName returns the rule name that closes d, if any.
func (mc *MarketCalendar) HolidayName(d date.Date) (string, bool) {
	name, ok := mc.holidays[d]
	return name, ok
}

// EarlyCloseName returns the rule name that shortens d, if any.
func (mc *MarketCalendar) EarlyCloseName(d date.Date) (string, bool) {
	name, ok := mc.halfDays[d]
	return name, ok
}

// Holidays returns the weekday holidays inside the window, ascending.
func (mc *MarketCalendar) Holidays() []date.Date {
	var out []date.Date
	for _, d := range mc.holidays.Sorted() {
		if mc.window.Contains(d) && !IsWeekend(d) {
			out = append(out, d)
		}
	}
	return out
}

// HalfDays returns the early-close sessions inside the window, ascending.
func (mc *MarketCalendar) HalfDays() []date.Date {
	var out []date.Date
	for _, d := range mc.halfDays.Sorted() {
		if ok, _ := mc.IsHalfDay(d); ok {
			out = append(out, d)
		}
	}
	return out
}

// Sessions returns every session inside the window, ascending.
func (mc *MarketCalendar) Sessions() []date.Date {
	var out []date.Date
	for d := mc.window.Start; !d.After(mc.window.End); d = d.AddDays(1) {
		if !IsWeekend(d) && !mc.holidays.Contains(d) {
			out = append(out, d)
		}
	}
	return out
}

// StepSessions moves cursor by exactly n sessions, backward when n is
// negative. Every calendar day in between is visited; days that are not
// sessions do not count. A zero n returns cursor untouched.
func (mc *MarketCalendar) StepSessions(cursor date.Date, n int) (date.Date, error) {
	if n == 0 {
		return cursor, nil
	}
	if n < -MaxSteps || n > MaxSteps {
		return date.Date{}, errors.Wrapf(ErrStepOutOfRange, "step %d from %s", n, cursor)
	}

	dir, remaining := 1, n
	if n < 0 {
		dir, remaining = -1, -n
	}

	d := cursor
	for remaining > 0 {
		d = d.AddDays(dir)
		open, err := mc.IsSession(d)
		if err != nil {
			return date.Date{}, errors.Wrapf(err, "step %+d sessions from %s", n, cursor)
		}
		if open {
			remaining--
		}
	}
	return d, nil
}
