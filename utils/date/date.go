// Package date provides a day-identity value used for every calendar
// computation. A Date has no time-of-day and no zone; when a zone is
// needed (weekday, formatting) UTC is used.
package date

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/pkg/errors"
)

// BasicLayout is the compact YYYYMMDD form used on the command line.
const BasicLayout = "20060102"

// ErrInvalidFormat is returned when a string is not a YYYYMMDD date.
var ErrInvalidFormat = errors.New("invalid date format, expected YYYYMMDD")

type Date civil.Date

func DateOf(t time.Time) Date {
	return Date(civil.DateOf(t))
}

func New(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// Today returns the current date in UTC.
func Today() Date {
	return DateOf(time.Now().UTC())
}

// ParseBasic parses a YYYYMMDD string.
func ParseBasic(s string) (Date, error) {
	t, err := time.Parse(BasicLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, errors.Wrapf(ErrInvalidFormat, "%q", s)
	}
	return DateOf(t), nil
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	return Date(d), err
}

// ParseAny accepts both YYYYMMDD and YYYY-MM-DD.
func ParseAny(s string) (Date, error) {
	if strings.Contains(s, "-") {
		d, err := ParseDate(s)
		if err != nil {
			return Date{}, errors.Wrapf(ErrInvalidFormat, "%q", s)
		}
		return d, nil
	}
	return ParseBasic(s)
}

func (d Date) c() civil.Date {
	return civil.Date(d)
}

func (d Date) AddDays(n int) Date {
	return Date(d.c().AddDays(n))
}

func (d Date) After(d2 Date) bool {
	return d.c().After(d2.c())
}

func (d Date) Before(d2 Date) bool {
	return d.c().Before(d2.c())
}

func (d Date) DaysSince(s Date) int {
	return d.c().DaysSince(s.c())
}

func (d Date) In(loc *time.Location) time.Time {
	return d.c().In(loc)
}

func (d Date) IsValid() bool {
	return d.c().IsValid()
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) Weekday() time.Weekday {
	return d.In(time.UTC).Weekday()
}

// IsWeekend reports whether d is a Saturday or a Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func (d Date) MarshalText() ([]byte, error) {
	return d.c().MarshalText()
}

func (d *Date) UnmarshalText(data []byte) error {
	parsed, err := ParseAny(string(data))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) String() string {
	return d.c().String()
}

// Basic formats d as YYYYMMDD.
func (d Date) Basic() string {
	return d.Format(BasicLayout)
}

func (d Date) Date() (year int, month time.Month, day int) {
	return d.Year, d.Month, d.Day
}

func (d Date) Format(layout string) string {
	return d.In(time.UTC).Format(layout)
}

// Range is a closed interval of dates.
type Range struct {
	Start, End Date
}

// Contains reports whether d lies in [r.Start, r.End].
func (r Range) Contains(d Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the number of days in the range, both ends included.
func (r Range) Days() int {
	return r.End.DaysSince(r.Start) + 1
}

func (r Range) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}
