// Package hebdate provides the Hebrew-calendar date value type used across
// the application: conversion to and from the Gregorian calendar, age and
// day arithmetic, weekly Torah-portion lookup, and Hebrew display rendering.
//
// Month numbering follows the hebcal convention: 1 = Nisan, 7 = Tishrei,
// 12 = Adar I, 13 = Adar II (leap years only).
package hebdate

import (
	"encoding/json"
	"time"

	"github.com/hebcal/hdate"
	"github.com/hebcal/hebcal-go/sedra"
)

// Date is an immutable Hebrew calendar date. The zero value is not a valid
// date; use New, FromGregorian, or Now. All arithmetic returns new values.
type Date struct {
	year  int
	month int
	day   int
}

// New constructs a Date from explicit Hebrew year/month/day components.
// Construction does not validate; see IsValid.
func New(year, month, day int) Date {
	return Date{year: year, month: month, day: day}
}

// FromGregorian converts a Gregorian instant to its Hebrew calendar date.
func FromGregorian(t time.Time) Date {
	hd := hdate.FromTime(t)
	return Date{year: hd.Year(), month: int(hd.Month()), day: hd.Day()}
}

// Now returns today's Hebrew date per the system clock.
func Now() Date {
	return FromGregorian(time.Now())
}

func (d Date) Year() int  { return d.year }
func (d Date) Month() int { return d.month }
func (d Date) Day() int   { return d.day }

// IsZero reports whether d is the zero value (no date recorded).
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Gregorian converts d to its Gregorian calendar instant (day grain, UTC).
func (d Date) Gregorian() time.Time {
	return d.hdate().Gregorian()
}

func (d Date) hdate() hdate.HDate {
	return hdate.New(d.year, hdate.HMonth(d.month), d.day)
}

// Equal reports whether d and other name the same year/month/day.
func (d Date) Equal(other Date) bool {
	return d.year == other.year && d.month == other.month && d.day == other.day
}

// After orders dates lexicographically by (year, month, day). Month numbers
// are compared directly, so ordering across leap and non-leap years is the
// same approximation the rest of the system uses.
func (d Date) After(other Date) bool {
	if d.year != other.year {
		return d.year > other.year
	}
	if d.month != other.month {
		return d.month > other.month
	}
	return d.day > other.day
}

// AgeAt returns the number of whole Hebrew years between d and today.
// The year difference is decremented when today's (month, day) precedes
// d's (month, day); this is a month-number comparison, not a calendar-day
// distance, and is intentionally approximate across leap years.
func (d Date) AgeAt(today Date) int {
	age := today.year - d.year
	if today.month < d.month || (today.month == d.month && today.day < d.day) {
		age--
	}
	return age
}

// Age returns AgeAt evaluated against the current system clock.
func (d Date) Age() int {
	return d.AgeAt(Now())
}

// IsOlderThan reports whether the age computed from d is at least years.
func (d Date) IsOlderThan(years int) bool {
	return d.Age() >= years
}

// AddDays advances d by n calendar days, handling month and year rollover
// including leap months. Negative n retreats.
func (d Date) AddDays(n int) Date {
	return FromGregorian(d.Gregorian().AddDate(0, 0, n))
}

// SubtractDays retreats d by n calendar days.
func (d Date) SubtractDays(n int) Date {
	return d.AddDays(-n)
}

// Parasha returns the weekly Torah portion read on the Saturday on or after
// d, or "" when the lookup has no regular reading (holiday weeks). It never
// fails; missing data degrades to the empty string.
func (d Date) Parasha() string {
	t := d.Gregorian()
	offset := (int(time.Saturday) - int(t.Weekday()) + 7) % 7
	sat := hdate.FromTime(t.AddDate(0, 0, offset))

	s := sedra.New(sat.Year(), false)
	p := s.Lookup(sat)
	if p.Chag {
		return ""
	}
	return p.String()
}

// IsValid reports whether d names an actual day of the Hebrew calendar for
// its year. The check is advisory; constructors do not validate.
func (d Date) IsValid() bool {
	if d.month < 1 || d.month > hdate.MonthsInYear(d.year) {
		return false
	}
	return d.day >= 1 && d.day <= hdate.DaysInMonth(hdate.HMonth(d.month), d.year)
}

// dateJSON is the wire shape, matching the stored document format.
type dateJSON struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(dateJSON{Year: d.year, Month: d.month, Day: d.day})
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var dj dateJSON
	if err := json.Unmarshal(data, &dj); err != nil {
		return err
	}
	*d = Date{year: dj.Year, month: dj.Month, day: dj.Day}
	return nil
}
