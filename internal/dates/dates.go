// Package dates provides the calendar day value type and canonical
// date parsing used across the CLI, the vault configuration, and the
// events collaborator.
package dates

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// DateLayout is the canonical YYYY-MM-DD layout.
const DateLayout = "2006-01-02"

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar day (year, month, day-of-month) without a time of day
// or a timezone. The zero value is the zero time's day; use New or Parse.
type Date struct {
	t time.Time
}

// New returns the date for the given year, month and day-of-month.
// Out-of-range values are normalized the way time.Date normalizes them.
func New(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// FromTime truncates a time to its calendar day.
func FromTime(t time.Time) Date {
	return New(t.Year(), t.Month(), t.Day())
}

// IsValid checks if a string is a valid YYYY-MM-DD date.
func IsValid(s string) bool {
	if !dateRegex.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// Parse parses a YYYY-MM-DD date.
func Parse(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if !IsValid(s) {
		return Date{}, fmt.Errorf("invalid date: %q", s)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date: %q", s)
	}
	return FromTime(t), nil
}

// ParseArg parses a CLI date argument which can be:
// - "today", "yesterday", "tomorrow" (relative to now)
// - "YYYY-MM-DD" (absolute date)
// - empty string, which defaults to today
func ParseArg(arg string, now time.Time) (Date, error) {
	today := FromTime(now)
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	default:
		d, err := Parse(arg)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date format '%s', use YYYY-MM-DD or today/yesterday/tomorrow", strings.TrimSpace(arg))
		}
		return d, nil
	}
}

// Year returns the calendar year.
func (d Date) Year() int { return d.t.Year() }

// Month returns the calendar month.
func (d Date) Month() time.Month { return d.t.Month() }

// Day returns the day of month, starting from 1.
func (d Date) Day() int { return d.t.Day() }

// Weekday returns the day of week.
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }

// WeekdayName returns the English weekday name ("Monday" .. "Sunday").
func (d Date) WeekdayName() string { return d.t.Weekday().String() }

// ISOWeek returns the ISO-8601 week-numbering year and week. A week belongs
// to the year containing its Thursday, so late-December days can land in week
// 1 of the next year and early-January days in week 52/53 of the previous.
func (d Date) ISOWeek() (isoYear, isoWeek int) {
	return d.t.ISOWeek()
}

// AddDays returns the date n days later (earlier when n is negative).
func (d Date) AddDays(n int) Date {
	return Date{d.t.AddDate(0, 0, n)}
}

// Before reports whether d is chronologically before other.
func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

// After reports whether d is chronologically after other.
func (d Date) After(other Date) bool { return d.t.After(other.t) }

// YearDay returns the ordinal day within the year, starting from 1.
func (d Date) YearDay() int { return d.t.YearDay() }

// Time returns the date as midnight UTC, for interop with time-based APIs.
func (d Date) Time() time.Time { return d.t }

// String formats the date as YYYY-MM-DD.
func (d Date) String() string { return d.t.Format(DateLayout) }
