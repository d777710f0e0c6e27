// Package period models the calendar granularities that own vault pages:
// a day, an ISO-8601 week, a month, and a year. Each period knows its
// canonical page name, its neighbors, and its constituent sub-periods.
package period

import (
	"fmt"
	"time"

	"github.com/aidanlsb/saga/internal/dates"
)

// A Period owns exactly one page in the vault. Name is the canonical page
// identifier: it doubles as the wikilink target and determines the file path.
type Period interface {
	Name() string
}

// Day is the period backing a journal page.
type Day struct {
	Date dates.Date
}

// Week is an ISO-8601 week. Year is the ISO week-numbering year, which can
// differ from the calendar year of the week's first or last day.
type Week struct {
	Year int
	Week int
}

// Month is a calendar month of a specific year.
type Month struct {
	Year  int
	Month time.Month
}

// Year is a calendar year.
type Year struct {
	Year int
}

// DayOf wraps a date in its day period.
func DayOf(d dates.Date) Day { return Day{Date: d} }

// WeekOf returns the ISO week containing the given date.
func WeekOf(d dates.Date) Week {
	y, w := d.ISOWeek()
	return Week{Year: y, Week: w}
}

// MonthOf returns the month containing the given date.
func MonthOf(d dates.Date) Month {
	return Month{Year: d.Year(), Month: d.Month()}
}

// YearOf returns the year containing the given date.
func YearOf(d dates.Date) Year {
	return Year{Year: d.Year()}
}

// Name formats the day page name (YYYY-MM-DD).
func (d Day) Name() string { return d.Date.String() }

// Prev returns the previous day.
func (d Day) Prev() Day { return Day{Date: d.Date.AddDays(-1)} }

// Next returns the next day.
func (d Day) Next() Day { return Day{Date: d.Date.AddDays(1)} }

// Week returns the ISO week containing this day.
func (d Day) Week() Week { return WeekOf(d.Date) }

// Month returns the month containing this day.
func (d Day) Month() Month { return MonthOf(d.Date) }

// Name formats the week page name (YYYY/Week WW).
func (w Week) Name() string {
	return fmt.Sprintf("%04d/Week %02d", w.Year, w.Week)
}

// First returns the week's Monday.
//
// January 4th is always in ISO week 1 (it is the latest possible Monday of
// week 1 plus three days), so the Monday of week 1 is found by walking back
// from it, and every other week is a whole number of weeks later.
func (w Week) First() dates.Date {
	jan4 := dates.New(w.Year, time.January, 4)
	// time.Weekday numbers Sunday as 0; ISO weeks start on Monday.
	offset := (int(jan4.Weekday()) + 6) % 7
	week1Monday := jan4.AddDays(-offset)
	return week1Monday.AddDays((w.Week - 1) * 7)
}

// Last returns the week's Sunday.
func (w Week) Last() dates.Date { return w.First().AddDays(6) }

// Days returns the week's seven dates, Monday through Sunday.
func (w Week) Days() []dates.Date {
	days := make([]dates.Date, 7)
	first := w.First()
	for i := range days {
		days[i] = first.AddDays(i)
	}
	return days
}

// Prev returns the previous ISO week. Stepping over the week's boundary day
// and recomputing keeps week-53 years correct; naive arithmetic on the week
// number does not.
func (w Week) Prev() Week { return WeekOf(w.First().AddDays(-1)) }

// Next returns the next ISO week.
func (w Week) Next() Week { return WeekOf(w.Last().AddDays(1)) }

// Month returns the month containing the week's Monday.
func (w Week) Month() Month { return MonthOf(w.First()) }

// Name formats the month page name (YYYY/MonthName).
func (m Month) Name() string {
	return fmt.Sprintf("%04d/%s", m.Year, m.Month.String())
}

// First returns the first day of the month.
func (m Month) First() dates.Date { return dates.New(m.Year, m.Month, 1) }

// Last returns the last day of the month.
func (m Month) Last() dates.Date {
	return dates.New(m.Year, m.Month+1, 1).AddDays(-1)
}

// Days returns every date of the month in order.
func (m Month) Days() []dates.Date {
	var days []dates.Date
	last := m.Last()
	for d := m.First(); !d.After(last); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// Prev returns the previous month.
func (m Month) Prev() Month { return MonthOf(m.First().AddDays(-1)) }

// Next returns the next month.
func (m Month) Next() Month { return MonthOf(m.Last().AddDays(1)) }

// Name formats the year page name (YYYY).
func (y Year) Name() string { return fmt.Sprintf("%04d", y.Year) }

// Months returns the year's twelve months in calendar order.
func (y Year) Months() []Month {
	months := make([]Month, 12)
	for i := range months {
		months[i] = Month{Year: y.Year, Month: time.Month(i + 1)}
	}
	return months
}

// Prev returns the previous year.
func (y Year) Prev() Year { return Year{Year: y.Year - 1} }

// Next returns the next year.
func (y Year) Next() Year { return Year{Year: y.Year + 1} }
