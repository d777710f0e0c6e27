// Package generate computes the desired managed state of each calendar page
// type: the ordered property assignments and the managed-region content the
// merge engine will reconcile against the page on disk.
package generate

import (
	"fmt"
	"time"

	"github.com/aidanlsb/saga/internal/events"
	"github.com/aidanlsb/saga/internal/features"
	"github.com/aidanlsb/saga/internal/period"
	"github.com/aidanlsb/saga/internal/wikilink"
)

// Managed region identifiers, one per page type that carries a region.
const (
	RegionEvents = "events"
	RegionDays   = "days"
	RegionMonths = "months"
)

// Property is one managed frontmatter assignment.
type Property struct {
	Key   string
	Value string
}

// Region is a managed region's identifier and desired content lines.
type Region struct {
	ID    string
	Lines []string
}

// DesiredState is what a page should contain once merged. Disabled features
// simply do not appear; existing page content they would have touched is
// left alone.
type DesiredState struct {
	Properties []Property
	Region     *Region
}

// Empty reports whether the state would change nothing on any page.
func (s DesiredState) Empty() bool {
	return len(s.Properties) == 0 && s.Region == nil
}

// DayPage computes the desired state of a day page.
func DayPage(day period.Day, feats features.Day, evts events.List) DesiredState {
	var s DesiredState
	if feats.DayOfWeek {
		s.Properties = append(s.Properties, Property{"day", day.Date.WeekdayName()})
	}
	if feats.LinkToWeek {
		s.Properties = append(s.Properties, Property{"week", wikilink.Link(day.Week().Name())})
	}
	if feats.LinkToMonth {
		s.Properties = append(s.Properties, Property{"month", wikilink.Link(day.Month().Name())})
	}
	if feats.NavLink {
		s.Properties = append(s.Properties,
			Property{"next", wikilink.Link(day.Next().Name())},
			Property{"prev", wikilink.Link(day.Prev().Name())},
		)
	}
	if feats.Events {
		region := &Region{ID: RegionEvents}
		for _, e := range evts.Matching(day.Date) {
			region.Lines = append(region.Lines, e.ContentLines()...)
		}
		s.Region = region
	}
	return s
}

// WeekPage computes the desired state of a week page.
func WeekPage(week period.Week, feats features.Week) DesiredState {
	var s DesiredState
	if feats.LinkToMonth {
		s.Properties = append(s.Properties, Property{"month", wikilink.Link(week.Month().Name())})
	}
	if feats.NavLink {
		s.Properties = append(s.Properties,
			Property{"next", wikilink.Link(week.Next().Name())},
			Property{"prev", wikilink.Link(week.Prev().Name())},
		)
	}
	if feats.Week {
		region := &Region{ID: RegionDays}
		for _, d := range week.Days() {
			region.Lines = append(region.Lines, dayLine(d.WeekdayName(), d.String()))
		}
		s.Region = region
	}
	return s
}

// MonthPage computes the desired state of a month page. The day list is
// grouped under week headings, one at the start of the month and one on
// each Monday.
func MonthPage(month period.Month, feats features.Month) DesiredState {
	var s DesiredState
	if feats.NavLink {
		s.Properties = append(s.Properties,
			Property{"next", wikilink.Link(month.Next().Name())},
			Property{"prev", wikilink.Link(month.Prev().Name())},
		)
	}
	if feats.Month {
		region := &Region{ID: RegionDays}
		for i, d := range month.Days() {
			if i == 0 || d.Weekday() == time.Monday {
				week := period.WeekOf(d)
				region.Lines = append(region.Lines, fmt.Sprintf("#### %s", wikilink.Link(week.Name())))
			}
			region.Lines = append(region.Lines, dayLine(d.WeekdayName(), d.String()))
		}
		s.Region = region
	}
	return s
}

// YearPage computes the desired state of a year page.
func YearPage(year period.Year, feats features.Year) DesiredState {
	var s DesiredState
	if feats.NavLink {
		s.Properties = append(s.Properties,
			Property{"next", wikilink.Link(year.Next().Name())},
			Property{"prev", wikilink.Link(year.Prev().Name())},
		)
	}
	if feats.Month {
		region := &Region{ID: RegionMonths}
		for _, m := range year.Months() {
			region.Lines = append(region.Lines, fmt.Sprintf("- %s", wikilink.Link(m.Name())))
		}
		s.Region = region
	}
	return s
}

func dayLine(weekday, date string) string {
	return fmt.Sprintf("- %s %s", weekday, wikilink.Embed(date))
}
