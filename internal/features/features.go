// Package features defines the per-page-type generation toggles and their
// three-source resolution: built-in defaults, the vault configuration block,
// and explicit CLI flags, in increasing order of precedence.
//
// The layered sources are tri-state (a toggle can be unset, explicitly false,
// or explicitly true); the resolved Set is fully definite.
package features

// Day holds the resolved toggles for day pages.
type Day struct {
	DayOfWeek   bool
	LinkToWeek  bool
	LinkToMonth bool
	NavLink     bool
	Events      bool
}

// Week holds the resolved toggles for week pages.
type Week struct {
	Week        bool
	LinkToMonth bool
	NavLink     bool
}

// Month holds the resolved toggles for month pages.
type Month struct {
	Month   bool
	NavLink bool
}

// Year holds the resolved toggles for year pages.
type Year struct {
	Month   bool
	NavLink bool
}

// Set is the fully-resolved feature set for one run. It is computed once and
// treated as immutable afterwards.
type Set struct {
	Day   Day
	Week  Week
	Month Month
	Year  Year
}

// Empty reports whether every day page toggle is off, in which case the day
// generator is skipped entirely.
func (d Day) Empty() bool {
	return !(d.DayOfWeek || d.LinkToWeek || d.LinkToMonth || d.NavLink || d.Events)
}

// Empty reports whether every week page toggle is off.
func (w Week) Empty() bool {
	return !(w.Week || w.LinkToMonth || w.NavLink)
}

// Empty reports whether every month page toggle is off.
func (m Month) Empty() bool {
	return !(m.Month || m.NavLink)
}

// Empty reports whether every year page toggle is off.
func (y Year) Empty() bool {
	return !(y.Month || y.NavLink)
}

// Defaults returns the built-in feature set: everything on.
func Defaults() Set {
	return Set{
		Day:   Day{DayOfWeek: true, LinkToWeek: true, LinkToMonth: true, NavLink: true, Events: true},
		Week:  Week{Week: true, LinkToMonth: true, NavLink: true},
		Month: Month{Month: true, NavLink: true},
		Year:  Year{Month: true, NavLink: true},
	}
}
