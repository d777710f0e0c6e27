package features

import (
	"fmt"
	"strings"
)

// Overrides carries the explicit CLI layer, the highest-precedence source.
// A nil option slice means the flag was not given; a non-nil (possibly empty)
// slice means the user specified the page's toggles exhaustively.
type Overrides struct {
	Day   []string
	Week  []string
	Month []string
	Year  []string

	NoDay   bool
	NoWeek  bool
	NoMonth bool
	NoYear  bool
}

// Option names accepted by the per-page CLI flags.
var (
	DayOptions   = []string{"day", "week", "month", "nav", "events"}
	WeekOptions  = []string{"week", "month", "nav"}
	MonthOptions = []string{"month", "nav"}
	YearOptions  = []string{"month", "nav"}
)

// Resolve merges the three configuration sources into one definite feature
// set: CLI overrides win over the vault configuration block, which wins over
// the built-in defaults. A page's kill switch zeroes its toggles regardless
// of the other layers. Unknown option names are a configuration error.
func Resolve(vault *Settings, cli Overrides) (Set, error) {
	set := Defaults()

	if vault != nil {
		applySettings(&set, vault)
	}

	if err := applyOverrides(&set, cli); err != nil {
		return Set{}, err
	}

	return set, nil
}

// applySettings overlays the vault configuration block onto the defaults,
// toggle by toggle.
func applySettings(set *Set, vault *Settings) {
	if d := vault.Day; d != nil {
		set.Day.DayOfWeek = overlay(set.Day.DayOfWeek, d.DayOfWeek)
		set.Day.LinkToWeek = overlay(set.Day.LinkToWeek, d.LinkToWeek)
		set.Day.LinkToMonth = overlay(set.Day.LinkToMonth, d.LinkToMonth)
		set.Day.NavLink = overlay(set.Day.NavLink, d.NavLink)
		set.Day.Events = overlay(set.Day.Events, d.Events)
	}
	if w := vault.Week; w != nil {
		set.Week.Week = overlay(set.Week.Week, w.Week)
		set.Week.LinkToMonth = overlay(set.Week.LinkToMonth, w.LinkToMonth)
		set.Week.NavLink = overlay(set.Week.NavLink, w.NavLink)
	}
	if m := vault.Month; m != nil {
		set.Month.Month = overlay(set.Month.Month, m.Month)
		set.Month.NavLink = overlay(set.Month.NavLink, m.NavLink)
	}
	if y := vault.Year; y != nil {
		set.Year.Month = overlay(set.Year.Month, y.Month)
		set.Year.NavLink = overlay(set.Year.NavLink, y.NavLink)
	}
}

func applyOverrides(set *Set, cli Overrides) error {
	switch {
	case cli.NoDay:
		set.Day = Day{}
	case cli.Day != nil:
		day := Day{}
		for _, opt := range cli.Day {
			switch opt {
			case "day":
				day.DayOfWeek = true
			case "week":
				day.LinkToWeek = true
			case "month":
				day.LinkToMonth = true
			case "nav":
				day.NavLink = true
			case "events":
				day.Events = true
			default:
				return unknownOption("day", opt, DayOptions)
			}
		}
		set.Day = day
	}

	switch {
	case cli.NoWeek:
		set.Week = Week{}
	case cli.Week != nil:
		week := Week{}
		for _, opt := range cli.Week {
			switch opt {
			case "week":
				week.Week = true
			case "month":
				week.LinkToMonth = true
			case "nav":
				week.NavLink = true
			default:
				return unknownOption("week", opt, WeekOptions)
			}
		}
		set.Week = week
	}

	switch {
	case cli.NoMonth:
		set.Month = Month{}
	case cli.Month != nil:
		month := Month{}
		for _, opt := range cli.Month {
			switch opt {
			case "month":
				month.Month = true
			case "nav":
				month.NavLink = true
			default:
				return unknownOption("month", opt, MonthOptions)
			}
		}
		set.Month = month
	}

	switch {
	case cli.NoYear:
		set.Year = Year{}
	case cli.Year != nil:
		year := Year{}
		for _, opt := range cli.Year {
			switch opt {
			case "month":
				year.Month = true
			case "nav":
				year.NavLink = true
			default:
				return unknownOption("year", opt, YearOptions)
			}
		}
		set.Year = year
	}

	return nil
}

func unknownOption(page, opt string, valid []string) error {
	return fmt.Errorf("unknown %s page option %q (valid: %s)", page, opt, strings.Join(valid, ", "))
}
