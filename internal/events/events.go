// Package events implements the recurring-events collaborator consumed by
// the day page generator. Event descriptors are fenced TOML blocks inside
// designated vault pages:
//
//	```toml
//	frequency = "weekly"
//	weekdays = ["monday"]
//	content = "- [ ] Weekly review"
//	```
//
// Supported frequencies: daily, weekly (weekdays), monthly (monthdays, or
// weekdays plus an index for "first Monday" style rules), yearly (yeardays)
// and once (explicit dates). Optional validity bounds (from/to, inclusive)
// and exception ranges suppress matches without changing the pattern.
package events

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/teambition/rrule-go"

	"github.com/aidanlsb/saga/internal/dates"
)

// Frequency is an event's recurrence class.
type Frequency string

// Recognized frequency values.
const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
	Once    Frequency = "once"
)

// Event is one recurring event descriptor, immutable once parsed.
type Event struct {
	// Content is the literal text written into a matching day page's
	// events region. It may span multiple lines.
	Content string

	frequency  Frequency
	rule       *rrule.RRule // nil when frequency is Once
	dates      []dates.Date // set when frequency is Once
	validity   Range
	exceptions []Range
}

// Range is an inclusive date range; an unset bound is open.
type Range struct {
	From *dates.Date
	To   *dates.Date
}

// Contains reports whether the range includes the given date.
func (r Range) Contains(d dates.Date) bool {
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

// Frequency returns the event's recurrence class.
func (e *Event) Frequency() Frequency { return e.frequency }

// ContentLines splits the event content into region lines.
func (e *Event) ContentLines() []string {
	return strings.Split(strings.TrimRight(e.Content, "\n"), "\n")
}

// Matches reports whether the event occurs on the given date. The date must
// not precede the anchor the event was parsed with.
func (e *Event) Matches(d dates.Date) bool {
	if !e.validity.Contains(d) {
		return false
	}
	for _, ex := range e.exceptions {
		if ex.Contains(d) {
			return false
		}
	}

	if e.frequency == Once {
		for _, od := range e.dates {
			if od == d {
				return true
			}
		}
		return false
	}

	t := d.Time()
	return len(e.rule.Between(t, t, true)) > 0
}

// List is the full set of events loaded for a run.
type List []*Event

// Matching returns the events occurring on the given date. Exact-date
// (once) entries are favored: they come first, ahead of recurring matches,
// but no matching entry is dropped.
func (l List) Matching(d dates.Date) []*Event {
	var exact, recurring []*Event
	for _, e := range l {
		if !e.Matches(d) {
			continue
		}
		if e.frequency == Once {
			exact = append(exact, e)
		} else {
			recurring = append(recurring, e)
		}
	}
	return append(exact, recurring...)
}

// descriptor is the raw TOML shape of an event block.
type descriptor struct {
	Frequency  string            `toml:"frequency"`
	Weekdays   []string          `toml:"weekdays"`
	Monthdays  []int             `toml:"monthdays"`
	Yeardays   []int             `toml:"yeardays"`
	Dates      []string          `toml:"dates"`
	Index      string            `toml:"index"`
	Content    string            `toml:"content"`
	From       string            `toml:"from"`
	To         string            `toml:"to"`
	Exceptions []rangeDescriptor `toml:"exceptions"`
}

type rangeDescriptor struct {
	From string `toml:"from"`
	To   string `toml:"to"`
}

// Parse parses one TOML event block. The anchor must not be after any date
// the event will be queried with; it seeds the recurrence rule's start,
// which is safe because every supported rule has an interval of one.
func Parse(block string, anchor dates.Date) (*Event, error) {
	var desc descriptor
	if err := toml.Unmarshal([]byte(block), &desc); err != nil {
		return nil, fmt.Errorf("parsing event block: %w", err)
	}
	return desc.compile(anchor)
}

func (desc descriptor) compile(anchor dates.Date) (*Event, error) {
	if desc.Content == "" {
		return nil, fmt.Errorf("event has no content")
	}

	e := &Event{
		Content:   desc.Content,
		frequency: Frequency(desc.Frequency),
	}

	var err error
	if e.validity, err = parseRange(rangeDescriptor{From: desc.From, To: desc.To}); err != nil {
		return nil, err
	}
	for _, ex := range desc.Exceptions {
		r, err := parseRange(ex)
		if err != nil {
			return nil, fmt.Errorf("exception: %w", err)
		}
		e.exceptions = append(e.exceptions, r)
	}

	opt := rrule.ROption{Dtstart: anchor.Time()}

	switch e.frequency {
	case Daily:
		if err := forbid(desc, "daily", fieldWeekdays|fieldMonthdays|fieldYeardays|fieldDates); err != nil {
			return nil, err
		}
		opt.Freq = rrule.DAILY

	case Weekly:
		if err := forbid(desc, "weekly", fieldMonthdays|fieldYeardays|fieldDates); err != nil {
			return nil, err
		}
		if len(desc.Weekdays) == 0 {
			return nil, fmt.Errorf("`weekdays` must be specified for weekly events")
		}
		opt.Freq = rrule.WEEKLY
		if opt.Byweekday, err = parseWeekdays(desc.Weekdays, 0); err != nil {
			return nil, err
		}

	case Monthly:
		if err := forbid(desc, "monthly", fieldYeardays|fieldDates); err != nil {
			return nil, err
		}
		opt.Freq = rrule.MONTHLY
		switch {
		case len(desc.Weekdays) > 0:
			// Relative rule: the Nth given weekday of each month.
			nth, err := parseIndex(desc.Index)
			if err != nil {
				return nil, err
			}
			if opt.Byweekday, err = parseWeekdays(desc.Weekdays, nth); err != nil {
				return nil, err
			}
		case len(desc.Monthdays) > 0:
			for _, day := range desc.Monthdays {
				if day < 1 || day > 31 {
					return nil, fmt.Errorf("monthday %d is invalid", day)
				}
			}
			opt.Bymonthday = desc.Monthdays
		default:
			return nil, fmt.Errorf("either `monthdays` or `weekdays` must be specified for monthly events")
		}

	case Yearly:
		if err := forbid(desc, "yearly", fieldWeekdays|fieldMonthdays|fieldDates); err != nil {
			return nil, err
		}
		if len(desc.Yeardays) == 0 {
			return nil, fmt.Errorf("`yeardays` must be specified for yearly events")
		}
		for _, day := range desc.Yeardays {
			if day < 1 || day > 366 {
				return nil, fmt.Errorf("yearday %d is invalid", day)
			}
		}
		opt.Freq = rrule.YEARLY
		opt.Byyearday = desc.Yeardays

	case Once:
		if err := forbid(desc, "once", fieldWeekdays|fieldMonthdays|fieldYeardays); err != nil {
			return nil, err
		}
		if len(desc.Dates) == 0 {
			return nil, fmt.Errorf("`dates` must be specified for once events")
		}
		for _, s := range desc.Dates {
			d, err := dates.Parse(s)
			if err != nil {
				return nil, err
			}
			e.dates = append(e.dates, d)
		}
		return e, nil

	case "":
		return nil, fmt.Errorf("event has no frequency")
	default:
		return nil, fmt.Errorf("unknown frequency %q", desc.Frequency)
	}

	if e.rule, err = rrule.NewRRule(opt); err != nil {
		return nil, fmt.Errorf("building recurrence rule: %w", err)
	}
	return e, nil
}

type fieldMask int

const (
	fieldWeekdays fieldMask = 1 << iota
	fieldMonthdays
	fieldYeardays
	fieldDates
)

func forbid(desc descriptor, freq string, mask fieldMask) error {
	if mask&fieldWeekdays != 0 && len(desc.Weekdays) > 0 {
		return fmt.Errorf("`weekdays` not allowed for %s events", freq)
	}
	if mask&fieldMonthdays != 0 && len(desc.Monthdays) > 0 {
		return fmt.Errorf("`monthdays` not allowed for %s events", freq)
	}
	if mask&fieldYeardays != 0 && len(desc.Yeardays) > 0 {
		return fmt.Errorf("`yeardays` not allowed for %s events", freq)
	}
	if mask&fieldDates != 0 && len(desc.Dates) > 0 {
		return fmt.Errorf("`dates` not allowed for %s events", freq)
	}
	return nil
}

var weekdayNames = map[string]rrule.Weekday{
	"monday":    rrule.MO,
	"tuesday":   rrule.TU,
	"wednesday": rrule.WE,
	"thursday":  rrule.TH,
	"friday":    rrule.FR,
	"saturday":  rrule.SA,
	"sunday":    rrule.SU,
}

// parseWeekdays maps weekday names to rule weekdays; a non-zero nth makes
// each of them relative ("the nth such weekday of the month").
func parseWeekdays(names []string, nth int) ([]rrule.Weekday, error) {
	out := make([]rrule.Weekday, 0, len(names))
	for _, name := range names {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		if nth != 0 {
			wd = wd.Nth(nth)
		}
		out = append(out, wd)
	}
	return out, nil
}

// parseIndex maps a relative-monthly index to its rule offset; an unset
// index defaults to the first occurrence.
func parseIndex(index string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(index)) {
	case "", "first":
		return 1, nil
	case "second":
		return 2, nil
	case "third":
		return 3, nil
	case "fourth":
		return 4, nil
	case "last":
		return -1, nil
	default:
		return 0, fmt.Errorf("unknown index %q (valid: first, second, third, fourth, last)", index)
	}
}

func parseRange(desc rangeDescriptor) (Range, error) {
	var r Range
	if desc.From != "" {
		d, err := dates.Parse(desc.From)
		if err != nil {
			return Range{}, err
		}
		r.From = &d
	}
	if desc.To != "" {
		d, err := dates.Parse(desc.To)
		if err != nil {
			return Range{}, err
		}
		r.To = &d
	}
	return r, nil
}
