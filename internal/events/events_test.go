package events

import (
	"strings"
	"testing"

	"github.com/aidanlsb/saga/internal/dates"
)

func mustDate(t *testing.T, s string) dates.Date {
	t.Helper()
	d, err := dates.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return d
}

func mustEvent(t *testing.T, block string) *Event {
	t.Helper()
	anchor := dates.New(2025, 1, 1)
	e, err := Parse(block, anchor)
	if err != nil {
		t.Fatalf("Parse event: %v\nblock:\n%s", err, block)
	}
	return e
}

func TestDailyEvent(t *testing.T) {
	e := mustEvent(t, `
frequency = "daily"
content = "- [ ] Stretch"
`)

	for _, day := range []string{"2025-01-01", "2025-06-15", "2025-12-31"} {
		if !e.Matches(mustDate(t, day)) {
			t.Errorf("daily event should match %s", day)
		}
	}
}

func TestWeeklyEvent(t *testing.T) {
	e := mustEvent(t, `
frequency = "weekly"
weekdays = ["monday", "thursday"]
content = "- [ ] Water plants"
`)

	cases := []struct {
		day   string
		wants bool
	}{
		{"2025-12-08", true},  // Monday
		{"2025-12-11", true},  // Thursday
		{"2025-12-09", false}, // Tuesday
		{"2025-12-14", false}, // Sunday
	}
	for _, tc := range cases {
		if got := e.Matches(mustDate(t, tc.day)); got != tc.wants {
			t.Errorf("Matches(%s) = %v, want %v", tc.day, got, tc.wants)
		}
	}
}

func TestMonthlyByMonthday(t *testing.T) {
	e := mustEvent(t, `
frequency = "monthly"
monthdays = [1, 15]
content = "- [ ] Pay rent"
`)

	if !e.Matches(mustDate(t, "2025-03-01")) {
		t.Error("should match the 1st")
	}
	if !e.Matches(mustDate(t, "2025-03-15")) {
		t.Error("should match the 15th")
	}
	if e.Matches(mustDate(t, "2025-03-02")) {
		t.Error("should not match the 2nd")
	}
}

func TestMonthlyRelative(t *testing.T) {
	second := mustEvent(t, `
frequency = "monthly"
weekdays = ["tuesday"]
index = "second"
content = "- [ ] Team retro"
`)

	// December 2025: Tuesdays fall on 2, 9, 16, 23, 30.
	if !second.Matches(mustDate(t, "2025-12-09")) {
		t.Error("should match the second Tuesday")
	}
	for _, day := range []string{"2025-12-02", "2025-12-16", "2025-12-10"} {
		if second.Matches(mustDate(t, day)) {
			t.Errorf("should not match %s", day)
		}
	}

	last := mustEvent(t, `
frequency = "monthly"
weekdays = ["friday"]
index = "last"
content = "- [ ] Month wrap-up"
`)

	// December 2025: Fridays fall on 5, 12, 19, 26.
	if !last.Matches(mustDate(t, "2025-12-26")) {
		t.Error("should match the last Friday")
	}
	if last.Matches(mustDate(t, "2025-12-19")) {
		t.Error("should not match an earlier Friday")
	}
}

func TestMonthlyDefaultsToFirst(t *testing.T) {
	e := mustEvent(t, `
frequency = "monthly"
weekdays = ["monday"]
content = "- [ ] Plan the month"
`)

	// December 2025: Mondays fall on 1, 8, 15, 22, 29.
	if !e.Matches(mustDate(t, "2025-12-01")) {
		t.Error("missing index should mean the first occurrence")
	}
	if e.Matches(mustDate(t, "2025-12-08")) {
		t.Error("should not match the second Monday")
	}
}

func TestYearlyEvent(t *testing.T) {
	e := mustEvent(t, `
frequency = "yearly"
yeardays = [1, 60]
content = "- [ ] Review goals"
`)

	if !e.Matches(mustDate(t, "2025-01-01")) {
		t.Error("should match yearday 1")
	}
	if !e.Matches(mustDate(t, "2025-03-01")) { // day 60 of a common year
		t.Error("should match yearday 60")
	}
	if e.Matches(mustDate(t, "2025-01-02")) {
		t.Error("should not match yearday 2")
	}
}

func TestOnceEvent(t *testing.T) {
	e := mustEvent(t, `
frequency = "once"
dates = ["2025-12-08", "2026-01-02"]
content = "- [ ] Dentist"
`)

	if !e.Matches(mustDate(t, "2025-12-08")) || !e.Matches(mustDate(t, "2026-01-02")) {
		t.Error("should match its listed dates")
	}
	if e.Matches(mustDate(t, "2025-12-09")) {
		t.Error("should not match other dates")
	}
}

func TestValidityBounds(t *testing.T) {
	e := mustEvent(t, `
frequency = "daily"
from = "2025-06-01"
to = "2025-06-30"
content = "- [ ] Summer routine"
`)

	if e.Matches(mustDate(t, "2025-05-31")) {
		t.Error("should not match before `from`")
	}
	if !e.Matches(mustDate(t, "2025-06-01")) || !e.Matches(mustDate(t, "2025-06-30")) {
		t.Error("bounds are inclusive")
	}
	if e.Matches(mustDate(t, "2025-07-01")) {
		t.Error("should not match after `to`")
	}
}

func TestExceptions(t *testing.T) {
	e := mustEvent(t, `
frequency = "weekly"
weekdays = ["monday"]
content = "- [ ] Standup"

[[exceptions]]
from = "2025-12-22"
to = "2026-01-04"
`)

	if !e.Matches(mustDate(t, "2025-12-15")) {
		t.Error("should match before the exception window")
	}
	for _, day := range []string{"2025-12-22", "2025-12-29"} {
		if e.Matches(mustDate(t, day)) {
			t.Errorf("%s falls in an exception range", day)
		}
	}
	if !e.Matches(mustDate(t, "2026-01-05")) {
		t.Error("should match again after the exception window")
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		block string
		want  string
	}{
		{
			name:  "missing content",
			block: "frequency = \"daily\"",
			want:  "no content",
		},
		{
			name:  "missing frequency",
			block: "content = \"x\"",
			want:  "no frequency",
		},
		{
			name:  "unknown frequency",
			block: "frequency = \"hourly\"\ncontent = \"x\"",
			want:  "unknown frequency",
		},
		{
			name:  "daily with weekdays",
			block: "frequency = \"daily\"\nweekdays = [\"monday\"]\ncontent = \"x\"",
			want:  "not allowed for daily",
		},
		{
			name:  "weekly without weekdays",
			block: "frequency = \"weekly\"\ncontent = \"x\"",
			want:  "`weekdays` must be specified",
		},
		{
			name:  "weekly with dates",
			block: "frequency = \"weekly\"\nweekdays = [\"monday\"]\ndates = [\"2025-01-01\"]\ncontent = \"x\"",
			want:  "not allowed for weekly",
		},
		{
			name:  "monthly without selector",
			block: "frequency = \"monthly\"\ncontent = \"x\"",
			want:  "either `monthdays` or `weekdays`",
		},
		{
			name:  "monthly bad monthday",
			block: "frequency = \"monthly\"\nmonthdays = [32]\ncontent = \"x\"",
			want:  "monthday 32 is invalid",
		},
		{
			name:  "monthly bad index",
			block: "frequency = \"monthly\"\nweekdays = [\"monday\"]\nindex = \"fifth\"\ncontent = \"x\"",
			want:  "unknown index",
		},
		{
			name:  "yearly without yeardays",
			block: "frequency = \"yearly\"\ncontent = \"x\"",
			want:  "`yeardays` must be specified",
		},
		{
			name:  "yearly bad yearday",
			block: "frequency = \"yearly\"\nyeardays = [400]\ncontent = \"x\"",
			want:  "yearday 400 is invalid",
		},
		{
			name:  "once without dates",
			block: "frequency = \"once\"\ncontent = \"x\"",
			want:  "`dates` must be specified",
		},
		{
			name:  "once bad date",
			block: "frequency = \"once\"\ndates = [\"2025-13-40\"]\ncontent = \"x\"",
			want:  "",
		},
		{
			name:  "unknown weekday",
			block: "frequency = \"weekly\"\nweekdays = [\"moonday\"]\ncontent = \"x\"",
			want:  "unknown weekday",
		},
		{
			name:  "not toml",
			block: "frequency = ",
			want:  "parsing event block",
		},
	}

	anchor := dates.New(2025, 1, 1)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.block, anchor)
			if err == nil {
				t.Fatal("expected an error")
			}
			if tc.want != "" && !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestContentLines(t *testing.T) {
	e := mustEvent(t, `
frequency = "daily"
content = """- [ ] Morning pages
- [ ] Inbox zero
"""
`)

	lines := e.ContentLines()
	want := []string{"- [ ] Morning pages", "- [ ] Inbox zero"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestMatchingOrdersExactDatesFirst(t *testing.T) {
	weekly := mustEvent(t, `
frequency = "weekly"
weekdays = ["monday"]
content = "- [ ] Standup"
`)
	once := mustEvent(t, `
frequency = "once"
dates = ["2025-12-08"]
content = "- [ ] Dentist"
`)
	list := List{weekly, once}

	got := list.Matching(mustDate(t, "2025-12-08"))
	if len(got) != 2 {
		t.Fatalf("got %d matches, want 2", len(got))
	}
	if got[0] != once || got[1] != weekly {
		t.Error("exact-date matches should come first")
	}

	got = list.Matching(mustDate(t, "2025-12-15"))
	if len(got) != 1 || got[0] != weekly {
		t.Fatalf("only the weekly event should match: %v", got)
	}
}
