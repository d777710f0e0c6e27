package prepare

import (
	"strings"
	"testing"

	"github.com/aidanlsb/saga/internal/dates"
	"github.com/aidanlsb/saga/internal/features"
	"github.com/aidanlsb/saga/internal/testutil"
	"github.com/aidanlsb/saga/internal/vault"
)

func openVault(t *testing.T, tv *testutil.TestVault) *vault.Vault {
	t.Helper()
	v, err := vault.Open(tv.Path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return v
}

func run(t *testing.T, v *vault.Vault, from, to dates.Date) *Summary {
	t.Helper()
	summary, err := Run(v, Options{From: from, To: to, Features: features.Defaults()})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return summary
}

func TestRunCreatesHierarchy(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	v := openVault(t, tv)

	summary := run(t, v, dates.New(2025, 12, 8), dates.New(2025, 12, 10))

	// Three days plus one week, one month, one year.
	if summary.Written != 6 {
		t.Errorf("Written = %d, want 6", summary.Written)
	}
	if summary.Failed() {
		t.Errorf("unexpected skips: %v", summary.Skipped)
	}

	tv.AssertFileExists("journals/2025-12-08.md")
	tv.AssertFileExists("journals/2025-12-09.md")
	tv.AssertFileExists("journals/2025-12-10.md")
	tv.AssertFileExists("2025/Week 50.md")
	tv.AssertFileExists("2025/December.md")
	tv.AssertFileExists("2025.md")

	tv.AssertFileContains("journals/2025-12-08.md",
		`day: "Monday"`,
		`week: "[[2025/Week 50]]"`,
		`month: "[[2025/December]]"`,
		`next: "[[2025-12-09]]"`,
		`prev: "[[2025-12-07]]"`,
		"<!-- saga:begin events -->",
		"<!-- saga:end events -->",
	)
	tv.AssertFileContains("2025/Week 50.md",
		`month: "[[2025/December]]"`,
		"- Monday {{embed [[2025-12-08]]}}",
		"- Sunday {{embed [[2025-12-14]]}}",
	)
	tv.AssertFileContains("2025/December.md",
		"#### [[2025/Week 50]]",
		"- Wednesday {{embed [[2025-12-31]]}}",
	)
	tv.AssertFileContains("2025.md", "- [[2025/January]]", "- [[2025/December]]")
}

func TestRunIsIdempotent(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	v := openVault(t, tv)

	from, to := dates.New(2025, 12, 8), dates.New(2025, 12, 14)
	first := run(t, v, from, to)
	day := tv.ReadFile("journals/2025-12-08.md")
	week := tv.ReadFile("2025/Week 50.md")

	second := run(t, v, from, to)
	if second.Written != 0 {
		t.Errorf("second run wrote %d pages", second.Written)
	}
	if second.Unchanged != first.Written {
		t.Errorf("second run: Unchanged = %d, want %d", second.Unchanged, first.Written)
	}
	if got := tv.ReadFile("journals/2025-12-08.md"); got != day {
		t.Error("day page changed on second run")
	}
	if got := tv.ReadFile("2025/Week 50.md"); got != week {
		t.Error("week page changed on second run")
	}
}

func TestRunVisitsEachPeriodOnce(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	v := openVault(t, tv)

	visits := map[string]int{}
	_, err := Run(v, Options{
		From:     dates.New(2024, 12, 30),
		To:       dates.New(2025, 1, 2),
		Features: features.Defaults(),
		Progress: func(page string, written bool) { visits[page]++ },
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// 2024-12-30 through 2025-01-02 all fall in ISO week 2025/Week 01.
	want := []string{
		"journals/2024-12-30.md", "journals/2024-12-31.md",
		"journals/2025-01-01.md", "journals/2025-01-02.md",
		"2025/Week 01.md",
		"2024/December.md", "2025/January.md",
		"2024.md", "2025.md",
	}
	if len(visits) != len(want) {
		t.Errorf("visited %d pages, want %d: %v", len(visits), len(want), visits)
	}
	for _, page := range want {
		if visits[page] != 1 {
			t.Errorf("%s visited %d times", page, visits[page])
		}
	}
}

func TestRunPreservesUserEdits(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithFile("journals/2025-12-08.md", `---
tags: [journal]
week: "stale"
---
Met Freya for coffee.

<!-- saga:begin events -->
- [ ] old generated entry
<!-- saga:end events -->

Evening reflections here.
`).
		Build()
	v := openVault(t, tv)

	run(t, v, dates.New(2025, 12, 8), dates.New(2025, 12, 8))

	tv.AssertFileContains("journals/2025-12-08.md",
		"tags: [journal]",
		"Met Freya for coffee.",
		"Evening reflections here.",
		`week: "[[2025/Week 50]]"`,
	)
	tv.AssertFileNotContains("journals/2025-12-08.md",
		`week: "stale"`,
		"old generated entry",
	)
}

func TestRunSkipsMalformedPages(t *testing.T) {
	bad := "---\n- not\nmap: [\n---\nbody\n"
	tv := testutil.NewTestVault(t).
		WithFile("journals/2025-12-08.md", bad).
		Build()
	v := openVault(t, tv)

	summary := run(t, v, dates.New(2025, 12, 8), dates.New(2025, 12, 9))

	if !summary.Failed() {
		t.Fatal("expected the malformed page to be skipped")
	}
	if len(summary.Skipped) != 1 || summary.Skipped[0].Page != "journals/2025-12-08.md" {
		t.Errorf("skips = %v", summary.Skipped)
	}
	if got := tv.ReadFile("journals/2025-12-08.md"); got != bad {
		t.Error("skipped page must not be modified")
	}

	// The rest of the run proceeds.
	tv.AssertFileExists("journals/2025-12-09.md")
	tv.AssertFileExists("2025/Week 50.md")
}

func TestRunInvalidRange(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	v := openVault(t, tv)

	_, err := Run(v, Options{
		From:     dates.New(2025, 12, 10),
		To:       dates.New(2025, 12, 8),
		Features: features.Defaults(),
	})
	if err == nil {
		t.Fatal("expected an error for an inverted range")
	}
}

func TestRunDisabledPageTypeCreatesNothing(t *testing.T) {
	tv := testutil.NewTestVault(t).Build()
	v := openVault(t, tv)

	feats := features.Defaults()
	feats.Day = features.Day{}
	feats.Year = features.Year{}

	_, err := Run(v, Options{
		From:     dates.New(2025, 12, 8),
		To:       dates.New(2025, 12, 10),
		Features: feats,
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	tv.AssertFileNotExists("journals/2025-12-08.md")
	tv.AssertFileNotExists("2025.md")
	tv.AssertFileExists("2025/Week 50.md")
	tv.AssertFileExists("2025/December.md")
}

func TestRunEventsAppearOnMatchingDays(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithConfig(`event_files = ["events/recurring.md"]
`).
		WithEventsPage("events/recurring.md", `
frequency = "weekly"
weekdays = ["monday"]
content = "- [ ] Standup"
`, `
frequency = "once"
dates = ["2025-12-08"]
content = "- [ ] Dentist"
`).
		Build()
	v := openVault(t, tv)

	run(t, v, dates.New(2025, 12, 8), dates.New(2025, 12, 9))

	day := tv.ReadFile("journals/2025-12-08.md")
	if !strings.Contains(day, "- [ ] Dentist\n- [ ] Standup") {
		t.Errorf("exact-date entry should precede the recurring one:\n%s", day)
	}
	tv.AssertFileNotContains("journals/2025-12-09.md", "Standup", "Dentist")
}

func TestRunFatalBeforeAnyWrite(t *testing.T) {
	tv := testutil.NewTestVault(t).
		WithConfig(`event_files = ["events/missing.md"]
`).
		Build()
	v := openVault(t, tv)

	_, err := Run(v, Options{
		From:     dates.New(2025, 12, 8),
		To:       dates.New(2025, 12, 10),
		Features: features.Defaults(),
	})
	if err == nil {
		t.Fatal("expected a fatal error for the missing events page")
	}
	tv.AssertFileNotExists("journals/2025-12-08.md")
	tv.AssertFileNotExists("2025/Week 50.md")
}
