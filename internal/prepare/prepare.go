// Package prepare drives a synchronization run: it walks the date range,
// visits every day page and each distinct week, month and year page exactly
// once, and reconciles each with its generated state. Files are only
// rewritten when their bytes would change.
package prepare

import (
	"fmt"

	"github.com/aidanlsb/saga/internal/dates"
	"github.com/aidanlsb/saga/internal/events"
	"github.com/aidanlsb/saga/internal/features"
	"github.com/aidanlsb/saga/internal/generate"
	"github.com/aidanlsb/saga/internal/merge"
	"github.com/aidanlsb/saga/internal/period"
	"github.com/aidanlsb/saga/internal/vault"
)

// Options configures a run.
type Options struct {
	From     dates.Date
	To       dates.Date
	Features features.Set

	// Progress, when set, is called after every page visit with the page's
	// vault-relative path.
	Progress func(page string, written bool)
}

// Skip records a page that could not be processed. The run continues past
// skipped pages; they are reported at the end.
type Skip struct {
	Page string
	Err  error
}

// Summary is the outcome of a run.
type Summary struct {
	Written   int
	Unchanged int
	Skipped   []Skip
}

// Failed reports whether any page had to be skipped.
func (s *Summary) Failed() bool { return len(s.Skipped) > 0 }

type preparer struct {
	vault   *vault.Vault
	events  events.List
	opts    Options
	summary Summary
}

// Run synchronizes the vault's calendar pages over [From, To]. Input and
// configuration problems surface before any page is written; after that,
// a page that cannot be read, parsed or written is skipped and recorded
// while the run continues.
func Run(v *vault.Vault, opts Options) (*Summary, error) {
	if opts.To.Before(opts.From) {
		return nil, fmt.Errorf("invalid range: %s is before %s", opts.To, opts.From)
	}

	evts, err := v.LoadEvents(opts.From)
	if err != nil {
		return nil, err
	}

	p := &preparer{vault: v, events: evts, opts: opts}

	var lastWeek, lastMonth, lastYear string
	for d := opts.From; !d.After(opts.To); d = d.AddDays(1) {
		day := period.DayOf(d)
		p.visit(day, generate.DayPage(day, opts.Features.Day, p.events))

		if week := period.WeekOf(d); week.Name() != lastWeek {
			lastWeek = week.Name()
			p.visit(week, generate.WeekPage(week, opts.Features.Week))
		}
		if month := period.MonthOf(d); month.Name() != lastMonth {
			lastMonth = month.Name()
			p.visit(month, generate.MonthPage(month, opts.Features.Month))
		}
		if year := period.YearOf(d); year.Name() != lastYear {
			lastYear = year.Name()
			p.visit(year, generate.YearPage(year, opts.Features.Year))
		}
	}

	return &p.summary, nil
}

// visit reconciles one page with its desired state. A fully disabled page
// type produces an empty state and is not touched at all, so a kill switch
// never creates files.
func (p *preparer) visit(pg period.Period, desired generate.DesiredState) {
	if desired.Empty() {
		return
	}

	page := p.vault.RelativePagePath(pg)

	doc, err := p.vault.LoadPage(pg)
	if err != nil {
		p.summary.Skipped = append(p.summary.Skipped, Skip{Page: page, Err: err})
		return
	}

	if !merge.Apply(doc, desired) {
		p.summary.Unchanged++
		p.report(page, false)
		return
	}

	if err := p.vault.WritePage(pg, doc); err != nil {
		p.summary.Skipped = append(p.summary.Skipped, Skip{Page: page, Err: err})
		return
	}
	p.summary.Written++
	p.report(page, true)
}

func (p *preparer) report(page string, written bool) {
	if p.opts.Progress != nil {
		p.opts.Progress(page, written)
	}
}
