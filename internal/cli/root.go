// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/saga/internal/dates"
	"github.com/aidanlsb/saga/internal/features"
	"github.com/aidanlsb/saga/internal/prepare"
	"github.com/aidanlsb/saga/internal/ui"
	"github.com/aidanlsb/saga/internal/vault"
)

// rootFlags holds the root command's flag values for one invocation.
type rootFlags struct {
	vaultPath string
	fromArg   string
	toArg     string

	dayOptions   []string
	weekOptions  []string
	monthOptions []string
	yearOptions  []string

	noDayPage   bool
	noWeekPage  bool
	noMonthPage bool
	noYearPage  bool

	verbosity int
	quiet     bool
}

// newRootCmd builds the base command with fresh flag state.
func newRootCmd() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "saga",
		Short: "Saga - calendar pages for markdown vaults",
		Long: `Saga keeps a vault's calendar hierarchy in sync: day pages plus the
week, month and year pages they roll up into, over any date range.

Generated links and listings live in frontmatter properties and marked
regions, so your own notes on the same pages are never touched and re-runs
change nothing unless the calendar does.

Named for the Norse sagas: one entry at a time, a year at a time.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrepare(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.vaultPath, "path", "p", "", "path to the vault root (required)")
	flags.StringVar(&f.fromArg, "from", "today", "first date to prepare (YYYY-MM-DD or today/yesterday/tomorrow)")
	flags.StringVar(&f.toArg, "to", "", "last date to prepare (default: one month after --from)")

	flags.StringSliceVar(&f.dayOptions, "day", nil, "day page features (day,week,month,nav,events)")
	flags.StringSliceVar(&f.weekOptions, "week", nil, "week page features (week,month,nav)")
	flags.StringSliceVar(&f.monthOptions, "month", nil, "month page features (month,nav)")
	flags.StringSliceVar(&f.yearOptions, "year", nil, "year page features (month,nav)")

	flags.BoolVar(&f.noDayPage, "no-day-page", false, "do not touch day pages")
	flags.BoolVar(&f.noWeekPage, "no-week-page", false, "do not touch week pages")
	flags.BoolVar(&f.noMonthPage, "no-month-page", false, "do not touch month pages")
	flags.BoolVar(&f.noYearPage, "no-year-page", false, "do not touch year pages")

	flags.CountVarP(&f.verbosity, "verbose", "v", "list pages as they are written (-vv includes unchanged pages)")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "suppress everything but errors")

	_ = cmd.MarkFlagRequired("path")
	cmd.MarkFlagsMutuallyExclusive("day", "no-day-page")
	cmd.MarkFlagsMutuallyExclusive("week", "no-week-page")
	cmd.MarkFlagsMutuallyExclusive("month", "no-month-page")
	cmd.MarkFlagsMutuallyExclusive("year", "no-year-page")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newDocsCmd())

	return cmd
}

func runPrepare(cmd *cobra.Command, f *rootFlags) error {
	now := time.Now()

	from, err := dates.ParseArg(f.fromArg, now)
	if err != nil {
		return err
	}
	to := dates.FromTime(from.Time().AddDate(0, 1, 0))
	if cmd.Flags().Changed("to") {
		if to, err = dates.ParseArg(f.toArg, now); err != nil {
			return err
		}
	}

	v, err := vault.Open(f.vaultPath)
	if err != nil {
		return err
	}

	feats, err := features.Resolve(v.Settings(), overridesFromFlags(cmd.Flags(), f))
	if err != nil {
		return err
	}

	opts := prepare.Options{From: from, To: to, Features: feats}
	if f.verbosity > 0 && !f.quiet {
		opts.Progress = func(page string, written bool) {
			if written {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", ui.SymbolSuccess, ui.PagePath(page))
			} else if f.verbosity > 1 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Hint("  unchanged "+page))
			}
		}
	}

	summary, err := prepare.Run(v, opts)
	if err != nil {
		return err
	}

	for _, skip := range summary.Skipped {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warningf("skipped %s: %v", skip.Page, skip.Err))
	}

	if !f.quiet {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("%s written, %s unchanged (%s to %s)",
			ui.Count(summary.Written, "page"),
			ui.Count(summary.Unchanged, "page"),
			from, to))
	}

	if summary.Failed() {
		return fmt.Errorf("%s could not be processed", ui.Count(len(summary.Skipped), "page"))
	}
	return nil
}

// overridesFromFlags builds the CLI layer of the feature resolution. Option
// slices stay nil unless their flag was given, keeping "absent" distinct
// from "explicitly empty".
func overridesFromFlags(flags *pflag.FlagSet, f *rootFlags) features.Overrides {
	var o features.Overrides
	if flags.Changed("day") {
		o.Day = nonNil(f.dayOptions)
	}
	if flags.Changed("week") {
		o.Week = nonNil(f.weekOptions)
	}
	if flags.Changed("month") {
		o.Month = nonNil(f.monthOptions)
	}
	if flags.Changed("year") {
		o.Year = nonNil(f.yearOptions)
	}
	o.NoDay = f.noDayPage
	o.NoWeek = f.noWeekPage
	o.NoMonth = f.noMonthPage
	o.NoYear = f.noYearPage
	return o
}

// nonNil keeps an explicitly given but empty option list distinguishable
// from an absent flag.
func nonNil(opts []string) []string {
	if opts == nil {
		return []string{}
	}
	return opts
}

// Execute runs the CLI.
func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}
