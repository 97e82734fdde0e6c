package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/calgrid/internal/calendar"
)

type monthOptions struct {
	jsonOutput  bool
	weekStart   string
	weekNumbers bool
	months      int
	locale      string
}

func newMonthCmd(rootFlags *rootFlags) *cobra.Command {
	opts := &monthOptions{}

	cmd := &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Print month grids with the stored selection marked",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonth(cmd, rootFlags, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output grids as JSON")
	cmd.Flags().StringVar(&opts.weekStart, "week-start", "", "First day of the week (name or 0-6, 0 is Sunday)")
	cmd.Flags().BoolVar(&opts.weekNumbers, "week-numbers", false, "Show ISO week numbers")
	cmd.Flags().IntVar(&opts.months, "months", 0, "Number of consecutive months to print (1-12)")
	cmd.Flags().StringVar(&opts.locale, "locale", "", "Locale for month and day names")

	return cmd
}

func runMonth(cmd *cobra.Command, rootFlags *rootFlags, args []string, opts *monthOptions) error {
	app, err := loadAppContext("print month", rootFlags)
	if err != nil {
		return err
	}
	defer app.Close()

	settings := app.Options
	if opts.weekStart != "" {
		if settings.WeekStart, err = calendar.ParseWeekday(opts.weekStart); err != nil {
			return newCommandError("print month", "parsing --week-start", err, "Use a weekday name such as monday, or a number from 0 (Sunday) to 6.")
		}
	}
	if cmd.Flags().Changed("week-numbers") {
		settings.ShowWeekNumbers = opts.weekNumbers
	}
	if cmd.Flags().Changed("months") {
		if opts.months < 1 || opts.months > 12 {
			return newCommandError("print month", "parsing --months", fmt.Errorf("%d is out of range", opts.months), "Pick between 1 and 12 months.")
		}
		settings.NumberOfMonths = opts.months
	}
	if opts.locale != "" {
		if !calendar.IsSupportedLocale(opts.locale) {
			return newCommandError("print month", "parsing --locale", fmt.Errorf("unsupported locale %q", opts.locale), fmt.Sprintf("Use one of %v.", calendar.SupportedLocales()))
		}
		settings.Locale = opts.locale
	}

	state, _, err := app.LoadState(cmd.Context())
	if err != nil {
		return newCommandError("print month", "loading stored selection", err, "Check storage.path permissions and try again.")
	}

	start := calendar.InitialMonth(settings.DefaultMonth, state.Selection, app.Builder.Today())
	if len(args) == 1 {
		if start, err = calendar.ParseMonth(args[0]); err != nil {
			return newCommandError("print month", "parsing month argument", err, "Pass the month as YYYY-MM, for example 2025-01.")
		}
	}

	grids := app.Builder.BuildMonths(start, settings.NumberOfMonths, settings.WeekStart, settings.ShowWeekNumbers)
	if opts.jsonOutput {
		return renderMonthJSON(cmd.OutOrStdout(), grids, state.Selection, settings.Constraints, settings.Locale)
	}

	return renderMonthTable(cmd.OutOrStdout(), grids, state.Selection, settings.Constraints, tableOptions{
		locale:      settings.Locale,
		weekNumbers: settings.ShowWeekNumbers,
		markers:     markersFor(cmd.OutOrStdout()),
	})
}
