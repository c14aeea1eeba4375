package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/username/invoicegen/internal/calendar"
	"github.com/username/invoicegen/pkg/dateutil"
)

const separator = "═══════════════════════════════════════════════════════"

func calendarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "UK bank holidays and working day arithmetic",
		Long:  "Query GOV.UK bank holidays and count working days for England & Wales, Scotland or Northern Ireland",
	}

	cmd.AddCommand(
		holidaysCmd(a),
		checkCmd(a),
		workingDaysCmd(a),
		monthCmd(a),
		stepCmd(a, "next-working-day", "Next working day strictly after DATE", 1),
		stepCmd(a, "previous-working-day", "Previous working day strictly before DATE", -1),
		addWorkingDaysCmd(a),
	)

	return cmd
}

func holidaysCmd(a *app) *cobra.Command {
	var fromStr string
	var toStr string

	cmd := &cobra.Command{
		Use:   "holidays [YEAR]",
		Short: "List bank holidays for a year or a date range",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := a.newCalendar("")
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if fromStr != "" || toStr != "" {
				if fromStr == "" || toStr == "" {
					return fmt.Errorf("both --from and --to must be specified")
				}
				if len(args) > 0 {
					return fmt.Errorf("YEAR cannot be combined with --from/--to")
				}
				from, err := dateutil.ParseDate(fromStr)
				if err != nil {
					return fmt.Errorf("invalid from date: %w", err)
				}
				to, err := dateutil.ParseDate(toStr)
				if err != nil {
					return fmt.Errorf("invalid to date: %w", err)
				}

				holidays, err := cal.HolidaysInRange(from, to)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Bank holidays %s .. %s (%s)\n", fromStr, toStr, cal.Division())
				printHolidays(out, holidays)
				return nil
			}

			year := dateutil.Today().Year()
			if len(args) == 1 {
				year, err = strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q: %w", args[0], err)
				}
			}

			holidays, err := cal.Holidays(year)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Bank holidays %d (%s)\n", year, cal.Division())
			printHolidays(out, holidays)
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "End date (YYYY-MM-DD)")

	return cmd
}

func checkCmd(a *app) *cobra.Command {
	var allDivisions bool

	cmd := &cobra.Command{
		Use:   "check DATE",
		Short: "Check whether a date is a working day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}

			divisions := []string{""}
			if allDivisions {
				divisions = divisions[:0]
				for _, d := range calendar.Divisions() {
					divisions = append(divisions, string(d))
				}
			}

			out := cmd.OutOrStdout()
			for _, division := range divisions {
				cal, err := a.newCalendar(division)
				if err != nil {
					return err
				}
				info, err := cal.DayInfo(date)
				if err != nil {
					return err
				}

				line := fmt.Sprintf("%s (%s) %s: %s",
					info.Date.Format(dateutil.ISODate), info.Date.Weekday(), cal.Division(), info.Type)
				if info.Holiday != nil {
					line += ", " + holidayLabel(*info.Holiday)
				}
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allDivisions, "all", false, "Check every UK division")

	return cmd
}

func workingDaysCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "working-days START END",
		Short: "Count working days between two dates (inclusive)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := dateutil.ParseDate(args[0])
			if err != nil {
				return fmt.Errorf("invalid start date: %w", err)
			}
			end, err := dateutil.ParseDate(args[1])
			if err != nil {
				return fmt.Errorf("invalid end date: %w", err)
			}

			cal, err := a.newCalendar("")
			if err != nil {
				return err
			}

			days, err := cal.WorkingDaysList(start, end)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Working days %s .. %s (%s): %d\n",
				start.Format(dateutil.ISODate), end.Format(dateutil.ISODate), cal.Division(), len(days))
			if list {
				for _, day := range days {
					fmt.Fprintf(out, "  %s  %s\n", day.Format(dateutil.ISODate), day.Format("Mon"))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&list, "list", false, "Print each working day")

	return cmd
}

func monthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "month YEAR MONTH",
		Short: "Summarize working days in a month",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid year %q: %w", args[0], err)
			}
			month, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid month %q: %w", args[1], err)
			}

			cal, err := a.newCalendar("")
			if err != nil {
				return err
			}

			summary, err := cal.MonthSummary(year, time.Month(month))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %d (%s)\n", summary.Month, summary.Year, cal.Division())
			fmt.Fprintln(out, separator)
			fmt.Fprintf(out, "  Total days:     %d\n", summary.TotalDays)
			fmt.Fprintf(out, "  Working days:   %d\n", summary.WorkingDays)
			fmt.Fprintf(out, "  Weekend days:   %d\n", summary.Weekends)
			fmt.Fprintf(out, "  Bank holidays:  %d (%d on weekdays)\n", summary.PublicHolidays, summary.HolidayWeekdayCount)
			for _, h := range summary.Holidays {
				fmt.Fprintf(out, "    %s  %s  %s\n", h.Date.Format(dateutil.ISODate), h.Date.Format("Mon"), holidayLabel(h))
			}
			return nil
		},
	}
}

func stepCmd(a *app, use, short string, direction int) *cobra.Command {
	return &cobra.Command{
		Use:   use + " DATE",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}

			cal, err := a.newCalendar("")
			if err != nil {
				return err
			}

			var result time.Time
			label := "Next"
			if direction > 0 {
				result, err = cal.NextWorkingDay(date)
			} else {
				label = "Previous"
				result, err = cal.PreviousWorkingDay(date)
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s working day from %s (%s): %s (%s)\n",
				label, date.Format(dateutil.ISODate), cal.Division(),
				result.Format(dateutil.ISODate), result.Weekday())
			return nil
		},
	}
}

func addWorkingDaysCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add-working-days DATE N",
		Short: "Move N working days from DATE (negative N moves backwards)",
		Example: "  invoicegen calendar add-working-days 2026-02-02 5\n" +
			"  invoicegen calendar add-working-days 2026-02-06 -- -5",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateutil.ParseDate(args[0])
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid number of days %q: %w", args[1], err)
			}

			cal, err := a.newCalendar("")
			if err != nil {
				return err
			}

			result, err := cal.AddWorkingDays(date, n)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %+d working days (%s): %s (%s)\n",
				date.Format(dateutil.ISODate), n, cal.Division(),
				result.Format(dateutil.ISODate), result.Weekday())
			return nil
		},
	}
}

func printHolidays(out io.Writer, holidays []calendar.Holiday) {
	fmt.Fprintln(out, separator)
	for _, h := range holidays {
		fmt.Fprintf(out, "  %s  %s  %s\n", h.Date.Format(dateutil.ISODate), h.Date.Format("Mon"), holidayLabel(h))
	}
	fmt.Fprintf(out, "Total: %d\n", len(holidays))
}

func holidayLabel(h calendar.Holiday) string {
	if h.Notes != "" {
		return fmt.Sprintf("%s (%s)", h.Name, h.Notes)
	}
	return h.Name
}
