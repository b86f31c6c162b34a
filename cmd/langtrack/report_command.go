package main

import (
	"fmt"
	"io"
	"langtrack/internal/di"
	"langtrack/internal/language"
	"langtrack/internal/models"
	"langtrack/internal/structures"
	"sort"
	"time"

	"github.com/spf13/cobra"
)

func newReportCommand(flags *structures.CliFlags) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show recent watch time per language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1")
			}
			tracking, cleanup, err := di.InitTracking(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			tallies := tracking.Service.GetDayTallies(cmd.Context())
			settings := tracking.Service.GetSettings(cmd.Context())
			printReport(cmd.OutOrStdout(), tallies, settings, time.Now(), days)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", 7, "Number of days to include, ending today")

	return cmd
}

// reportRows lists one row per language watched on each of the last days dates,
// newest first. Days without any watch time get a single placeholder row.
func reportRows(tallies models.Tallies, settings models.Settings, now time.Time, days int) [][]string {
	rows := make([][]string, 0, days)
	for i := range days {
		date := now.AddDate(0, 0, -i).Format(models.DateLayout)
		day := tallies[date]
		if len(day) == 0 {
			rows = append(rows, []string{date, "-", "0", "-"})
			continue
		}

		langs := make([]string, 0, len(day))
		for lang := range day {
			langs = append(langs, lang)
		}
		sort.Slice(langs, func(a, b int) bool {
			if day[langs[a]] != day[langs[b]] {
				return day[langs[a]] > day[langs[b]]
			}
			return langs[a] < langs[b]
		})

		for _, lang := range langs {
			seconds := day[lang]
			rows = append(rows, []string{
				date,
				language.DisplayName(lang),
				formatMinutes(seconds),
				goalProgress(seconds, settings.GoalSeconds(lang)),
			})
		}
	}
	return rows
}

func printReport(out io.Writer, tallies models.Tallies, settings models.Settings, now time.Time, days int) {
	headers := []string{"Date", "Language", "Minutes", "Goal"}
	aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight}
	fmt.Fprintln(out, renderTable(headers, reportRows(tallies, settings, now, days), aligns))

	today := tallies[now.Format(models.DateLayout)]
	fmt.Fprintf(out, "Today: %s of %d min daily goal\n", formatMinutes(today.Total()), settings.DailyGoalMinutes)
}

func formatMinutes(seconds int64) string {
	return fmt.Sprintf("%.1f", float64(seconds)/60)
}

func goalProgress(seconds, goal int64) string {
	if goal <= 0 {
		return "-"
	}
	return fmt.Sprintf("%d%%", seconds*100/goal)
}
