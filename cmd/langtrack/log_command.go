package main

import (
	"fmt"
	"langtrack/internal/di"
	"langtrack/internal/language"
	"langtrack/internal/structures"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
)

func newLogCommand(flags *structures.CliFlags) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log <language> <minutes>",
		Short: "Add manually logged minutes to a day's tally",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			minutes, err := cast.ToFloat64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid minutes %q: %w", args[1], err)
			}

			tracking, cleanup, err := di.InitTracking(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			outcome, err := tracking.Service.RecordManualMinutes(cmd.Context(), args[0], minutes, date)
			if err != nil {
				return err
			}
			if !outcome.Accepted {
				return fmt.Errorf("minutes not logged: %s", outcome.Label())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s min of %s\n", args[1], language.DisplayName(args[0]))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Date to log against (YYYY-MM-DD, default today)")

	return cmd
}
