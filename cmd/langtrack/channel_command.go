package main

import (
	"fmt"
	"langtrack/internal/di"
	"langtrack/internal/language"
	"langtrack/internal/structures"
	"sort"

	"github.com/spf13/cobra"
)

func newChannelCommand(flags *structures.CliFlags) *cobra.Command {
	channelCmd := &cobra.Command{
		Use:   "channel",
		Short: "Manage channel language overrides",
	}

	channelCmd.AddCommand(newChannelSetCommand(flags))
	channelCmd.AddCommand(newChannelListCommand(flags))

	return channelCmd
}

func newChannelSetCommand(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set <channel-id> <language>",
		Short: "Assign a language to a channel and remap its logged watch time",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tracking, cleanup, err := di.InitTracking(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			outcome, err := tracking.Service.SetChannelLanguage(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if !outcome.Accepted {
				return fmt.Errorf("channel language not saved: %s", outcome.Label())
			}
			code, _ := language.Normalize(args[1])
			fmt.Fprintf(cmd.OutOrStdout(), "Channel %s set to %s\n", args[0], language.DisplayName(code))
			return nil
		},
	}
}

func newChannelListCommand(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List channel language overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tracking, cleanup, err := di.InitTracking(flags)
			if err != nil {
				return err
			}
			defer cleanup()

			channels := tracking.Service.GetChannelLanguageMap(cmd.Context())
			ids := make([]string, 0, len(channels))
			for id := range channels {
				ids = append(ids, id)
			}
			sort.Strings(ids)

			rows := make([][]string, 0, len(ids))
			for _, id := range ids {
				rows = append(rows, []string{id, channels[id], language.DisplayName(channels[id])})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Channel", "Code", "Language"}, rows, nil))
			return nil
		},
	}
}
