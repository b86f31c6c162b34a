package main

import (
	"langtrack/internal/structures"

	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:           "langtrack",
		Short:         "Track watch time per language",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.ConfigPath, "config", "c", "config/config.yml", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&flags.DebugMode, "debug", false, "Enable debug mode")

	rootCmd.AddCommand(newServeCommand(flags))
	rootCmd.AddCommand(newDetectCommand())
	rootCmd.AddCommand(newReportCommand(flags))
	rootCmd.AddCommand(newChannelCommand(flags))
	rootCmd.AddCommand(newLogCommand(flags))

	return rootCmd
}
