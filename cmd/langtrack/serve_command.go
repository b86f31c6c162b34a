package main

import (
	"langtrack/internal/di"
	"langtrack/internal/structures"

	"github.com/spf13/cobra"
)

func newServeCommand(flags *structures.CliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the tracking daemon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// NewApp blocks until shutdown
			_, err := di.InitApp(flags)
			return err
		},
	}
}
