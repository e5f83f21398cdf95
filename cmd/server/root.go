package main

import (
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	var configDir string

	root := &cobra.Command{
		Use:           "exercise-tracker",
		Short:         "Exercise tracker HTTP API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configDir)
		},
	}

	root.Flags().StringVar(&configDir, "config", ".", "directory containing config.yaml")
	root.AddCommand(newVersionCmd())

	return root
}
