// Package cmd holds the classboard command line.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cppla/classboard/config"
)

// NewRootCmd creates the root command. Without a subcommand it serves.
func NewRootCmd(version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "classboard",
		Short:        "Class bulletin board server",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if configPath != "" {
				config.ConfigPath = configPath
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (default config/config.json)")

	root.AddCommand(
		NewServeCmd(),
		NewMigrateCmd(),
		NewSeedCmd(),
		NewVersionCmd(version),
	)
	return root
}
