package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cppla/classboard/config"
	"github.com/cppla/classboard/utils"
)

// NewMigrateCmd creates the migrate command
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the folder, post and comment tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if err := utils.InitLogger(cfg); err != nil {
				return err
			}

			db, err := config.OpenDatabase(cfg)
			if err != nil {
				cmd.PrintErrf("Failed to connect to database: %v\n", err)
				return err
			}
			if err := config.Migrate(db); err != nil {
				cmd.PrintErrf("Migration failed: %v\n", err)
				return err
			}
			cmd.Println("Migrations applied successfully")
			return nil
		},
	}
}
