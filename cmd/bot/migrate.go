package main

import (
	"github.com/spf13/cobra"

	"github.com/nathanl0204/project-bot/internal/config"
	"github.com/nathanl0204/project-bot/internal/database"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg := config.MustLoad(configPath)

			db, err := database.Connect(cfg)
			if err != nil {
				return err
			}
			return database.Migrate(db)
		},
	}
}
