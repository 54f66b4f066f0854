package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"github.com/third774/dyte-remix/internal/config"
	"github.com/third774/dyte-remix/internal/repository/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the meeting metadata table in DATABASE_URL",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		// NewConnection applies the migration before returning.
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}

		log.Println("Migrations applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
