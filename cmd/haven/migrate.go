package main

import (
	"github.com/spf13/cobra"

	"github.com/handcraftedhaven/haven/database/seeders"
	"github.com/handcraftedhaven/haven/internal/server"
	"github.com/handcraftedhaven/haven/pkg/database"
	"github.com/handcraftedhaven/haven/pkg/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		return migration.New(database.DB).Run()
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the last migration batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		return migration.New(database.DB).Rollback()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the run state of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		return migration.New(database.DB).Status()
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo artisans, products and reviews",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.Boot(); err != nil {
			return err
		}
		return seeders.Run(database.DB)
	},
}

func init() {
	root.AddCommand(migrateCmd, migrateRollbackCmd, migrateStatusCmd, seedCmd)
}
