package commands

import (
	"context"

	"github.com/listkeeper-dev/listkeeper/db"
	"github.com/listkeeper-dev/listkeeper/internal/config"
	"github.com/listkeeper-dev/listkeeper/internal/logging"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		log := logging.Default()

		if err := db.ConnectDatabase(cfg.DatabaseDSN); err != nil {
			return err
		}

		if err := db.MigrateDatabase(); err != nil {
			return err
		}

		log.Info(context.Background(), "schema up to date")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
