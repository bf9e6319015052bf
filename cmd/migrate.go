package cmd

import (
	"github.com/spf13/cobra"

	config "task-market.com/task-market/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()
		logger := config.NewLogger(cfg.Env, cfg.LogLevel)

		// Opening the client runs the migration.
		db := config.NewDatabaseClient(cfg.DatabaseDSN, logger)
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		defer sqlDB.Close()

		logger.WithField("dsn", cfg.DatabaseDSN).Info("schema migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
