package main

import (
	"errors"

	"go-jobmatch-bot/migrations"
	"go-jobmatch-bot/pkg/database"
	"go-jobmatch-bot/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.DBUrl == "" {
			return errors.New("DATABASE_URL is required")
		}
		applied, err := database.Migrate(cmd.Context(), cfg.DBUrl, migrations.FS)
		if err != nil {
			return err
		}
		logger.Log.Info("Migrations complete", zap.Int("applied", applied))
		return nil
	},
}
