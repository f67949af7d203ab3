package main

import (
	"context"
	"fmt"

	"go-jobmatch-bot/config"
	"go-jobmatch-bot/pkg/logger"

	"github.com/spf13/cobra"
)

const appName = "jobbot"

var (
	cfg   *config.Config
	debug bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "jobbot is a Telegram bot that matches applicants with employer vacancies",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if debug {
				loaded.LogDebug = true
			}
			if err := logger.Init(loaded.AppEnv, loaded.LogDebug); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			cfg = loaded
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			logger.Sync()
		},
	}
)

// Execute runs the root command until ctx is cancelled.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")

	rootCmd.AddCommand(serveCmd, migrateCmd, reengageCmd)
}
