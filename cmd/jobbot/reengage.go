package main

import (
	"go-jobmatch-bot/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var reengageCmd = &cobra.Command{
	Use:   "reengage",
	Short: "Send one round of re-engagement reminders and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		ctx := cmd.Context()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		sent, err := a.reengagement.RunOnce(ctx)
		if err != nil {
			return err
		}
		logger.Log.Info("Re-engagement round finished", zap.Int("sent", sent))
		return nil
	},
}
