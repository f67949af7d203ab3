package telegram

import (
	"context"
	"fmt"

	"go-jobmatch-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const pollTimeoutSeconds = 60

func NewBotAPI(token string, debug bool) (*tgbotapi.BotAPI, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("connect to telegram: %w", err)
	}
	api.Debug = debug
	logger.Log.Info("Authorized on Telegram", zap.String("bot", api.Self.UserName))
	return api, nil
}

// Run long-polls updates into the dispatcher until ctx is cancelled, then
// drains the workers.
func Run(ctx context.Context, api *tgbotapi.BotAPI, d *Dispatcher) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeoutSeconds
	updates := api.GetUpdatesChan(u)

	d.Start(ctx)
	defer d.Stop()

	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			logger.Log.Info("Telegram polling stopped")
			return nil
		case upd, ok := <-updates:
			if !ok {
				return nil
			}
			if !d.Dispatch(ctx, upd) {
				api.StopReceivingUpdates()
				return nil
			}
		}
	}
}
