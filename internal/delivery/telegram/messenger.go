package telegram

import (
	"context"
	"fmt"
	"strings"

	"go-jobmatch-bot/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// BotAPI is the part of *tgbotapi.BotAPI the messenger needs.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Messenger implements domain.Messenger on top of the Bot API.
type Messenger struct {
	bot BotAPI
}

func NewMessenger(bot BotAPI) *Messenger {
	return &Messenger{bot: bot}
}

func (m *Messenger) SendText(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	if markup := replyMarkup(kb); markup != nil {
		msg.ReplyMarkup = markup
	}
	return m.send(msg, "send text")
}

func (m *Messenger) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, kb *domain.Keyboard) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileID(fileID))
	photo.Caption = caption
	if markup := replyMarkup(kb); markup != nil {
		photo.ReplyMarkup = markup
	}
	return m.send(photo, "send photo")
}

func (m *Messenger) SendVideo(ctx context.Context, chatID int64, fileID, caption string, kb *domain.Keyboard) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	video := tgbotapi.NewVideo(chatID, tgbotapi.FileID(fileID))
	video.Caption = caption
	if markup := replyMarkup(kb); markup != nil {
		video.ReplyMarkup = markup
	}
	return m.send(video, "send video")
}

func (m *Messenger) EditText(ctx context.Context, chatID int64, messageID int, text string, kb *domain.Keyboard) (domain.EditOutcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.EditFailed, err
	}
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ReplyMarkup = inlineMarkup(kb)
	_, err := m.bot.Send(edit)
	return classifyEdit(err)
}

func (m *Messenger) EditCaption(ctx context.Context, chatID int64, messageID int, caption string, kb *domain.Keyboard) (domain.EditOutcome, error) {
	if err := ctx.Err(); err != nil {
		return domain.EditFailed, err
	}
	edit := tgbotapi.NewEditMessageCaption(chatID, messageID, caption)
	edit.ReplyMarkup = inlineMarkup(kb)
	_, err := m.bot.Send(edit)
	return classifyEdit(err)
}

func (m *Messenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := m.bot.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		return fmt.Errorf("%w: delete message: %w", domain.ErrDelivery, err)
	}
	return nil
}

func (m *Messenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := m.bot.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		return fmt.Errorf("%w: answer callback: %w", domain.ErrDelivery, err)
	}
	return nil
}

func (m *Messenger) send(c tgbotapi.Chattable, op string) (int, error) {
	sent, err := m.bot.Send(c)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", domain.ErrDelivery, op, err)
	}
	return sent.MessageID, nil
}

// classifyEdit maps an edit result onto the three outcomes. Telegram
// rejects edits that would not change anything, which is not a failure.
func classifyEdit(err error) (domain.EditOutcome, error) {
	if err == nil {
		return domain.EditApplied, nil
	}
	if strings.Contains(strings.ToLower(err.Error()), "message is not modified") {
		return domain.EditUnchanged, nil
	}
	return domain.EditFailed, fmt.Errorf("%w: edit message: %w", domain.ErrDelivery, err)
}

func replyMarkup(kb *domain.Keyboard) any {
	if kb != nil && kb.Remove {
		return tgbotapi.NewRemoveKeyboard(true)
	}
	if kb == nil || len(kb.Rows) == 0 {
		return nil
	}
	if !kb.Reply {
		return *inlineMarkup(kb)
	}

	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make([]tgbotapi.KeyboardButton, 0, len(r))
		for _, b := range r {
			row = append(row, tgbotapi.NewKeyboardButton(b.Text))
		}
		rows = append(rows, row)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.ResizeKeyboard = true
	return markup
}

func inlineMarkup(kb *domain.Keyboard) *tgbotapi.InlineKeyboardMarkup {
	if kb == nil || kb.Reply || kb.Remove || len(kb.Rows) == 0 {
		return nil
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, r := range kb.Rows {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(r))
		for _, b := range r {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, row)
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(rows...)
	return &markup
}
