package telegram

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var actionButtons = map[string]domain.FeedAction{
	BtnLike:     domain.ActionLike,
	BtnDislike:  domain.ActionDislike,
	BtnQuestion: domain.ActionQuestion,
	BtnReport:   domain.ActionReport,
}

// Handler routes one update to the use cases. Updates of a single user
// must not be handled concurrently, see Dispatcher.
type Handler struct {
	users     domain.UserUsecase
	feed      domain.FeedUsecase
	responses domain.ResponseUsecase
	messenger domain.Messenger
	render    *Renderer
}

func NewHandler(users domain.UserUsecase, feed domain.FeedUsecase, responses domain.ResponseUsecase, messenger domain.Messenger) *Handler {
	return &Handler{
		users:     users,
		feed:      feed,
		responses: responses,
		messenger: messenger,
		render:    NewRenderer(messenger),
	}
}

// SenderID returns the Telegram user behind an update, or 0.
func SenderID(upd tgbotapi.Update) int64 {
	switch {
	case upd.Message != nil && upd.Message.From != nil:
		return upd.Message.From.ID
	case upd.CallbackQuery != nil && upd.CallbackQuery.From != nil:
		return upd.CallbackQuery.From.ID
	}
	return 0
}

func (h *Handler) Handle(ctx context.Context, upd tgbotapi.Update) {
	userID := SenderID(upd)
	if userID == 0 {
		return
	}

	allowed, err := h.users.CheckAccess(ctx, userID)
	if err == nil && !allowed {
		logger.Log.Info("Update from banned user dropped", zap.Int64("user_id", userID))
		if upd.CallbackQuery != nil {
			h.answer(ctx, upd.CallbackQuery.ID, textAccessRestricted)
			return
		}
		h.render.Text(ctx, userID, textAccessRestricted, nil)
		return
	}

	switch {
	case upd.CallbackQuery != nil:
		h.handleCallback(ctx, userID, upd.CallbackQuery)
	case upd.Message != nil:
		h.handleMessage(ctx, userID, upd.Message)
	}
}

func (h *Handler) handleMessage(ctx context.Context, userID int64, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		if msg.Command() == "start" {
			h.start(ctx, userID, msg)
		}
		return
	}

	text := strings.TrimSpace(msg.Text)
	mode, err := h.feed.Mode(ctx, userID)
	if err != nil {
		h.fail(ctx, userID, "load mode", err)
		return
	}

	if mode == domain.ModeAskingQuestion {
		if text == BtnCancel {
			h.feedResult(ctx, userID, "cancel question")(h.feed.CancelQuestion(ctx, userID))
			return
		}
		h.feedResult(ctx, userID, "submit question")(h.feed.SubmitQuestion(ctx, userID, text))
		return
	}

	if action, ok := actionButtons[text]; ok {
		h.feedResult(ctx, userID, "feed action")(h.feed.HandleAction(ctx, userID, action))
		return
	}

	switch text {
	case BtnBrowse:
		h.feedResult(ctx, userID, "start browsing")(h.feed.StartBrowsing(ctx, userID))
	case BtnStopBrowsing:
		h.feedResult(ctx, userID, "stop browsing")(h.feed.StopBrowsing(ctx, userID))
	case BtnStopSearch:
		h.feedResult(ctx, userID, "stop search")(h.feed.StopSearch(ctx, userID))
	case BtnResumeSearch:
		h.feedResult(ctx, userID, "resume search")(h.feed.ResumeSearch(ctx, userID))
	case BtnViewResponses:
		card, err := h.responses.FetchFirstUnread(ctx, userID)
		h.responseResult(ctx, userID, card, err)
	default:
		if mode == domain.ModeWatchingMotivation {
			h.render.Text(ctx, userID, textKeepWatching, motivationKeyboard())
			return
		}
		h.render.Text(ctx, userID, textUseButtons, nil)
	}
}

func (h *Handler) start(ctx context.Context, userID int64, msg *tgbotapi.Message) {
	in := domain.StartInput{
		TelegramID:   userID,
		Username:     msg.From.UserName,
		FirstName:    msg.From.FirstName,
		LastName:     msg.From.LastName,
		ReferralCode: strings.TrimSpace(msg.CommandArguments()),
	}
	res, err := h.users.Start(ctx, in)
	if err != nil {
		h.fail(ctx, userID, "start", err)
		return
	}
	h.render.Start(ctx, userID, res)
}

func (h *Handler) handleCallback(ctx context.Context, userID int64, cq *tgbotapi.CallbackQuery) {
	data := cq.Data

	switch {
	case data == domain.CallbackResumeBrowsing:
		h.answer(ctx, cq.ID, "")
		h.feedResult(ctx, userID, "resume after motivation")(h.feed.ResumeAfterMotivation(ctx, userID))

	case data == domain.CallbackViewResponses:
		h.answer(ctx, cq.ID, "")
		card, err := h.responses.OpenResponses(ctx, userID)
		h.responseResult(ctx, userID, card, err)

	case data == domain.CallbackNextResponse:
		h.answer(ctx, cq.ID, "")
		card, err := h.responses.FetchFirstUnread(ctx, userID)
		h.responseResult(ctx, userID, card, err)

	case strings.HasPrefix(data, domain.CallbackReportApplicantPrefix):
		applicantID, err := strconv.ParseInt(strings.TrimPrefix(data, domain.CallbackReportApplicantPrefix), 10, 64)
		if err != nil {
			h.answer(ctx, cq.ID, textGenericError)
			return
		}
		_, err = h.responses.ReportApplicant(ctx, userID, applicantID)
		switch {
		case err == nil:
			h.answer(ctx, cq.ID, textReportSent)
		case errors.Is(err, domain.ErrForbidden):
			h.answer(ctx, cq.ID, textReportForbidden)
		default:
			logger.Log.Error("Failed to report applicant", zap.Int64("user_id", userID), zap.Error(err))
			h.answer(ctx, cq.ID, textGenericError)
		}

	default:
		h.answer(ctx, cq.ID, "")
	}
}

func (h *Handler) feedResult(ctx context.Context, userID int64, op string) func(*domain.FeedResponse, error) {
	return func(resp *domain.FeedResponse, err error) {
		if err != nil {
			h.fail(ctx, userID, op, err)
			return
		}
		h.render.Feed(ctx, userID, resp)
	}
}

func (h *Handler) responseResult(ctx context.Context, userID int64, card *domain.ResponseCard, err error) {
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.render.Text(ctx, userID, textRoleSelect, nil)
			return
		}
		h.fail(ctx, userID, "show response", err)
		return
	}
	h.render.Response(ctx, userID, card)
}

func (h *Handler) answer(ctx context.Context, callbackID, text string) {
	if err := h.messenger.AnswerCallback(ctx, callbackID, text); err != nil {
		logger.Log.Debug("Failed to answer callback", zap.Error(err))
	}
}

func (h *Handler) fail(ctx context.Context, userID int64, op string, err error) {
	logger.Log.Error("Update handling failed",
		zap.String("op", op), zap.Int64("user_id", userID), zap.Error(err))
	h.render.Text(ctx, userID, textGenericError, nil)
}
