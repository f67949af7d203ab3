package telegram

import (
	"context"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

type mediaKind int

const (
	mediaText mediaKind = iota
	mediaPhoto
	mediaVideo
)

func (k mediaKind) String() string {
	switch k {
	case mediaPhoto:
		return "photo"
	case mediaVideo:
		return "video"
	default:
		return "text"
	}
}

func motivationMedia(t domain.MotivationType) mediaKind {
	switch t {
	case domain.MotivationPhoto:
		return mediaPhoto
	case domain.MotivationVideo:
		return mediaVideo
	default:
		return mediaText
	}
}

// Renderer turns use case results into chat messages. Delivery failures
// fall back to plain text where possible and are otherwise only logged.
type Renderer struct {
	messenger domain.Messenger
}

func NewRenderer(messenger domain.Messenger) *Renderer {
	return &Renderer{messenger: messenger}
}

func (r *Renderer) Text(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) {
	if _, err := r.messenger.SendText(ctx, chatID, text, kb); err != nil {
		logger.Log.Warn("Failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (r *Renderer) Feed(ctx context.Context, chatID int64, resp *domain.FeedResponse) {
	if resp == nil {
		return
	}
	for _, n := range resp.Notices {
		if text, ok := noticeTexts[n]; ok {
			r.Text(ctx, chatID, text, nil)
		}
	}
	if resp.Screen == nil {
		return
	}

	s := resp.Screen
	switch s.Kind {
	case domain.ScreenProfile:
		photo := ""
		if s.Profile.PhotoFileID != nil {
			photo = *s.Profile.PhotoFileID
		}
		r.media(ctx, chatID, mediaPhoto, photo, profileText(s.Profile), feedKeyboard())
	case domain.ScreenAntiSpamDummy:
		r.media(ctx, chatID, mediaPhoto, s.DummyPhoto, s.DummyText, feedKeyboard())
	case domain.ScreenMotivation:
		fileID := ""
		if s.Content.FileID != nil {
			fileID = *s.Content.FileID
		}
		// The feed reply keyboard goes away first so Continue is the only action.
		r.Text(ctx, chatID, textMotivationBreak, domain.RemoveKeyboard())
		r.media(ctx, chatID, motivationMedia(s.Content.Type), fileID, s.Content.Caption, motivationKeyboard())
	case domain.ScreenQuestionPrompt:
		r.Text(ctx, chatID, textQuestionPrompt, questionKeyboard())
	case domain.ScreenApplicantMenu:
		r.Text(ctx, chatID, textApplicantMenu, applicantMenuKeyboard())
	case domain.ScreenRoleSelect:
		r.Text(ctx, chatID, textRoleSelect, nil)
	default:
		logger.Log.Error("Unknown screen kind", zap.String("kind", string(s.Kind)))
	}
}

// media sends a photo or video with caption, falling back to the bare text
// when there is no file or the upload is rejected.
func (r *Renderer) media(ctx context.Context, chatID int64, kind mediaKind, fileID, text string, kb *domain.Keyboard) {
	if fileID != "" && kind != mediaText {
		var err error
		if kind == mediaVideo {
			_, err = r.messenger.SendVideo(ctx, chatID, fileID, captionOf(text), kb)
		} else {
			_, err = r.messenger.SendPhoto(ctx, chatID, fileID, captionOf(text), kb)
		}
		if err == nil {
			return
		}
		logger.Log.Warn("Failed to send media, falling back to text",
			zap.Int64("chat_id", chatID), zap.Stringer("kind", kind), zap.Error(err))
	}
	r.Text(ctx, chatID, text, kb)
}

func (r *Renderer) Response(ctx context.Context, chatID int64, card *domain.ResponseCard) {
	if card == nil {
		r.Text(ctx, chatID, textNoResponses, employerMenuKeyboard())
		return
	}
	if card.Incomplete() {
		var kb *domain.Keyboard
		if card.Remaining > 0 {
			kb = domain.InlineKeyboard(domain.Row(domain.Button{Text: "➡️ Next", Data: domain.CallbackNextResponse}))
		}
		r.Text(ctx, chatID, textResponseGone, kb)
		return
	}
	r.Text(ctx, chatID, responseText(card), responseKeyboard(card.Interaction.ApplicantUserID, card.Remaining))
}

func (r *Renderer) Start(ctx context.Context, chatID int64, res *domain.StartResult) {
	switch res.Destination {
	case domain.DestinationApplicantMenu:
		r.Text(ctx, chatID, greeting(res.DisplayName)+textApplicantMenu, applicantMenuKeyboard())
	case domain.DestinationEmployerMenu:
		r.Text(ctx, chatID, greeting(res.DisplayName)+textEmployerMenu, employerMenuKeyboard())
	default:
		r.Text(ctx, chatID, greeting(res.DisplayName)+textRoleSelect, nil)
	}
}

func greeting(name string) string {
	if name == "" {
		return "Hi!\n"
	}
	return "Hi, " + name + "!\n"
}
