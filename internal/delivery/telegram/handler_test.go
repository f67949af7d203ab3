package telegram

import (
	"context"
	"errors"
	"testing"

	"go-jobmatch-bot/internal/domain"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) Start(ctx context.Context, in domain.StartInput) (*domain.StartResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StartResult), args.Error(1)
}

func (m *MockUserUsecase) CheckAccess(ctx context.Context, telegramID int64) (bool, error) {
	args := m.Called(ctx, telegramID)
	return args.Bool(0), args.Error(1)
}

type MockFeedUsecase struct {
	mock.Mock
}

func (m *MockFeedUsecase) result(args mock.Arguments) (*domain.FeedResponse, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FeedResponse), args.Error(1)
}

func (m *MockFeedUsecase) StartBrowsing(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockFeedUsecase) HandleAction(ctx context.Context, userID int64, action domain.FeedAction) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID, action))
}

func (m *MockFeedUsecase) SubmitQuestion(ctx context.Context, userID int64, text string) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID, text))
}

func (m *MockFeedUsecase) CancelQuestion(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockFeedUsecase) ResumeAfterMotivation(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockFeedUsecase) StopBrowsing(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockFeedUsecase) StopSearch(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockFeedUsecase) ResumeSearch(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return m.result(m.Called(ctx, userID))
}

func (m *MockFeedUsecase) Mode(ctx context.Context, userID int64) (domain.SessionMode, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.SessionMode), args.Error(1)
}

type MockResponseUsecase struct {
	mock.Mock
}

func (m *MockResponseUsecase) card(args mock.Arguments) (*domain.ResponseCard, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ResponseCard), args.Error(1)
}

func (m *MockResponseUsecase) OpenResponses(ctx context.Context, employerUserID int64) (*domain.ResponseCard, error) {
	return m.card(m.Called(ctx, employerUserID))
}

func (m *MockResponseUsecase) FetchFirstUnread(ctx context.Context, employerUserID int64) (*domain.ResponseCard, error) {
	return m.card(m.Called(ctx, employerUserID))
}

func (m *MockResponseUsecase) ViewInteraction(ctx context.Context, employerUserID, interactionID int64) (*domain.ResponseCard, error) {
	return m.card(m.Called(ctx, employerUserID, interactionID))
}

func (m *MockResponseUsecase) ReportApplicant(ctx context.Context, employerUserID, applicantUserID int64) (*domain.Complaint, error) {
	args := m.Called(ctx, employerUserID, applicantUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

const userID int64 = 77

type handlerFixture struct {
	users     *MockUserUsecase
	feed      *MockFeedUsecase
	responses *MockResponseUsecase
	messenger *recordingMessenger
	h         *Handler
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	f := &handlerFixture{
		users:     new(MockUserUsecase),
		feed:      new(MockFeedUsecase),
		responses: new(MockResponseUsecase),
		messenger: &recordingMessenger{},
	}
	f.h = NewHandler(f.users, f.feed, f.responses, f.messenger)
	t.Cleanup(func() {
		f.users.AssertExpectations(t)
		f.feed.AssertExpectations(t)
		f.responses.AssertExpectations(t)
	})
	return f
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text: text,
		From: &tgbotapi.User{ID: userID, FirstName: "Aida", UserName: "aida"},
		Chat: &tgbotapi.Chat{ID: userID},
	}}
}

func commandUpdate(text string, cmdLen int) tgbotapi.Update {
	upd := textUpdate(text)
	upd.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	return upd
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb-1",
		Data: data,
		From: &tgbotapi.User{ID: userID},
	}}
}

func profileResponse() *domain.FeedResponse {
	return &domain.FeedResponse{Screen: &domain.Screen{Kind: domain.ScreenProfile, Profile: testProfile()}}
}

func TestHandler_BannedUserIsDropped(t *testing.T) {
	f := newHandlerFixture(t)
	f.users.On("CheckAccess", mock.Anything, userID).Return(false, nil)

	f.h.Handle(context.Background(), textUpdate(BtnBrowse))

	require.Len(t, f.messenger.out, 1)
	assert.Equal(t, textAccessRestricted, f.messenger.out[0].text)
}

func TestHandler_StartWithReferral(t *testing.T) {
	f := newHandlerFixture(t)
	f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
	f.users.On("Start", mock.Anything, domain.StartInput{
		TelegramID:   userID,
		Username:     "aida",
		FirstName:    "Aida",
		ReferralCode: "abc123",
	}).Return(&domain.StartResult{Destination: domain.DestinationApplicantMenu, DisplayName: "Aida"}, nil)

	f.h.Handle(context.Background(), commandUpdate("/start abc123", 6))

	require.Len(t, f.messenger.out, 1)
	assert.Contains(t, f.messenger.out[0].text, "Hi, Aida!")
	assert.Equal(t, applicantMenuKeyboard(), f.messenger.out[0].kb)
}

func TestHandler_FeedButtons(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		mode   domain.SessionMode
		expect func(f *handlerFixture)
	}{
		{
			name: "like",
			text: BtnLike,
			mode: domain.ModeBrowsing,
			expect: func(f *handlerFixture) {
				f.feed.On("HandleAction", mock.Anything, userID, domain.ActionLike).Return(profileResponse(), nil)
			},
		},
		{
			name: "browse",
			text: BtnBrowse,
			mode: domain.ModeIdle,
			expect: func(f *handlerFixture) {
				f.feed.On("StartBrowsing", mock.Anything, userID).Return(profileResponse(), nil)
			},
		},
		{
			name: "question text",
			text: "  Do you offer training?  ",
			mode: domain.ModeAskingQuestion,
			expect: func(f *handlerFixture) {
				f.feed.On("SubmitQuestion", mock.Anything, userID, "Do you offer training?").Return(profileResponse(), nil)
			},
		},
		{
			name: "like button while asking is question text",
			text: BtnLike,
			mode: domain.ModeAskingQuestion,
			expect: func(f *handlerFixture) {
				f.feed.On("SubmitQuestion", mock.Anything, userID, BtnLike).Return(profileResponse(), nil)
			},
		},
		{
			name: "cancel question",
			text: BtnCancel,
			mode: domain.ModeAskingQuestion,
			expect: func(f *handlerFixture) {
				f.feed.On("CancelQuestion", mock.Anything, userID).Return(profileResponse(), nil)
			},
		},
		{
			name: "stop search",
			text: BtnStopSearch,
			mode: domain.ModeIdle,
			expect: func(f *handlerFixture) {
				f.feed.On("StopSearch", mock.Anything, userID).
					Return(&domain.FeedResponse{Notices: []domain.Notice{domain.NoticeSearchStopped}}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newHandlerFixture(t)
			f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
			f.feed.On("Mode", mock.Anything, userID).Return(tt.mode, nil)
			tt.expect(f)

			f.h.Handle(context.Background(), textUpdate(tt.text))

			assert.NotEmpty(t, f.messenger.out)
		})
	}
}

func TestHandler_FreeTextOutsideQuestion(t *testing.T) {
	f := newHandlerFixture(t)
	f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
	f.feed.On("Mode", mock.Anything, userID).Return(domain.ModeWatchingMotivation, nil)

	f.h.Handle(context.Background(), textUpdate("hello"))

	require.Len(t, f.messenger.out, 1)
	assert.Equal(t, textKeepWatching, f.messenger.out[0].text)
}

func TestHandler_UsecaseErrorSendsGenericText(t *testing.T) {
	f := newHandlerFixture(t)
	f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
	f.feed.On("Mode", mock.Anything, userID).Return(domain.ModeBrowsing, nil)
	f.feed.On("HandleAction", mock.Anything, userID, domain.ActionDislike).Return(nil, errors.New("db down"))

	f.h.Handle(context.Background(), textUpdate(BtnDislike))

	require.Len(t, f.messenger.out, 1)
	assert.Equal(t, textGenericError, f.messenger.out[0].text)
}

func TestHandler_Callbacks(t *testing.T) {
	t.Run("view responses", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
		f.responses.On("OpenResponses", mock.Anything, userID).Return(nil, nil)

		f.h.Handle(context.Background(), callbackUpdate(domain.CallbackViewResponses))

		assert.Equal(t, []string{""}, f.messenger.answers)
		require.Len(t, f.messenger.out, 1)
		assert.Equal(t, textNoResponses, f.messenger.out[0].text)
	})

	t.Run("resume after motivation", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
		f.feed.On("ResumeAfterMotivation", mock.Anything, userID).Return(profileResponse(), nil)

		f.h.Handle(context.Background(), callbackUpdate(domain.CallbackResumeBrowsing))

		require.Len(t, f.messenger.out, 1)
		assert.Equal(t, "photo", f.messenger.out[0].kind)
	})

	t.Run("report applicant", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
		f.responses.On("ReportApplicant", mock.Anything, userID, int64(3)).Return(&domain.Complaint{ID: 1}, nil)

		f.h.Handle(context.Background(), callbackUpdate(domain.CallbackReportApplicantPrefix+"3"))

		assert.Equal(t, []string{textReportSent}, f.messenger.answers)
	})

	t.Run("report forbidden", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)
		f.responses.On("ReportApplicant", mock.Anything, userID, int64(4)).Return(nil, domain.ErrForbidden)

		f.h.Handle(context.Background(), callbackUpdate(domain.CallbackReportApplicantPrefix+"4"))

		assert.Equal(t, []string{textReportForbidden}, f.messenger.answers)
	})

	t.Run("malformed report payload", func(t *testing.T) {
		f := newHandlerFixture(t)
		f.users.On("CheckAccess", mock.Anything, userID).Return(true, nil)

		f.h.Handle(context.Background(), callbackUpdate(domain.CallbackReportApplicantPrefix+"abc"))

		assert.Equal(t, []string{textGenericError}, f.messenger.answers)
	})
}
