package usecase_test

import (
	"context"
	"sync"
	"time"

	"go-jobmatch-bot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockApplicantRepo struct {
	mock.Mock
}

func (m *MockApplicantRepo) GetByUserID(ctx context.Context, userID int64) (*domain.ApplicantProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ApplicantProfile), args.Error(1)
}

func (m *MockApplicantRepo) IsActive(ctx context.Context, userID int64) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockApplicantRepo) SetActive(ctx context.Context, userID int64, active bool, at time.Time) error {
	return m.Called(ctx, userID, active, at).Error(0)
}

type MockEmployerRepo struct {
	mock.Mock
}

func (m *MockEmployerRepo) GetByID(ctx context.Context, id int64) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockEmployerRepo) GetByUserID(ctx context.Context, userID int64) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockEmployerRepo) PickCandidate(ctx context.Context, f domain.CandidateFilter) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

func (m *MockEmployerRepo) NotificationState(ctx context.Context, employerUserID int64) (*domain.NotificationState, error) {
	args := m.Called(ctx, employerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationState), args.Error(1)
}

func (m *MockEmployerRepo) SetNotificationMessageID(ctx context.Context, profileID int64, messageID *int) error {
	return m.Called(ctx, profileID, messageID).Error(0)
}

type MockInteractionRepo struct {
	mock.Mock
}

func (m *MockInteractionRepo) Insert(ctx context.Context, i *domain.Interaction) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInteractionRepo) UpsertLike(ctx context.Context, applicantUserID, employerProfileID int64, now, cooldownUntil time.Time) (*domain.RecordResult, error) {
	args := m.Called(ctx, applicantUserID, employerProfileID, now, cooldownUntil)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordResult), args.Error(1)
}

func (m *MockInteractionRepo) FindLiveLike(ctx context.Context, applicantUserID, employerProfileID int64) (*domain.Interaction, error) {
	args := m.Called(ctx, applicantUserID, employerProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interaction), args.Error(1)
}

func (m *MockInteractionRepo) InsertReport(ctx context.Context, c *domain.Complaint, suppression *domain.Interaction) error {
	return m.Called(ctx, c, suppression).Error(0)
}

func (m *MockInteractionRepo) GetByID(ctx context.Context, id int64) (*domain.Interaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interaction), args.Error(1)
}

func (m *MockInteractionRepo) TakeOldestUnread(ctx context.Context, employerProfileID int64, at time.Time) (*domain.Interaction, int, error) {
	args := m.Called(ctx, employerProfileID, at)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).(*domain.Interaction), args.Int(1), args.Error(2)
}

func (m *MockInteractionRepo) MarkViewed(ctx context.Context, interactionID int64, at time.Time) (int, error) {
	args := m.Called(ctx, interactionID, at)
	return args.Int(0), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Upsert(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, telegramID int64) (*domain.User, error) {
	args := m.Called(ctx, telegramID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) TouchActivity(ctx context.Context, telegramID int64, at time.Time) (bool, error) {
	args := m.Called(ctx, telegramID, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepo) MarkReengagementSent(ctx context.Context, telegramID int64, at time.Time) error {
	return m.Called(ctx, telegramID, at).Error(0)
}

func (m *MockUserRepo) ListReengagementTargets(ctx context.Context, q domain.ReengagementQuery) ([]domain.ReengagementTarget, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReengagementTarget), args.Error(1)
}

type MockComplaintRepo struct {
	mock.Mock
}

func (m *MockComplaintRepo) Create(ctx context.Context, c *domain.Complaint) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockComplaintRepo) GetByID(ctx context.Context, id int64) (*domain.Complaint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

func (m *MockComplaintRepo) List(ctx context.Context, f domain.ComplaintFilter) ([]domain.Complaint, int, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Complaint), args.Int(1), args.Error(2)
}

func (m *MockComplaintRepo) UpdateStatus(ctx context.Context, id int64, status domain.ComplaintStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockMotivationRepo struct {
	mock.Mock
}

func (m *MockMotivationRepo) PickRandomActive(ctx context.Context) (*domain.MotivationalContent, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MotivationalContent), args.Error(1)
}

func (m *MockMotivationRepo) IncrementUsage(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context, key string) (*domain.BotSetting, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BotSetting), args.Error(1)
}

func (m *MockSettingsRepo) Upsert(ctx context.Context, s *domain.BotSetting) error {
	return m.Called(ctx, s).Error(0)
}

type MockReferralRepo struct {
	mock.Mock
}

func (m *MockReferralRepo) GetByCode(ctx context.Context, code string) (*domain.ReferralLink, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReferralLink), args.Error(1)
}

func (m *MockReferralRepo) Create(ctx context.Context, link *domain.ReferralLink) error {
	return m.Called(ctx, link).Error(0)
}

func (m *MockReferralRepo) RecordUsage(ctx context.Context, linkID, userID int64, at time.Time) error {
	return m.Called(ctx, linkID, userID, at).Error(0)
}

// Mock collaborators
type MockMessenger struct {
	mock.Mock
}

func (m *MockMessenger) SendText(ctx context.Context, chatID int64, text string, kb *domain.Keyboard) (int, error) {
	args := m.Called(ctx, chatID, text, kb)
	return args.Int(0), args.Error(1)
}

func (m *MockMessenger) SendPhoto(ctx context.Context, chatID int64, fileID, caption string, kb *domain.Keyboard) (int, error) {
	args := m.Called(ctx, chatID, fileID, caption, kb)
	return args.Int(0), args.Error(1)
}

func (m *MockMessenger) SendVideo(ctx context.Context, chatID int64, fileID, caption string, kb *domain.Keyboard) (int, error) {
	args := m.Called(ctx, chatID, fileID, caption, kb)
	return args.Int(0), args.Error(1)
}

func (m *MockMessenger) EditText(ctx context.Context, chatID int64, messageID int, text string, kb *domain.Keyboard) (domain.EditOutcome, error) {
	args := m.Called(ctx, chatID, messageID, text, kb)
	return args.Get(0).(domain.EditOutcome), args.Error(1)
}

func (m *MockMessenger) EditCaption(ctx context.Context, chatID int64, messageID int, caption string, kb *domain.Keyboard) (domain.EditOutcome, error) {
	args := m.Called(ctx, chatID, messageID, caption, kb)
	return args.Get(0).(domain.EditOutcome), args.Error(1)
}

func (m *MockMessenger) DeleteMessage(ctx context.Context, chatID int64, messageID int) error {
	return m.Called(ctx, chatID, messageID).Error(0)
}

func (m *MockMessenger) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return m.Called(ctx, callbackID, text).Error(0)
}

type MockSelector struct {
	mock.Mock
}

func (m *MockSelector) SelectNext(ctx context.Context, applicantUserID int64) (*domain.EmployerProfile, error) {
	args := m.Called(ctx, applicantUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EmployerProfile), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) RecordInteraction(ctx context.Context, applicantUserID, employerProfileID int64, t domain.InteractionType, questionText *string) (*domain.RecordResult, error) {
	args := m.Called(ctx, applicantUserID, employerProfileID, t, questionText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RecordResult), args.Error(1)
}

func (m *MockLedger) IsLiveLike(ctx context.Context, applicantUserID, employerProfileID int64) (*domain.Interaction, error) {
	args := m.Called(ctx, applicantUserID, employerProfileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Interaction), args.Error(1)
}

func (m *MockLedger) RecordReport(ctx context.Context, reporterUserID int64, profile *domain.EmployerProfile) (*domain.Complaint, error) {
	args := m.Called(ctx, reporterUserID, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Complaint), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, employerUserID int64, t domain.InteractionType) error {
	return m.Called(ctx, employerUserID, t).Error(0)
}

func (m *MockNotifier) Dismiss(ctx context.Context, employerUserID int64) error {
	return m.Called(ctx, employerUserID).Error(0)
}

type MockComplaintNotifier struct {
	mock.Mock
}

func (m *MockComplaintNotifier) NotifyAdmins(ctx context.Context, c *domain.Complaint) {
	m.Called(ctx, c)
}

// fakeSessions is an in-process session store that hands out copies, like
// the serialized stores do.
type fakeSessions struct {
	mu   sync.Mutex
	data map[int64]domain.Session
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{data: make(map[int64]domain.Session)}
}

func (f *fakeSessions) Get(_ context.Context, userID int64) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.data[userID]
	if !ok {
		return domain.NewSession(userID), nil
	}
	s.RecentActions = append([]time.Time(nil), s.RecentActions...)
	return &s, nil
}

func (f *fakeSessions) Save(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	cp.RecentActions = append([]time.Time(nil), s.RecentActions...)
	f.data[s.UserID] = cp
	return nil
}

func (f *fakeSessions) Delete(_ context.Context, userID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, userID)
	return nil
}

func (f *fakeSessions) put(s *domain.Session) {
	_ = f.Save(context.Background(), s)
}

func (f *fakeSessions) peek(userID int64) *domain.Session {
	s, _ := f.Get(context.Background(), userID)
	return s
}

func ptr[T any](v T) *T { return &v }
