package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"
	"go-jobmatch-bot/pkg/validation"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// FeedDeps bundles the collaborators of the applicant feed.
type FeedDeps struct {
	Sessions   domain.SessionStore
	Applicants domain.ApplicantRepository
	Employers  domain.EmployerRepository
	Selector   domain.CandidateSelector
	Ledger     domain.InteractionLedger
	AntiSpam   domain.AntiSpamGovernor
	Motivation domain.MotivationScheduler
	Notifier   domain.EmployerNotifier
	Complaints domain.ComplaintNotifier
	Validate   *validator.Validate
	Now        func() time.Time
}

type feedUsecase struct {
	d FeedDeps
}

func NewFeedUsecase(d FeedDeps) domain.FeedUsecase {
	if d.Validate == nil {
		d.Validate = validation.New()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &feedUsecase{d: d}
}

type feedStep func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error

// withSession loads the session, runs step and saves the result. Nothing is
// saved when step fails.
func (u *feedUsecase) withSession(ctx context.Context, userID int64, requireActive bool, step feedStep) (*domain.FeedResponse, error) {
	if requireActive {
		active, err := u.d.Applicants.IsActive(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("check applicant profile: %w", err)
		}
		if !active {
			return u.stale(ctx, userID), nil
		}
	}

	s, err := u.d.Sessions.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	now := u.d.Now()
	resp := &domain.FeedResponse{}
	if err := step(s, now, resp); err != nil {
		if errors.Is(err, domain.ErrStaleProfile) {
			return u.stale(ctx, userID), nil
		}
		return nil, err
	}

	s.UpdatedAt = now
	if err := u.d.Sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return resp, nil
}

func (u *feedUsecase) stale(ctx context.Context, userID int64) *domain.FeedResponse {
	logger.Log.Info("Applicant profile is no longer active, resetting session", zap.Int64("user_id", userID))
	if err := u.d.Sessions.Delete(ctx, userID); err != nil {
		logger.Log.Warn("Failed to clear session", zap.Int64("user_id", userID), zap.Error(err))
	}
	resp := &domain.FeedResponse{Screen: &domain.Screen{Kind: domain.ScreenRoleSelect}}
	return resp.Notice(domain.NoticeProfileChanged)
}

func (u *feedUsecase) StartBrowsing(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return u.withSession(ctx, userID, false, func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
		profile, err := u.d.Applicants.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrStaleProfile
			}
			return err
		}
		if !profile.IsActive {
			s.ResetBrowsing()
			resp.Notice(domain.NoticeSearchInactive)
			resp.Screen = &domain.Screen{Kind: domain.ScreenApplicantMenu}
			return nil
		}
		s.Mode = domain.ModeBrowsing
		return u.showNext(ctx, s, now, resp)
	})
}

func (u *feedUsecase) HandleAction(ctx context.Context, userID int64, action domain.FeedAction) (*domain.FeedResponse, error) {
	if !action.Valid() {
		return nil, fmt.Errorf("feed action %q: %w", action, domain.ErrInvalidInput)
	}

	return u.withSession(ctx, userID, true, func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
		if s.IsLocked(now) {
			return u.showDummy(ctx, s, resp)
		}
		if s.Shown.Kind == domain.ShownDummy {
			// lock already expired, the tap only asks for a real profile
			return u.showNext(ctx, s, now, resp)
		}
		if s.Mode != domain.ModeBrowsing || s.Shown.Kind != domain.ShownProfile {
			resp.Notice(domain.NoticeNothingToAct)
			return nil
		}

		if u.d.AntiSpam.Record(s, now) {
			logger.Log.Info("Anti-spam lock engaged",
				zap.Int64("user_id", userID),
				zap.Timep("locked_until", s.LockedUntil),
			)
			resp.Notice(domain.NoticeLockStarted)
			return u.showDummy(ctx, s, resp)
		}

		switch action {
		case domain.ActionLike:
			return u.like(ctx, s, now, resp)
		case domain.ActionDislike:
			return u.dislike(ctx, s, now, resp)
		case domain.ActionQuestion:
			target := s.Shown.ProfileID
			s.QuestionTargetProfileID = &target
			s.Mode = domain.ModeAskingQuestion
			resp.Screen = &domain.Screen{Kind: domain.ScreenQuestionPrompt}
			return nil
		default:
			return u.report(ctx, s, now, resp)
		}
	})
}

func (u *feedUsecase) like(ctx context.Context, s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
	shown := s.Shown
	res, err := u.d.Ledger.RecordInteraction(ctx, s.UserID, shown.ProfileID, domain.InteractionLike, nil)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.retry(ctx, s, now, resp)
		}
		return fmt.Errorf("record like: %w", err)
	}

	if res.Refreshed {
		resp.Notice(domain.NoticeLikeRefreshed)
	} else {
		resp.Notice(domain.NoticeLikeSent)
	}
	u.notifyOwner(ctx, shown.OwnerUserID, domain.InteractionLike)
	return u.showNext(ctx, s, now, resp)
}

func (u *feedUsecase) dislike(ctx context.Context, s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
	_, err := u.d.Ledger.RecordInteraction(ctx, s.UserID, s.Shown.ProfileID, domain.InteractionDislike, nil)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.retry(ctx, s, now, resp)
		}
		return fmt.Errorf("record dislike: %w", err)
	}
	return u.showNext(ctx, s, now, resp)
}

func (u *feedUsecase) report(ctx context.Context, s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
	profile, err := u.d.Employers.GetByID(ctx, s.Shown.ProfileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.retry(ctx, s, now, resp)
		}
		return fmt.Errorf("load reported profile: %w", err)
	}

	c, err := u.d.Ledger.RecordReport(ctx, s.UserID, profile)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return u.retry(ctx, s, now, resp)
		}
		return fmt.Errorf("record report: %w", err)
	}

	resp.Notice(domain.NoticeComplaintAccepted)
	u.d.Complaints.NotifyAdmins(ctx, c)
	return u.showNext(ctx, s, now, resp)
}

func (u *feedUsecase) SubmitQuestion(ctx context.Context, userID int64, text string) (*domain.FeedResponse, error) {
	return u.withSession(ctx, userID, true, func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
		if s.Mode != domain.ModeAskingQuestion || s.QuestionTargetProfileID == nil {
			resp.Notice(domain.NoticeNothingToAct)
			return nil
		}

		text = strings.TrimSpace(text)
		if err := u.d.Validate.Struct(domain.QuestionInput{Text: text}); err != nil {
			resp.Notice(domain.NoticeQuestionInvalid)
			resp.Screen = &domain.Screen{Kind: domain.ScreenQuestionPrompt}
			return nil
		}

		target := *s.QuestionTargetProfileID
		var owner *int64
		if s.Shown.Kind == domain.ShownProfile && s.Shown.ProfileID == target {
			owner = s.Shown.OwnerUserID
		}
		s.QuestionTargetProfileID = nil
		s.Mode = domain.ModeBrowsing

		_, err := u.d.Ledger.RecordInteraction(ctx, s.UserID, target, domain.InteractionQuestion, &text)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				resp.Notice(domain.NoticeQuestionTargetGone)
				return u.showNext(ctx, s, now, resp)
			}
			return fmt.Errorf("record question: %w", err)
		}

		resp.Notice(domain.NoticeQuestionSent)
		u.notifyOwner(ctx, owner, domain.InteractionQuestion)
		return u.showNext(ctx, s, now, resp)
	})
}

func (u *feedUsecase) CancelQuestion(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return u.withSession(ctx, userID, true, func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
		target := s.QuestionTargetProfileID
		s.QuestionTargetProfileID = nil
		s.Mode = domain.ModeBrowsing
		if target == nil {
			return u.showNext(ctx, s, now, resp)
		}

		resp.Notice(domain.NoticeQuestionCancelled)
		profile, err := u.d.Employers.GetByID(ctx, *target)
		switch {
		case err == nil && profile.IsActive:
			s.Shown = domain.ShowingProfile(profile)
			resp.Screen = &domain.Screen{Kind: domain.ScreenProfile, Profile: profile}
			return nil
		case err != nil && !errors.Is(err, domain.ErrNotFound):
			return fmt.Errorf("load question target: %w", err)
		}
		resp.Notice(domain.NoticeQuestionTargetGone)
		return u.showNext(ctx, s, now, resp)
	})
}

func (u *feedUsecase) ResumeAfterMotivation(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return u.withSession(ctx, userID, true, func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
		s.Mode = domain.ModeBrowsing
		return u.showNext(ctx, s, now, resp)
	})
}

func (u *feedUsecase) StopBrowsing(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return u.withSession(ctx, userID, false, func(s *domain.Session, _ time.Time, resp *domain.FeedResponse) error {
		s.ResetBrowsing()
		resp.Notice(domain.NoticeBrowsingStopped)
		resp.Screen = &domain.Screen{Kind: domain.ScreenApplicantMenu}
		return nil
	})
}

func (u *feedUsecase) StopSearch(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return u.withSession(ctx, userID, false, func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
		if err := u.d.Applicants.SetActive(ctx, userID, false, now); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrStaleProfile
			}
			return fmt.Errorf("deactivate applicant profile: %w", err)
		}
		s.ResetBrowsing()
		resp.Notice(domain.NoticeSearchStopped)
		resp.Screen = &domain.Screen{Kind: domain.ScreenApplicantMenu}
		return nil
	})
}

func (u *feedUsecase) ResumeSearch(ctx context.Context, userID int64) (*domain.FeedResponse, error) {
	return u.withSession(ctx, userID, false, func(s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
		if err := u.d.Applicants.SetActive(ctx, userID, true, now); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrStaleProfile
			}
			return fmt.Errorf("reactivate applicant profile: %w", err)
		}
		resp.Notice(domain.NoticeSearchResumed)
		s.Mode = domain.ModeBrowsing
		return u.showNext(ctx, s, now, resp)
	})
}

func (u *feedUsecase) Mode(ctx context.Context, userID int64) (domain.SessionMode, error) {
	s, err := u.d.Sessions.Get(ctx, userID)
	if err != nil {
		return domain.ModeIdle, err
	}
	return s.Mode, nil
}

// showNext puts the next screen of the feed into resp: the dummy while
// locked, otherwise a selected profile or a motivational interstitial.
func (u *feedUsecase) showNext(ctx context.Context, s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
	if s.IsLocked(now) {
		return u.showDummy(ctx, s, resp)
	}
	if u.d.AntiSpam.Expire(s, now) {
		resp.Notice(domain.NoticeLockEnded)
	}

	profile, err := u.d.Selector.SelectNext(ctx, s.UserID)
	if err != nil {
		return err
	}
	if profile == nil {
		s.ResetBrowsing()
		resp.Notice(domain.NoticeFeedExhausted)
		resp.Screen = &domain.Screen{Kind: domain.ScreenApplicantMenu}
		return nil
	}

	s.QuestionTargetProfileID = nil
	content, err := u.d.Motivation.Next(ctx, s)
	if err != nil {
		return err
	}
	if content != nil {
		s.Mode = domain.ModeWatchingMotivation
		s.Shown = domain.ShowingMotivation(content.ID)
		resp.Screen = &domain.Screen{Kind: domain.ScreenMotivation, Content: content}
		return nil
	}

	s.Mode = domain.ModeBrowsing
	s.Shown = domain.ShowingProfile(profile)
	resp.Screen = &domain.Screen{Kind: domain.ScreenProfile, Profile: profile}
	return nil
}

func (u *feedUsecase) showDummy(ctx context.Context, s *domain.Session, resp *domain.FeedResponse) error {
	text, photo := u.d.AntiSpam.Dummy(ctx)
	s.Mode = domain.ModeBrowsing
	s.Shown = domain.ShowingDummy()
	s.QuestionTargetProfileID = nil
	resp.Screen = &domain.Screen{Kind: domain.ScreenAntiSpamDummy, DummyText: text, DummyPhoto: photo}
	return nil
}

func (u *feedUsecase) retry(ctx context.Context, s *domain.Session, now time.Time, resp *domain.FeedResponse) error {
	resp.Notice(domain.NoticeTryAgain)
	return u.showNext(ctx, s, now, resp)
}

func (u *feedUsecase) notifyOwner(ctx context.Context, owner *int64, t domain.InteractionType) {
	if owner == nil {
		return
	}
	if err := u.d.Notifier.Notify(ctx, *owner, t); err != nil {
		logger.Log.Warn("Failed to update employer notification",
			zap.Int64("employer_user_id", *owner), zap.Error(err))
	}
}
