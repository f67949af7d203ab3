package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

type responseUsecase struct {
	employers    domain.EmployerRepository
	applicants   domain.ApplicantRepository
	users        domain.UserRepository
	interactions domain.InteractionRepository
	complaints   domain.ComplaintRepository
	sessions     domain.SessionStore
	notifier     domain.EmployerNotifier
	moderation   domain.ComplaintNotifier
	now          func() time.Time
}

func NewResponseUsecase(
	employers domain.EmployerRepository,
	applicants domain.ApplicantRepository,
	users domain.UserRepository,
	interactions domain.InteractionRepository,
	complaints domain.ComplaintRepository,
	sessions domain.SessionStore,
	notifier domain.EmployerNotifier,
	moderation domain.ComplaintNotifier,
) domain.ResponseUsecase {
	return &responseUsecase{
		employers:    employers,
		applicants:   applicants,
		users:        users,
		interactions: interactions,
		complaints:   complaints,
		sessions:     sessions,
		notifier:     notifier,
		moderation:   moderation,
		now:          time.Now,
	}
}

// OpenResponses consumes the aggregate notification and shows the oldest
// unread response.
func (u *responseUsecase) OpenResponses(ctx context.Context, employerUserID int64) (*domain.ResponseCard, error) {
	if err := u.notifier.Dismiss(ctx, employerUserID); err != nil {
		logger.Log.Warn("Failed to clear notification id", zap.Int64("employer_user_id", employerUserID), zap.Error(err))
	}
	return u.FetchFirstUnread(ctx, employerUserID)
}

// FetchFirstUnread returns nil when the queue is empty.
func (u *responseUsecase) FetchFirstUnread(ctx context.Context, employerUserID int64) (*domain.ResponseCard, error) {
	profile, err := u.employers.GetByUserID(ctx, employerUserID)
	if err != nil {
		return nil, err
	}

	i, remaining, err := u.interactions.TakeOldestUnread(ctx, profile.ID, u.now())
	if err != nil {
		return nil, fmt.Errorf("take oldest unread: %w", err)
	}
	if i == nil {
		return nil, nil
	}
	return u.present(ctx, employerUserID, i, remaining)
}

func (u *responseUsecase) ViewInteraction(ctx context.Context, employerUserID, interactionID int64) (*domain.ResponseCard, error) {
	profile, err := u.employers.GetByUserID(ctx, employerUserID)
	if err != nil {
		return nil, err
	}
	i, err := u.interactions.GetByID(ctx, interactionID)
	if err != nil {
		return nil, err
	}
	if i.EmployerProfileID != profile.ID || !i.IsResponse() {
		return nil, domain.ErrForbidden
	}

	remaining, err := u.interactions.MarkViewed(ctx, i.ID, u.now())
	if err != nil {
		return nil, fmt.Errorf("mark viewed: %w", err)
	}
	i.IsViewedByEmployer = true
	return u.present(ctx, employerUserID, i, remaining)
}

func (u *responseUsecase) present(ctx context.Context, employerUserID int64, i *domain.Interaction, remaining int) (*domain.ResponseCard, error) {
	card := &domain.ResponseCard{Interaction: i, Remaining: remaining}

	applicant, err := u.applicants.GetByUserID(ctx, i.ApplicantUserID)
	switch {
	case err == nil:
		card.Applicant = applicant
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}
	user, err := u.users.GetByID(ctx, i.ApplicantUserID)
	switch {
	case err == nil:
		card.User = user
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	if card.Incomplete() {
		logger.Log.Info("Response references missing applicant data",
			zap.Int64("interaction_id", i.ID), zap.Int64("applicant_user_id", i.ApplicantUserID))
		return card, nil
	}

	s, err := u.sessions.Get(ctx, employerUserID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	applicantID := i.ApplicantUserID
	s.ReportableApplicantID = &applicantID
	s.UpdatedAt = u.now()
	if err := u.sessions.Save(ctx, s); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return card, nil
}

// ReportApplicant is only allowed for the applicant whose card the employer
// was shown last.
func (u *responseUsecase) ReportApplicant(ctx context.Context, employerUserID, applicantUserID int64) (*domain.Complaint, error) {
	s, err := u.sessions.Get(ctx, employerUserID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s.ReportableApplicantID == nil || *s.ReportableApplicantID != applicantUserID {
		return nil, domain.ErrForbidden
	}

	now := u.now()
	c := &domain.Complaint{
		ReporterUserID: employerUserID,
		ReportedUserID: &applicantUserID,
		Status:         domain.ComplaintNew,
		CreatedAt:      now,
	}
	profile, err := u.applicants.GetByUserID(ctx, applicantUserID)
	switch {
	case err == nil:
		profileID := profile.ID
		c.ReportedApplicantProfileID = &profileID
	case !errors.Is(err, domain.ErrNotFound):
		return nil, err
	}

	if err := u.complaints.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create complaint: %w", err)
	}

	s.ReportableApplicantID = nil
	s.UpdatedAt = now
	if err := u.sessions.Save(ctx, s); err != nil {
		logger.Log.Warn("Failed to save session", zap.Int64("user_id", employerUserID), zap.Error(err))
	}

	u.moderation.NotifyAdmins(ctx, c)
	return c, nil
}
