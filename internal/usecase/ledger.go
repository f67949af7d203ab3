package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go-jobmatch-bot/internal/domain"
)

// Cooldowns is how long each interaction keeps a profile out of an
// applicant's feed.
type Cooldowns struct {
	Like     time.Duration
	Dislike  time.Duration
	Question time.Duration
	Report   time.Duration
}

// Hours converts a fractional hour setting into a duration.
func Hours(h float64) time.Duration {
	return time.Duration(math.Round(h * float64(time.Hour)))
}

type interactionLedger struct {
	repo      domain.InteractionRepository
	cooldowns Cooldowns
	now       func() time.Time
}

func NewInteractionLedger(repo domain.InteractionRepository, cooldowns Cooldowns) domain.InteractionLedger {
	return &interactionLedger{repo: repo, cooldowns: cooldowns, now: time.Now}
}

func (l *interactionLedger) RecordInteraction(ctx context.Context, applicantUserID, employerProfileID int64, t domain.InteractionType, questionText *string) (*domain.RecordResult, error) {
	now := l.now()

	switch t {
	case domain.InteractionLike:
		return l.repo.UpsertLike(ctx, applicantUserID, employerProfileID, now, now.Add(l.cooldowns.Like))

	case domain.InteractionDislike, domain.InteractionQuestion:
		i := &domain.Interaction{
			ApplicantUserID:   applicantUserID,
			EmployerProfileID: employerProfileID,
			Type:              t,
			CreatedAt:         now,
			UpdatedAt:         now,
			CooldownUntil:     now.Add(l.cooldowns.Dislike),
		}
		if t == domain.InteractionQuestion {
			if questionText == nil || strings.TrimSpace(*questionText) == "" {
				return nil, fmt.Errorf("question text is empty: %w", domain.ErrInvalidInput)
			}
			i.QuestionText = questionText
			i.CooldownUntil = now.Add(l.cooldowns.Question)
		}
		if err := l.repo.Insert(ctx, i); err != nil {
			return nil, err
		}
		return &domain.RecordResult{InteractionID: i.ID}, nil
	}

	return nil, fmt.Errorf("unknown interaction type %q: %w", t, domain.ErrInvalidInput)
}

func (l *interactionLedger) IsLiveLike(ctx context.Context, applicantUserID, employerProfileID int64) (*domain.Interaction, error) {
	return l.repo.FindLiveLike(ctx, applicantUserID, employerProfileID)
}

// RecordReport files a complaint against an employer profile and hides the
// profile from the reporter for the report cooldown, atomically.
func (l *interactionLedger) RecordReport(ctx context.Context, reporterUserID int64, profile *domain.EmployerProfile) (*domain.Complaint, error) {
	now := l.now()
	profileID := profile.ID

	c := &domain.Complaint{
		ReporterUserID:            reporterUserID,
		ReportedUserID:            profile.UserID,
		ReportedEmployerProfileID: &profileID,
		Status:                    domain.ComplaintNew,
		CreatedAt:                 now,
	}
	suppression := &domain.Interaction{
		ApplicantUserID:   reporterUserID,
		EmployerProfileID: profileID,
		Type:              domain.InteractionDislike,
		CreatedAt:         now,
		UpdatedAt:         now,
		CooldownUntil:     now.Add(l.cooldowns.Report),
	}
	if err := l.repo.InsertReport(ctx, c, suppression); err != nil {
		return nil, err
	}
	return c, nil
}
