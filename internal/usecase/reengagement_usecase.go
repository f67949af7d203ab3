package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

type ReengagementConfig struct {
	ApplicantAfter time.Duration
	EmployerAfter  time.Duration
	MinInterval    time.Duration
}

var reengagementTexts = map[domain.UserRole]map[domain.ReengagementReason][]string{
	domain.RoleApplicant: {
		domain.ReasonInactive: {
			"New employers joined while you were away. Open the feed and take a look!",
			"Still looking for a job? Fresh vacancies are waiting in your feed.",
		},
		domain.ReasonStoppedSearch: {
			"You paused your job search a couple of days ago. Ready to continue? Resume search from the menu.",
			"Employers are still hiring. Resume your search whenever you are ready.",
		},
	},
	domain.RoleEmployer: {
		domain.ReasonInactive: {
			"Candidates may be waiting for your answer. Check your responses!",
			"It has been a while. Open the bot to see who is interested in your vacancy.",
		},
		domain.ReasonStoppedSearch: {
			"Your vacancy is hidden. Reactivate it to start receiving candidates again.",
			"Still hiring? Turn your vacancy back on and get new responses.",
		},
	},
}

type rotationKey struct {
	userID int64
	role   domain.UserRole
	reason domain.ReengagementReason
}

type reengagementUsecase struct {
	users     domain.UserRepository
	messenger domain.Messenger
	cfg       ReengagementConfig
	now       func() time.Time

	mu       sync.Mutex
	rotation map[rotationKey]int
}

func NewReengagementUsecase(users domain.UserRepository, messenger domain.Messenger, cfg ReengagementConfig) domain.ReengagementUsecase {
	return &reengagementUsecase{
		users:     users,
		messenger: messenger,
		cfg:       cfg,
		now:       time.Now,
		rotation:  make(map[rotationKey]int),
	}
}

// RunOnce sends one reminder to every eligible user and returns how many
// were delivered. A user matching several queries is contacted once.
func (u *reengagementUsecase) RunOnce(ctx context.Context) (int, error) {
	now := u.now()
	notifiedBefore := now.Add(-u.cfg.MinInterval)
	queries := []domain.ReengagementQuery{
		{Role: domain.RoleApplicant, Reason: domain.ReasonStoppedSearch, Cutoff: now.Add(-u.cfg.ApplicantAfter)},
		{Role: domain.RoleEmployer, Reason: domain.ReasonStoppedSearch, Cutoff: now.Add(-u.cfg.EmployerAfter)},
		{Role: domain.RoleApplicant, Reason: domain.ReasonInactive, Cutoff: now.Add(-u.cfg.ApplicantAfter)},
		{Role: domain.RoleEmployer, Reason: domain.ReasonInactive, Cutoff: now.Add(-u.cfg.EmployerAfter)},
	}

	seen := make(map[int64]bool)
	sent := 0
	for _, q := range queries {
		q.NotifiedBefore = notifiedBefore
		targets, err := u.users.ListReengagementTargets(ctx, q)
		if err != nil {
			return sent, fmt.Errorf("list %s %s targets: %w", q.Role, q.Reason, err)
		}

		for _, t := range targets {
			if err := ctx.Err(); err != nil {
				return sent, err
			}
			if seen[t.TelegramID] {
				continue
			}
			seen[t.TelegramID] = true

			if u.send(ctx, t, now) {
				sent++
			}
		}
	}

	if sent > 0 {
		logger.Log.Info("Re-engagement pass finished", zap.Int("sent", sent))
	}
	return sent, nil
}

func (u *reengagementUsecase) send(ctx context.Context, t domain.ReengagementTarget, now time.Time) bool {
	texts := reengagementTexts[t.Role][t.Reason]
	if len(texts) == 0 {
		return false
	}

	key := rotationKey{userID: t.TelegramID, role: t.Role, reason: t.Reason}
	u.mu.Lock()
	last, ok := u.rotation[key]
	if !ok {
		last = -1
	}
	idx := (last + 1) % len(texts)
	u.mu.Unlock()

	if _, err := u.messenger.SendText(ctx, t.TelegramID, texts[idx], nil); err != nil {
		logger.Log.Warn("Failed to send re-engagement message",
			zap.Int64("user_id", t.TelegramID),
			zap.String("reason", string(t.Reason)),
			zap.Error(err),
		)
		return false
	}

	u.mu.Lock()
	u.rotation[key] = idx
	u.mu.Unlock()

	if err := u.users.MarkReengagementSent(ctx, t.TelegramID, now); err != nil {
		logger.Log.Warn("Failed to stamp re-engagement time", zap.Int64("user_id", t.TelegramID), zap.Error(err))
	}
	return true
}
