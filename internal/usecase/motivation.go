package usecase

import (
	"context"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

type motivationScheduler struct {
	repo  domain.MotivationRepository
	every int
}

func NewMotivationScheduler(repo domain.MotivationRepository, every int) domain.MotivationScheduler {
	return &motivationScheduler{repo: repo, every: every}
}

// Next counts one more profile view and returns content when the
// interstitial is due. A nil result means the profile should be shown.
func (m *motivationScheduler) Next(ctx context.Context, s *domain.Session) (*domain.MotivationalContent, error) {
	if m.every <= 0 {
		return nil, nil
	}

	views := s.ViewsSinceMotivation + 1
	if views < m.every {
		s.ViewsSinceMotivation = views
		return nil, nil
	}
	s.ViewsSinceMotivation = 0

	content, err := m.repo.PickRandomActive(ctx)
	if err != nil {
		logger.Log.Warn("Failed to pick motivational content", zap.Int64("user_id", s.UserID), zap.Error(err))
		return nil, nil
	}
	if content == nil {
		return nil, nil
	}

	if content.Type != domain.MotivationTextOnly {
		content.Caption = truncateRunes(content.Caption, domain.MaxCaptionLength)
	}
	if err := m.repo.IncrementUsage(ctx, content.ID); err != nil {
		logger.Log.Warn("Failed to bump motivational content usage", zap.Int64("content_id", content.ID), zap.Error(err))
	}
	return content, nil
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
