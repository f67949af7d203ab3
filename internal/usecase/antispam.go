package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	"go.uber.org/zap"
)

const DefaultDummyText = "Your activity is too high. Take a short break, new profiles will be waiting for you in a few minutes."

type AntiSpamConfig struct {
	Threshold  int
	Window     time.Duration
	Lock       time.Duration
	BufferSize int
}

type antiSpamGovernor struct {
	cfg      AntiSpamConfig
	settings domain.SettingsRepository
}

func NewAntiSpamGovernor(cfg AntiSpamConfig, settings domain.SettingsRepository) domain.AntiSpamGovernor {
	return &antiSpamGovernor{cfg: cfg, settings: settings}
}

// Expire lifts a lock whose deadline has passed. Reports whether it did.
func (g *antiSpamGovernor) Expire(s *domain.Session, now time.Time) bool {
	if s.LockedUntil == nil || now.Before(*s.LockedUntil) {
		return false
	}
	s.LockedUntil = nil
	s.RecentActions = nil
	return true
}

// Record appends an action timestamp and locks the session once the
// threshold-th newest action falls inside the window.
func (g *antiSpamGovernor) Record(s *domain.Session, now time.Time) bool {
	threshold := g.cfg.Threshold
	if threshold <= 0 {
		return false
	}

	s.RecentActions = append(s.RecentActions, now)
	capacity := max(g.cfg.BufferSize, threshold)
	if n := len(s.RecentActions); n > capacity {
		s.RecentActions = append([]time.Time(nil), s.RecentActions[n-capacity:]...)
	}

	n := len(s.RecentActions)
	if n < threshold {
		return false
	}
	newest := s.RecentActions[n-1]
	if newest.Sub(s.RecentActions[n-threshold]) > g.cfg.Window {
		return false
	}

	until := now.Add(g.cfg.Lock)
	s.LockedUntil = &until
	s.RecentActions = nil
	return true
}

func (g *antiSpamGovernor) Dummy(ctx context.Context) (string, string) {
	text := DefaultDummyText
	if v := g.setting(ctx, domain.SettingAntiSpamDummyText); v != "" {
		text = v
	}
	return text, g.setting(ctx, domain.SettingAntiSpamDummyPhotoID)
}

func (g *antiSpamGovernor) setting(ctx context.Context, key string) string {
	st, err := g.settings.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Log.Warn("Failed to read bot setting", zap.String("key", key), zap.Error(err))
		}
		return ""
	}
	if st.ValueStr == nil {
		return ""
	}
	return strings.TrimSpace(*st.ValueStr)
}
