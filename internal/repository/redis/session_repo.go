package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/logger"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

func sessionKey(userID int64) string {
	return sessionKeyPrefix + strconv.FormatInt(userID, 10)
}

type sessionRepo struct {
	client *goredis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionRepository stores sessions as JSON documents that expire ttl after the last save.
func NewSessionRepository(client *goredis.Client, ttl time.Duration) domain.SessionStore {
	return &sessionRepo{client: client, ttl: ttl, now: time.Now}
}

func (r *sessionRepo) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	raw, err := r.client.Get(ctx, sessionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return domain.NewSession(userID), nil
		}
		return nil, fmt.Errorf("load session %d: %w", userID, err)
	}
	return decodeSession(userID, raw), nil
}

func (r *sessionRepo) Save(ctx context.Context, s *domain.Session) error {
	s.UpdatedAt = r.now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKey(s.UserID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %d: %w", s.UserID, err)
	}
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, userID int64) error {
	return r.client.Del(ctx, sessionKey(userID)).Err()
}

// decodeSession never fails: a corrupt document is logged and replaced by a fresh session.
func decodeSession(userID int64, raw []byte) *domain.Session {
	s := domain.NewSession(userID)
	if err := json.Unmarshal(raw, s); err != nil || s.UserID != userID {
		logger.Log.Warn("discarding malformed session",
			zap.Int64("user_id", userID),
			zap.Error(errors.Join(domain.ErrInvalidSession, err)),
		)
		return domain.NewSession(userID)
	}
	if s.Shown.Kind == "" {
		s.Shown = domain.ShowingNothing()
	}
	if s.Mode == "" {
		s.Mode = domain.ModeIdle
	}
	return s
}
