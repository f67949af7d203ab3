package redis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go-jobmatch-bot/internal/domain"
)

type memoryEntry struct {
	raw       []byte
	expiresAt time.Time
}

// memorySessionRepo is the fallback store used when Redis is not configured.
// Sessions are kept serialized so callers never share pointers.
type memorySessionRepo struct {
	entries sync.Map
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionRepository starts a sweeper that lives until ctx is cancelled.
func NewMemorySessionRepository(ctx context.Context, ttl time.Duration) domain.SessionStore {
	r := &memorySessionRepo{ttl: ttl, now: time.Now}
	go r.sweep(ctx, 5*time.Minute)
	return r
}

func (r *memorySessionRepo) sweep(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := r.now()
			r.entries.Range(func(key, value any) bool {
				if now.After(value.(memoryEntry).expiresAt) {
					r.entries.Delete(key)
				}
				return true
			})
		}
	}
}

func (r *memorySessionRepo) Get(_ context.Context, userID int64) (*domain.Session, error) {
	v, ok := r.entries.Load(userID)
	if !ok {
		return domain.NewSession(userID), nil
	}
	entry := v.(memoryEntry)
	if r.now().After(entry.expiresAt) {
		r.entries.Delete(userID)
		return domain.NewSession(userID), nil
	}
	return decodeSession(userID, entry.raw), nil
}

func (r *memorySessionRepo) Save(_ context.Context, s *domain.Session) error {
	s.UpdatedAt = r.now()
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	r.entries.Store(s.UserID, memoryEntry{raw: raw, expiresAt: s.UpdatedAt.Add(r.ttl)})
	return nil
}

func (r *memorySessionRepo) Delete(_ context.Context, userID int64) error {
	r.entries.Delete(userID)
	return nil
}
