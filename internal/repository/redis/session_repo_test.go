package redis_test

import (
	"context"
	"testing"
	"time"

	"go-jobmatch-bot/internal/domain"
	sessionredis "go-jobmatch-bot/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession(userID int64) *domain.Session {
	owner := int64(500)
	locked := time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC)
	s := domain.NewSession(userID)
	s.Mode = domain.ModeBrowsing
	s.Shown = domain.ShowingProfile(&domain.EmployerProfile{ID: 42, UserID: &owner})
	s.RecentActions = []time.Time{locked.Add(-time.Minute)}
	s.LockedUntil = &locked
	s.ViewsSinceMotivation = 3
	return s
}

func TestRedisSessionRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := sessionredis.NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	t.Run("MissingIsFreshIdle", func(t *testing.T) {
		s, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, domain.ModeIdle, s.Mode)
		assert.Equal(t, domain.ShownNothing, s.Shown.Kind)
	})

	t.Run("RoundTripWithTTL", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleSession(2)))
		assert.Equal(t, time.Hour, mr.TTL("session:2"))

		s, err := store.Get(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, domain.ShownProfile, s.Shown.Kind)
		assert.Equal(t, int64(42), s.Shown.ProfileID)
		assert.Equal(t, int64(500), *s.Shown.OwnerUserID)
		assert.Equal(t, 3, s.ViewsSinceMotivation)
		require.NotNil(t, s.LockedUntil)
	})

	t.Run("ExpiresAfterTTL", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleSession(3)))
		mr.FastForward(2 * time.Hour)
		s, err := store.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.ModeIdle, s.Mode)
	})

	t.Run("MalformedIsReplaced", func(t *testing.T) {
		require.NoError(t, mr.Set("session:4", "{not json"))
		s, err := store.Get(ctx, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(4), s.UserID)
		assert.Equal(t, domain.ShownNothing, s.Shown.Kind)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, sampleSession(5)))
		require.NoError(t, store.Delete(ctx, 5))
		assert.False(t, mr.Exists("session:5"))
	})

	t.Run("BackendDown", func(t *testing.T) {
		mr.SetError("LOADING")
		defer mr.SetError("")
		_, err := store.Get(ctx, 6)
		assert.Error(t, err)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := sessionredis.NewMemorySessionRepository(ctx, time.Hour)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	sessionredis.SetClock(store, func() time.Time { return now })

	require.NoError(t, store.Save(ctx, sampleSession(7)))

	s, err := store.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeBrowsing, s.Mode)

	t.Run("CallersDoNotShareState", func(t *testing.T) {
		s.ViewsSinceMotivation = 99
		again, err := store.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, 3, again.ViewsSinceMotivation)
	})

	t.Run("Expiry", func(t *testing.T) {
		now = now.Add(61 * time.Minute)
		expired, err := store.Get(ctx, 7)
		require.NoError(t, err)
		assert.Equal(t, domain.ModeIdle, expired.Mode)
	})
}
