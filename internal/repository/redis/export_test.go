package redis

import (
	"time"

	"go-jobmatch-bot/internal/domain"
)

// SetClock swaps the time source of a store built by this package.
func SetClock(store domain.SessionStore, now func() time.Time) {
	switch s := store.(type) {
	case *sessionRepo:
		s.now = now
	case *memorySessionRepo:
		s.now = now
	}
}
