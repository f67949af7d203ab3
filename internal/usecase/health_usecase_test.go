package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go-jobmatch-bot/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthUsecase_Check(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	t.Run("all up", func(t *testing.T) {
		status, ok := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{"postgres": up}).Check(context.Background())
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"status": "ok", "postgres": "ok"}, status)
	})

	t.Run("one down", func(t *testing.T) {
		status, ok := usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"postgres": up,
			"redis":    down,
		}).Check(context.Background())
		assert.False(t, ok)
		assert.Equal(t, "degraded", status["status"])
		assert.Equal(t, "down", status["redis"])
	})
}
