package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func TestFromDomain(t *testing.T) {
	t.Run("Nil", func(t *testing.T) {
		assert.Nil(t, apperror.FromDomain(nil))
	})

	t.Run("WrappedNotFound", func(t *testing.T) {
		err := apperror.FromDomain(fmt.Errorf("complaint 7: %w", domain.ErrNotFound))
		assert.Equal(t, http.StatusNotFound, err.Code)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("Forbidden", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, apperror.FromDomain(domain.ErrForbidden).Code)
	})

	t.Run("PassThrough", func(t *testing.T) {
		orig := apperror.BadRequest("bad status")
		assert.Same(t, orig, apperror.FromDomain(orig))
	})

	t.Run("Unknown", func(t *testing.T) {
		err := apperror.FromDomain(errors.New("boom"))
		assert.Equal(t, http.StatusInternalServerError, err.Code)
		assert.Equal(t, "Internal Server Error", err.Message)
	})
}
