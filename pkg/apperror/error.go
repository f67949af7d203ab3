package apperror

import (
	"errors"
	"net/http"

	"go-jobmatch-bot/internal/domain"
)

type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

// FromDomain maps domain sentinels onto HTTP errors. AppErrors pass through unchanged.
func FromDomain(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return New(http.StatusNotFound, "Resource not found", err)
	case errors.Is(err, domain.ErrInvalidInput):
		return New(http.StatusBadRequest, "Invalid input", err)
	case errors.Is(err, domain.ErrForbidden):
		return New(http.StatusForbidden, "Access denied", err)
	case errors.Is(err, domain.ErrStaleProfile):
		return New(http.StatusConflict, "Profile is no longer active", err)
	default:
		return Internal(err)
	}
}
