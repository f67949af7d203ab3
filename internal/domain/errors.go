package domain

import "errors"

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrStaleProfile   = errors.New("profile is no longer active")
	ErrInvalidSession = errors.New("session state is missing or malformed")
	ErrInvalidInput   = errors.New("invalid input")
	ErrForbidden      = errors.New("access denied")
	ErrDelivery       = errors.New("chat delivery failed")
)
