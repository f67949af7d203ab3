package domain

import (
	"context"
	"time"
)

type ReengagementReason string

const (
	ReasonInactive      ReengagementReason = "inactive"
	ReasonStoppedSearch ReengagementReason = "stopped_search"
)

// ReengagementQuery selects users of one role that have gone quiet.
type ReengagementQuery struct {
	Role           UserRole
	Reason         ReengagementReason
	Cutoff         time.Time
	NotifiedBefore time.Time
}

type ReengagementTarget struct {
	TelegramID int64
	Role       UserRole
	Reason     ReengagementReason
}

type ReengagementUsecase interface {
	// RunOnce sends one reminder per eligible user and returns how many were delivered.
	RunOnce(ctx context.Context) (int, error)
}
