package domain

import (
	"context"
	"time"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// ApplicantProfile is the job seeker's card. One per user.
type ApplicantProfile struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"user_id"`
	City             string     `json:"city"`
	Gender           Gender     `json:"gender"`
	Age              int        `json:"age"`
	Experience       string     `json:"experience"`
	IsActive         bool       `json:"is_active"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
	DeactivationDate *time.Time `json:"deactivation_date,omitempty"`
}

type ApplicantRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*ApplicantProfile, error)
	// IsActive returns false without error when the profile does not exist.
	IsActive(ctx context.Context, userID int64) (bool, error)
	SetActive(ctx context.Context, userID int64, active bool, at time.Time) error
}
