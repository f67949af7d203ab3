package domain

import (
	"context"
	"time"
)

type WorkFormat string

const (
	WorkFormatOffline WorkFormat = "offline"
	WorkFormatOnline  WorkFormat = "online"
	WorkFormatHybrid  WorkFormat = "hybrid"
)

// EmployerProfile is a vacancy card. Dummy profiles have no owner and only fill an empty feed.
type EmployerProfile struct {
	ID                          int64      `json:"id"`
	UserID                      *int64     `json:"user_id,omitempty"`
	CompanyName                 string     `json:"company_name"`
	City                        string     `json:"city"`
	Position                    string     `json:"position"`
	Salary                      string     `json:"salary"`
	MinAgeCandidate             *int       `json:"min_age_candidate,omitempty"`
	Description                 string     `json:"description"`
	WorkFormat                  WorkFormat `json:"work_format"`
	PhotoFileID                 *string    `json:"photo_file_id,omitempty"`
	IsActive                    bool       `json:"is_active"`
	IsDummy                     bool       `json:"is_dummy"`
	ActiveNotificationMessageID *int       `json:"active_notification_message_id,omitempty"`
	CreatedByAdminID            *int64     `json:"created_by_admin_id,omitempty"`
	CreatedAt                   time.Time  `json:"created_at"`
	UpdatedAt                   time.Time  `json:"updated_at"`
	DeactivationDate            *time.Time `json:"deactivation_date,omitempty"`
}

type CityMatch int

const (
	CityAny CityMatch = iota
	CitySame
	CityOther
)

// CandidateFilter describes one selection tier.
type CandidateFilter struct {
	ApplicantUserID int64
	City            string
	Match           CityMatch
	Dummy           bool
	Now             time.Time
}

// NotificationState is the employer's aggregate-notification handle plus the live unread count.
type NotificationState struct {
	ProfileID int64
	MessageID *int
	Unread    int
}

type EmployerRepository interface {
	GetByID(ctx context.Context, id int64) (*EmployerProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*EmployerProfile, error)
	// PickCandidate returns a random profile matching the filter, or nil when the tier is empty.
	PickCandidate(ctx context.Context, f CandidateFilter) (*EmployerProfile, error)
	NotificationState(ctx context.Context, employerUserID int64) (*NotificationState, error)
	SetNotificationMessageID(ctx context.Context, profileID int64, messageID *int) error
}

type CandidateSelector interface {
	// SelectNext returns nil when the feed is exhausted.
	SelectNext(ctx context.Context, applicantUserID int64) (*EmployerProfile, error)
}
