package domain

import (
	"context"
	"strings"
	"time"
)

type UserRole string

const (
	RoleApplicant UserRole = "applicant"
	RoleEmployer  UserRole = "employer"
)

// User is a Telegram account known to the bot. TelegramID is the primary key.
type User struct {
	TelegramID                  int64      `json:"telegram_id"`
	Username                    *string    `json:"username,omitempty"`
	FirstName                   *string    `json:"first_name,omitempty"`
	LastName                    *string    `json:"last_name,omitempty"`
	Role                        *UserRole  `json:"role,omitempty"`
	ContactPhone                *string    `json:"contact_phone,omitempty"`
	RegistrationDate            time.Time  `json:"registration_date"`
	LastActivityDate            time.Time  `json:"last_activity_date"`
	IsBanned                    bool       `json:"is_banned"`
	LastReengagementNotifSentAt *time.Time `json:"last_reengagement_notif_sent_at,omitempty"`
}

// DisplayName returns the first name, falling back to the username.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FirstName != nil && strings.TrimSpace(*u.FirstName) != "" {
		return *u.FirstName
	}
	if u.Username != nil {
		return *u.Username
	}
	return ""
}

// StartInput carries the identity facts of a /start command.
type StartInput struct {
	TelegramID   int64
	Username     string
	FirstName    string
	LastName     string
	ReferralCode string
}

type StartDestination string

const (
	DestinationRoleSelect    StartDestination = "role_select"
	DestinationApplicantMenu StartDestination = "applicant_menu"
	DestinationEmployerMenu  StartDestination = "employer_menu"
)

type StartResult struct {
	Destination StartDestination
	DisplayName string
}

type UserRepository interface {
	Upsert(ctx context.Context, user *User) error
	GetByID(ctx context.Context, telegramID int64) (*User, error)
	// TouchActivity bumps last_activity_date and reports the ban flag in one round trip.
	TouchActivity(ctx context.Context, telegramID int64, at time.Time) (bool, error)
	MarkReengagementSent(ctx context.Context, telegramID int64, at time.Time) error
	ListReengagementTargets(ctx context.Context, q ReengagementQuery) ([]ReengagementTarget, error)
}

type UserUsecase interface {
	Start(ctx context.Context, in StartInput) (*StartResult, error)
	CheckAccess(ctx context.Context, telegramID int64) (bool, error)
}
