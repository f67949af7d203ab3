package domain

import (
	"context"
	"time"
)

type SessionMode string

const (
	ModeIdle               SessionMode = "idle"
	ModeBrowsing           SessionMode = "browsing"
	ModeAskingQuestion     SessionMode = "asking_question"
	ModeWatchingMotivation SessionMode = "watching_motivation"
)

type ShownKind string

const (
	ShownNothing    ShownKind = "nothing"
	ShownProfile    ShownKind = "profile"
	ShownDummy      ShownKind = "dummy"
	ShownMotivation ShownKind = "motivation"
)

// Shown is what the applicant currently has on screen.
// ProfileID and OwnerUserID are set only for ShownProfile, ContentID only for ShownMotivation.
type Shown struct {
	Kind        ShownKind `json:"kind"`
	ProfileID   int64     `json:"profile_id,omitempty"`
	OwnerUserID *int64    `json:"owner_user_id,omitempty"`
	ContentID   int64     `json:"content_id,omitempty"`
}

func ShowingNothing() Shown { return Shown{Kind: ShownNothing} }

func ShowingProfile(p *EmployerProfile) Shown {
	return Shown{Kind: ShownProfile, ProfileID: p.ID, OwnerUserID: p.UserID}
}

func ShowingDummy() Shown { return Shown{Kind: ShownDummy} }

func ShowingMotivation(contentID int64) Shown {
	return Shown{Kind: ShownMotivation, ContentID: contentID}
}

// Session is the per-user conversation state kept between chat updates.
type Session struct {
	UserID                  int64       `json:"user_id"`
	Mode                    SessionMode `json:"mode"`
	Shown                   Shown       `json:"shown"`
	QuestionTargetProfileID *int64      `json:"question_target_profile_id,omitempty"`
	RecentActions           []time.Time `json:"recent_actions,omitempty"`
	LockedUntil             *time.Time  `json:"locked_until,omitempty"`
	ViewsSinceMotivation    int         `json:"views_since_motivation"`
	ReportableApplicantID   *int64      `json:"reportable_applicant_id,omitempty"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

func NewSession(userID int64) *Session {
	return &Session{UserID: userID, Mode: ModeIdle, Shown: ShowingNothing()}
}

// ResetBrowsing drops everything tied to the feed. Anti-spam state survives.
func (s *Session) ResetBrowsing() {
	s.Mode = ModeIdle
	s.Shown = ShowingNothing()
	s.QuestionTargetProfileID = nil
}

// Clear returns the session to its zero state.
func (s *Session) Clear() {
	*s = *NewSession(s.UserID)
}

func (s *Session) IsLocked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

type SessionStore interface {
	// Get returns a fresh idle session when none is stored.
	Get(ctx context.Context, userID int64) (*Session, error)
	Save(ctx context.Context, s *Session) error
	Delete(ctx context.Context, userID int64) error
}
