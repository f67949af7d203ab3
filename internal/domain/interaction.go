package domain

import (
	"context"
	"time"
)

type InteractionType string

const (
	InteractionLike     InteractionType = "like"
	InteractionDislike  InteractionType = "dislike"
	InteractionQuestion InteractionType = "question_sent"
)

// Interaction is one applicant action against an employer profile.
// While CooldownUntil is in the future the pair is excluded from selection.
type Interaction struct {
	ID                 int64           `json:"id"`
	ApplicantUserID    int64           `json:"applicant_user_id"`
	EmployerProfileID  int64           `json:"employer_profile_id"`
	Type               InteractionType `json:"interaction_type"`
	QuestionText       *string         `json:"question_text,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
	CooldownUntil      time.Time       `json:"cooldown_until"`
	IsViewedByEmployer bool            `json:"is_viewed_by_employer"`
}

// IsResponse reports whether the interaction reaches the employer's inbox.
func (i *Interaction) IsResponse() bool {
	return i.Type == InteractionLike || i.Type == InteractionQuestion
}

// RecordResult is what the ledger reports back after a write.
type RecordResult struct {
	InteractionID int64
	Refreshed     bool
}

type InteractionRepository interface {
	Insert(ctx context.Context, i *Interaction) error
	// UpsertLike re-bumps an unviewed like for the pair or inserts a new one, in one transaction.
	UpsertLike(ctx context.Context, applicantUserID, employerProfileID int64, now, cooldownUntil time.Time) (*RecordResult, error)
	FindLiveLike(ctx context.Context, applicantUserID, employerProfileID int64) (*Interaction, error)
	// InsertReport stores the complaint and the suppression row in one transaction.
	InsertReport(ctx context.Context, c *Complaint, suppression *Interaction) error
	GetByID(ctx context.Context, id int64) (*Interaction, error)
	// TakeOldestUnread marks the oldest unread response viewed and returns it with the count still unread.
	TakeOldestUnread(ctx context.Context, employerProfileID int64, at time.Time) (*Interaction, int, error)
	// MarkViewed marks one response viewed and returns the count still unread for its profile.
	MarkViewed(ctx context.Context, interactionID int64, at time.Time) (int, error)
}

type InteractionLedger interface {
	RecordInteraction(ctx context.Context, applicantUserID, employerProfileID int64, t InteractionType, questionText *string) (*RecordResult, error)
	IsLiveLike(ctx context.Context, applicantUserID, employerProfileID int64) (*Interaction, error)
	RecordReport(ctx context.Context, reporterUserID int64, profile *EmployerProfile) (*Complaint, error)
}

// ResponseCard is what an employer sees for one queued response.
type ResponseCard struct {
	Interaction *Interaction
	Applicant   *ApplicantProfile
	User        *User
	Remaining   int
}

// Incomplete reports whether the applicant's data vanished after the response was recorded.
func (c *ResponseCard) Incomplete() bool {
	return c.Applicant == nil || c.User == nil
}

type ResponseUsecase interface {
	// OpenResponses consumes the aggregate notification and returns the first unread card.
	OpenResponses(ctx context.Context, employerUserID int64) (*ResponseCard, error)
	FetchFirstUnread(ctx context.Context, employerUserID int64) (*ResponseCard, error)
	ViewInteraction(ctx context.Context, employerUserID, interactionID int64) (*ResponseCard, error)
	ReportApplicant(ctx context.Context, employerUserID, applicantUserID int64) (*Complaint, error)
}

type EmployerNotifier interface {
	Notify(ctx context.Context, employerUserID int64, t InteractionType) error
	// Dismiss strips the button from the stored notification message and forgets it.
	Dismiss(ctx context.Context, employerUserID int64) error
}
