package domain

import "context"

type MotivationType string

const (
	MotivationVideo    MotivationType = "video"
	MotivationPhoto    MotivationType = "photo"
	MotivationTextOnly MotivationType = "text_only"
)

// MaxCaptionLength is the Telegram limit for media captions.
const MaxCaptionLength = 1024

type MotivationalContent struct {
	ID         int64          `json:"id"`
	Type       MotivationType `json:"content_type"`
	FileID     *string        `json:"file_id,omitempty"`
	Caption    string         `json:"caption"`
	IsActive   bool           `json:"is_active"`
	UsageCount int            `json:"usage_count"`
}

type MotivationRepository interface {
	// PickRandomActive returns nil when there is no active content.
	PickRandomActive(ctx context.Context) (*MotivationalContent, error)
	IncrementUsage(ctx context.Context, id int64) error
}

type MotivationScheduler interface {
	// Next counts one view and returns content when an interstitial is due.
	Next(ctx context.Context, s *Session) (*MotivationalContent, error)
}
