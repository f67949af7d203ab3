package domain

import (
	"context"
	"time"
)

type ReferralLink struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReferralLinkRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

type ReferralRepository interface {
	GetByCode(ctx context.Context, code string) (*ReferralLink, error)
	Create(ctx context.Context, link *ReferralLink) error
	RecordUsage(ctx context.Context, linkID, userID int64, at time.Time) error
}

type ReferralUsecase interface {
	CreateLink(ctx context.Context, req *CreateReferralLinkRequest) (*ReferralLink, error)
}
