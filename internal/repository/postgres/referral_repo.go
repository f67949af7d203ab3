package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type referralRepo struct {
	db *pgxpool.Pool
}

func NewReferralRepository(db *pgxpool.Pool) domain.ReferralRepository {
	return &referralRepo{db: db}
}

func (r *referralRepo) GetByCode(ctx context.Context, code string) (*domain.ReferralLink, error) {
	var l domain.ReferralLink
	err := r.db.QueryRow(ctx,
		`SELECT id, code, name, created_at FROM referral_links WHERE code = $1`, code,
	).Scan(&l.ID, &l.Code, &l.Name, &l.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *referralRepo) Create(ctx context.Context, link *domain.ReferralLink) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO referral_links (code, name) VALUES ($1, $2) RETURNING id, created_at`,
		link.Code, link.Name,
	).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if isPgError(err, pgUniqueViolation) {
			return apperror.Conflict("Referral code already exists")
		}
		return err
	}
	return nil
}

func (r *referralRepo) RecordUsage(ctx context.Context, linkID, userID int64, at time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO referral_usages (link_id, user_id, used_at) VALUES ($1, $2, $3)`, linkID, userID, at)
	return err
}
