package postgres

import (
	"context"
	"errors"
	"time"

	"go-jobmatch-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type applicantRepo struct {
	db *pgxpool.Pool
}

func NewApplicantRepository(db *pgxpool.Pool) domain.ApplicantRepository {
	return &applicantRepo{db: db}
}

func (r *applicantRepo) GetByUserID(ctx context.Context, userID int64) (*domain.ApplicantProfile, error) {
	query := `SELECT id, user_id, city, gender, age, experience, is_active, created_at, updated_at, deactivation_date
              FROM applicant_profiles WHERE user_id = $1`

	var p domain.ApplicantProfile
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&p.ID, &p.UserID, &p.City, &p.Gender, &p.Age, &p.Experience,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt, &p.DeactivationDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *applicantRepo) IsActive(ctx context.Context, userID int64) (bool, error) {
	var active bool
	err := r.db.QueryRow(ctx, `SELECT is_active FROM applicant_profiles WHERE user_id = $1`, userID).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return active, nil
}

// SetActive toggles the search flag. Deactivation stamps deactivation_date, reactivation clears it.
func (r *applicantRepo) SetActive(ctx context.Context, userID int64, active bool, at time.Time) error {
	query := `UPDATE applicant_profiles
              SET is_active = $2,
                  deactivation_date = CASE WHEN $2 THEN NULL ELSE $3::timestamptz END,
                  updated_at = $3
              WHERE user_id = $1`

	result, err := r.db.Exec(ctx, query, userID, active, at)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
