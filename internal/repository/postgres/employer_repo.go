package postgres

import (
	"context"
	"errors"
	"fmt"

	"go-jobmatch-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employerColumns = `id, user_id, company_name, city, position, COALESCE(salary, ''), min_age_candidate,
        description, work_format, photo_file_id, is_active, is_dummy, active_notification_message_id,
        created_by_admin_id, created_at, updated_at, deactivation_date`

type employerRepo struct {
	db *pgxpool.Pool
}

func NewEmployerRepository(db *pgxpool.Pool) domain.EmployerRepository {
	return &employerRepo{db: db}
}

func scanEmployer(row pgx.Row) (*domain.EmployerProfile, error) {
	var p domain.EmployerProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.CompanyName, &p.City, &p.Position, &p.Salary, &p.MinAgeCandidate,
		&p.Description, &p.WorkFormat, &p.PhotoFileID, &p.IsActive, &p.IsDummy, &p.ActiveNotificationMessageID,
		&p.CreatedByAdminID, &p.CreatedAt, &p.UpdatedAt, &p.DeactivationDate,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *employerRepo) GetByID(ctx context.Context, id int64) (*domain.EmployerProfile, error) {
	p, err := scanEmployer(r.db.QueryRow(ctx, `SELECT `+employerColumns+` FROM employer_profiles WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

func (r *employerRepo) GetByUserID(ctx context.Context, userID int64) (*domain.EmployerProfile, error) {
	p, err := scanEmployer(r.db.QueryRow(ctx, `SELECT `+employerColumns+` FROM employer_profiles WHERE user_id = $1`, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return p, err
}

// PickCandidate draws one random active profile of the tier described by f.
// Profiles with a live cooldown for the applicant are never returned.
func (r *employerRepo) PickCandidate(ctx context.Context, f domain.CandidateFilter) (*domain.EmployerProfile, error) {
	query := `SELECT ` + employerColumns + `
              FROM employer_profiles
              WHERE is_active
                AND is_dummy = $1
                AND NOT EXISTS (
                    SELECT 1 FROM applicant_employer_interactions i
                    WHERE i.employer_profile_id = employer_profiles.id
                      AND i.applicant_user_id = $2
                      AND i.cooldown_until > $3
                )`
	args := []any{f.Dummy, f.ApplicantUserID, f.Now}

	switch f.Match {
	case domain.CitySame:
		query += ` AND lower(city) = $4`
		args = append(args, f.City)
	case domain.CityOther:
		query += ` AND lower(city) <> $4`
		args = append(args, f.City)
	case domain.CityAny:
	default:
		return nil, fmt.Errorf("pick candidate: unknown city match %d", f.Match)
	}
	query += ` ORDER BY random() LIMIT 1`

	p, err := scanEmployer(r.db.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *employerRepo) NotificationState(ctx context.Context, employerUserID int64) (*domain.NotificationState, error) {
	query := `SELECT ep.id, ep.active_notification_message_id,
                     (SELECT count(*) FROM applicant_employer_interactions i
                      WHERE i.employer_profile_id = ep.id
                        AND NOT i.is_viewed_by_employer
                        AND i.interaction_type IN ('like', 'question_sent'))
              FROM employer_profiles ep
              WHERE ep.user_id = $1`

	var st domain.NotificationState
	err := r.db.QueryRow(ctx, query, employerUserID).Scan(&st.ProfileID, &st.MessageID, &st.Unread)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

func (r *employerRepo) SetNotificationMessageID(ctx context.Context, profileID int64, messageID *int) error {
	result, err := r.db.Exec(ctx,
		`UPDATE employer_profiles SET active_notification_message_id = $2 WHERE id = $1`, profileID, messageID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
