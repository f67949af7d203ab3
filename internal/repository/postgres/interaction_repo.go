package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobmatch-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const interactionColumns = `id, applicant_user_id, employer_profile_id, interaction_type, question_text,
        created_at, updated_at, cooldown_until, is_viewed_by_employer`

const countUnreadQuery = `SELECT count(*) FROM applicant_employer_interactions
        WHERE employer_profile_id = $1
          AND NOT is_viewed_by_employer
          AND interaction_type IN ('like', 'question_sent')`

type interactionRepo struct {
	db *pgxpool.Pool
}

func NewInteractionRepository(db *pgxpool.Pool) domain.InteractionRepository {
	return &interactionRepo{db: db}
}

func scanInteraction(row pgx.Row) (*domain.Interaction, error) {
	var i domain.Interaction
	err := row.Scan(
		&i.ID, &i.ApplicantUserID, &i.EmployerProfileID, &i.Type, &i.QuestionText,
		&i.CreatedAt, &i.UpdatedAt, &i.CooldownUntil, &i.IsViewedByEmployer,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertInteraction(ctx context.Context, q querier, i *domain.Interaction) error {
	query := `INSERT INTO applicant_employer_interactions
                  (applicant_user_id, employer_profile_id, interaction_type, question_text, created_at, updated_at, cooldown_until)
              VALUES ($1, $2, $3, $4, $5, $5, $6)
              RETURNING id`
	return q.QueryRow(ctx, query,
		i.ApplicantUserID, i.EmployerProfileID, string(i.Type), i.QuestionText, i.CreatedAt, i.CooldownUntil,
	).Scan(&i.ID)
}

func (r *interactionRepo) Insert(ctx context.Context, i *domain.Interaction) error {
	if err := insertInteraction(ctx, r.db, i); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("insert interaction: %w", domain.ErrNotFound)
		}
		return err
	}
	i.UpdatedAt = i.CreatedAt
	return nil
}

// UpsertLike keeps at most one unviewed like per pair. An existing one gets its created_at and
// cooldown bumped so it moves to the back of the employer queue.
func (r *interactionRepo) UpsertLike(ctx context.Context, applicantUserID, employerProfileID int64, now, cooldownUntil time.Time) (*domain.RecordResult, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	res := &domain.RecordResult{}
	err = tx.QueryRow(ctx,
		`SELECT id FROM applicant_employer_interactions
         WHERE applicant_user_id = $1 AND employer_profile_id = $2
           AND interaction_type = 'like' AND NOT is_viewed_by_employer
         FOR UPDATE`,
		applicantUserID, employerProfileID,
	).Scan(&res.InteractionID)

	switch {
	case err == nil:
		_, err = tx.Exec(ctx,
			`UPDATE applicant_employer_interactions
             SET created_at = $2, updated_at = $2, cooldown_until = $3
             WHERE id = $1`,
			res.InteractionID, now, cooldownUntil)
		if err != nil {
			return nil, err
		}
		res.Refreshed = true

	case errors.Is(err, pgx.ErrNoRows):
		// A concurrent like for the same pair lands on the partial unique index and becomes a refresh.
		err = tx.QueryRow(ctx,
			`INSERT INTO applicant_employer_interactions
                 (applicant_user_id, employer_profile_id, interaction_type, created_at, updated_at, cooldown_until)
             VALUES ($1, $2, 'like', $3, $3, $4)
             ON CONFLICT (applicant_user_id, employer_profile_id)
                 WHERE interaction_type = 'like' AND NOT is_viewed_by_employer
             DO UPDATE SET created_at = EXCLUDED.created_at,
                           updated_at = EXCLUDED.updated_at,
                           cooldown_until = EXCLUDED.cooldown_until
             RETURNING id, (xmax::text <> '0')`,
			applicantUserID, employerProfileID, now, cooldownUntil,
		).Scan(&res.InteractionID, &res.Refreshed)
		if err != nil {
			if isPgError(err, pgForeignKeyViolation) {
				return nil, fmt.Errorf("insert like: %w", domain.ErrNotFound)
			}
			return nil, err
		}

	default:
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return res, nil
}

func (r *interactionRepo) FindLiveLike(ctx context.Context, applicantUserID, employerProfileID int64) (*domain.Interaction, error) {
	query := `SELECT ` + interactionColumns + ` FROM applicant_employer_interactions
              WHERE applicant_user_id = $1 AND employer_profile_id = $2
                AND interaction_type = 'like' AND NOT is_viewed_by_employer`
	i, err := scanInteraction(r.db.QueryRow(ctx, query, applicantUserID, employerProfileID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return i, err
}

func (r *interactionRepo) InsertReport(ctx context.Context, c *domain.Complaint, suppression *domain.Interaction) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := insertComplaint(ctx, tx, c); err != nil {
		return err
	}
	if err := insertInteraction(ctx, tx, suppression); err != nil {
		if isPgError(err, pgForeignKeyViolation) {
			return fmt.Errorf("insert report suppression: %w", domain.ErrNotFound)
		}
		return err
	}
	suppression.UpdatedAt = suppression.CreatedAt

	return tx.Commit(ctx)
}

func (r *interactionRepo) GetByID(ctx context.Context, id int64) (*domain.Interaction, error) {
	i, err := scanInteraction(r.db.QueryRow(ctx,
		`SELECT `+interactionColumns+` FROM applicant_employer_interactions WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return i, err
}

func (r *interactionRepo) TakeOldestUnread(ctx context.Context, employerProfileID int64, at time.Time) (*domain.Interaction, int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback(ctx)

	query := `UPDATE applicant_employer_interactions
              SET is_viewed_by_employer = TRUE, updated_at = $2
              WHERE id = (
                  SELECT id FROM applicant_employer_interactions
                  WHERE employer_profile_id = $1
                    AND NOT is_viewed_by_employer
                    AND interaction_type IN ('like', 'question_sent')
                  ORDER BY created_at ASC, id ASC
                  LIMIT 1
                  FOR UPDATE SKIP LOCKED
              )
              RETURNING ` + interactionColumns

	i, err := scanInteraction(tx.QueryRow(ctx, query, employerProfileID, at))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	var remaining int
	if err := tx.QueryRow(ctx, countUnreadQuery, employerProfileID).Scan(&remaining); err != nil {
		return nil, 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, 0, err
	}
	return i, remaining, nil
}

func (r *interactionRepo) MarkViewed(ctx context.Context, interactionID int64, at time.Time) (int, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	var profileID int64
	err = tx.QueryRow(ctx,
		`UPDATE applicant_employer_interactions
         SET is_viewed_by_employer = TRUE, updated_at = $2
         WHERE id = $1
         RETURNING employer_profile_id`,
		interactionID, at,
	).Scan(&profileID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}

	var remaining int
	if err := tx.QueryRow(ctx, countUnreadQuery, profileID).Scan(&remaining); err != nil {
		return 0, err
	}
	return remaining, tx.Commit(ctx)
}
