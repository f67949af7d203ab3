package postgres

import (
	"context"
	"errors"

	"go-jobmatch-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type motivationRepo struct {
	db *pgxpool.Pool
}

func NewMotivationRepository(db *pgxpool.Pool) domain.MotivationRepository {
	return &motivationRepo{db: db}
}

func (r *motivationRepo) PickRandomActive(ctx context.Context) (*domain.MotivationalContent, error) {
	query := `SELECT id, content_type, file_id, text_caption, is_active, usage_count
              FROM motivational_content
              WHERE is_active
              ORDER BY random() LIMIT 1`

	var m domain.MotivationalContent
	err := r.db.QueryRow(ctx, query).Scan(&m.ID, &m.Type, &m.FileID, &m.Caption, &m.IsActive, &m.UsageCount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *motivationRepo) IncrementUsage(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `UPDATE motivational_content SET usage_count = usage_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
