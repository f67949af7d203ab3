package postgres

import (
	"context"
	"errors"

	"go-jobmatch-bot/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type settingsRepo struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) domain.SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context, key string) (*domain.BotSetting, error) {
	s := domain.BotSetting{Key: key}
	err := r.db.QueryRow(ctx,
		`SELECT value_str, value_int FROM bot_settings WHERE setting_key = $1`, key,
	).Scan(&s.ValueStr, &s.ValueInt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *domain.BotSetting) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO bot_settings (setting_key, value_str, value_int) VALUES ($1, $2, $3)
         ON CONFLICT (setting_key) DO UPDATE SET value_str = EXCLUDED.value_str, value_int = EXCLUDED.value_int`,
		s.Key, s.ValueStr, s.ValueInt)
	return err
}
