package usecase

import (
	"context"

	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type settingsUsecase struct {
	repo     domain.SettingsRepository
	validate *validator.Validate
}

func NewSettingsUsecase(repo domain.SettingsRepository, validate *validator.Validate) domain.SettingsUsecase {
	return &settingsUsecase{repo: repo, validate: validate}
}

func (u *settingsUsecase) Get(ctx context.Context, key string) (*domain.BotSetting, error) {
	if err := u.validate.Var(key, "required,setting_key"); err != nil {
		return nil, apperror.BadRequest("Invalid setting key")
	}
	return u.repo.Get(ctx, key)
}

func (u *settingsUsecase) Put(ctx context.Context, key string, req *domain.PutSettingRequest) (*domain.BotSetting, error) {
	if err := u.validate.Var(key, "required,setting_key"); err != nil {
		return nil, apperror.BadRequest("Invalid setting key")
	}
	if err := u.validate.Struct(req); err != nil {
		return nil, err
	}
	if req.ValueStr == nil && req.ValueInt == nil {
		return nil, apperror.BadRequest("Either value_str or value_int is required")
	}

	s := &domain.BotSetting{Key: key, ValueStr: req.ValueStr, ValueInt: req.ValueInt}
	if err := u.repo.Upsert(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}
