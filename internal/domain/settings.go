package domain

import "context"

const (
	SettingAntiSpamDummyText    = "antispam_dummy_text"
	SettingAntiSpamDummyPhotoID = "antispam_dummy_photo_id"
)

type BotSetting struct {
	Key      string  `json:"setting_key"`
	ValueStr *string `json:"value_str,omitempty"`
	ValueInt *int    `json:"value_int,omitempty"`
}

type PutSettingRequest struct {
	ValueStr *string `json:"value_str" validate:"omitempty,max=4096"`
	ValueInt *int    `json:"value_int"`
}

type SettingsRepository interface {
	Get(ctx context.Context, key string) (*BotSetting, error)
	Upsert(ctx context.Context, s *BotSetting) error
}

type SettingsUsecase interface {
	Get(ctx context.Context, key string) (*BotSetting, error)
	Put(ctx context.Context, key string, req *PutSettingRequest) (*BotSetting, error)
}
