package main

import (
	"context"
	"fmt"
	"time"

	"go-jobmatch-bot/config"
	"go-jobmatch-bot/internal/delivery/telegram"
	"go-jobmatch-bot/internal/domain"
	"go-jobmatch-bot/internal/repository/postgres"
	sessionrepo "go-jobmatch-bot/internal/repository/redis"
	"go-jobmatch-bot/internal/usecase"
	"go-jobmatch-bot/pkg/database"
	"go-jobmatch-bot/pkg/logger"
	"go-jobmatch-bot/pkg/redis"
	"go-jobmatch-bot/pkg/validation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// app holds the wired dependency graph shared by serve and reengage.
type app struct {
	pool   *pgxpool.Pool
	botAPI *tgbotapi.BotAPI

	complaintRepo domain.ComplaintRepository
	settingsRepo  domain.SettingsRepository
	referralRepo  domain.ReferralRepository

	handler      *telegram.Handler
	reengagement domain.ReengagementUsecase
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	pool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	botAPI, err := telegram.NewBotAPI(cfg.BotToken, cfg.BotDebug)
	if err != nil {
		pool.Close()
		return nil, err
	}

	sessions := newSessionStore(ctx, cfg)

	users := postgres.NewUserRepository(pool)
	applicants := postgres.NewApplicantRepository(pool)
	employers := postgres.NewEmployerRepository(pool)
	interactions := postgres.NewInteractionRepository(pool)
	complaints := postgres.NewComplaintRepository(pool)
	motivation := postgres.NewMotivationRepository(pool)
	settings := postgres.NewSettingsRepository(pool)
	referrals := postgres.NewReferralRepository(pool)

	messenger := telegram.NewMessenger(botAPI)
	validate := validation.New()

	notifier := usecase.NewEmployerNotifier(employers, messenger)
	moderation := usecase.NewComplaintNotifier(messenger, employers, applicants, cfg.AdminIDs)

	feedUC := usecase.NewFeedUsecase(usecase.FeedDeps{
		Sessions:   sessions,
		Applicants: applicants,
		Employers:  employers,
		Selector:   usecase.NewCandidateSelector(employers, applicants),
		Ledger: usecase.NewInteractionLedger(interactions, usecase.Cooldowns{
			Like:     usecase.Hours(cfg.CooldownHoursLike),
			Dislike:  usecase.Hours(cfg.CooldownHoursDislike),
			Question: usecase.Hours(cfg.CooldownHoursQuestion),
			Report:   usecase.Hours(cfg.CooldownHoursReport),
		}),
		AntiSpam: usecase.NewAntiSpamGovernor(usecase.AntiSpamConfig{
			Threshold:  cfg.AntiSpamActionThreshold,
			Window:     time.Duration(cfg.AntiSpamTimeWindowSeconds) * time.Second,
			Lock:       time.Duration(cfg.AntiSpamLockMinutes) * time.Minute,
			BufferSize: cfg.AntiSpamBufferSize,
		}, settings),
		Motivation: usecase.NewMotivationScheduler(motivation, cfg.MotivationEveryNViews),
		Notifier:   notifier,
		Complaints: moderation,
		Validate:   validate,
	})
	responseUC := usecase.NewResponseUsecase(employers, applicants, users, interactions, complaints, sessions, notifier, moderation)
	userUC := usecase.NewUserUsecase(users, applicants, employers, referrals, sessions)

	const day = 24 * time.Hour
	reengagement := usecase.NewReengagementUsecase(users, messenger, usecase.ReengagementConfig{
		ApplicantAfter: time.Duration(cfg.ReengagementApplicantDays) * day,
		EmployerAfter:  time.Duration(cfg.ReengagementEmployerDays) * day,
		MinInterval:    time.Duration(cfg.ReengagementMinIntervalDays) * day,
	})

	return &app{
		pool:          pool,
		botAPI:        botAPI,
		complaintRepo: complaints,
		settingsRepo:  settings,
		referralRepo:  referrals,
		handler:       telegram.NewHandler(userUC, feedUC, responseUC, messenger),
		reengagement:  reengagement,
	}, nil
}

// newSessionStore prefers Redis and falls back to process memory.
func newSessionStore(ctx context.Context, cfg *config.Config) domain.SessionStore {
	ttl := time.Duration(cfg.SessionTTLHours) * time.Hour
	if cfg.RedisURL != "" {
		err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err == nil {
			logger.Log.Info("Sessions stored in Redis")
			return sessionrepo.NewSessionRepository(redis.Client(), ttl)
		}
		logger.Log.Warn("Redis unavailable, sessions fall back to memory", zap.Error(err))
	}
	return sessionrepo.NewMemorySessionRepository(ctx, ttl)
}

func (a *app) Close() {
	if err := redis.Close(); err != nil {
		logger.Log.Warn("Failed to close redis", zap.Error(err))
	}
	a.pool.Close()
}
