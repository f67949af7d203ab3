package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-jobmatch-bot/internal/delivery/http/middleware"
	v1 "go-jobmatch-bot/internal/delivery/http/v1"
	"go-jobmatch-bot/internal/delivery/telegram"
	"go-jobmatch-bot/internal/usecase"
	"go-jobmatch-bot/migrations"
	"go-jobmatch-bot/pkg/database"
	"go-jobmatch-bot/pkg/logger"
	"go-jobmatch-bot/pkg/redis"
	"go-jobmatch-bot/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot, the admin API and the re-engagement scheduler",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		return serve(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "apply pending migrations before starting")
}

func serve(ctx context.Context) error {
	if migrateOnStart {
		if _, err := database.Migrate(ctx, cfg.DBUrl, migrations.FS); err != nil {
			return err
		}
	}

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	validate := validation.New()
	router := v1.NewRouter(v1.RouterDeps{
		HealthUC: usecase.NewHealthUsecase(map[string]usecase.HealthCheck{
			"postgres": a.pool.Ping,
			"redis": func(ctx context.Context) error {
				if redis.Client() == nil {
					return nil
				}
				return redis.HealthCheck(ctx)
			},
		}),
		ComplaintUC: usecase.NewComplaintUsecase(a.complaintRepo),
		SettingsUC:  usecase.NewSettingsUsecase(a.settingsRepo, validate),
		ReferralUC:  usecase.NewReferralUsecase(a.referralRepo, validate),
		RateLimiter: middleware.NewRateLimiter(middleware.DefaultRateLimitConfig(
			cfg.RateLimitGlobalThreshold,
			time.Duration(cfg.RateLimitWindowSeconds)*time.Second,
		), redis.Client()),
		AdminJWTSecret: cfg.AdminJWTSecret,
		HTTPS:          cfg.AppEnv == "production",
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.ReengagementSchedule, func() {
		sent, err := a.reengagement.RunOnce(ctx)
		if err != nil {
			logger.Log.Error("Re-engagement round failed", zap.Error(err))
			return
		}
		if sent > 0 {
			logger.Log.Info("Re-engagement round finished", zap.Int("sent", sent))
		}
	}); err != nil {
		return err
	}

	dispatcher := telegram.NewDispatcher(cfg.BotWorkers, 64, a.handler.Handle)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Log.Info("Admin API listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		return telegram.Run(gctx, a.botAPI, dispatcher)
	})
	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()

		logger.Log.Info("Shutting down...")
		<-scheduler.Stop().Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Log.Info("Server exiting")
	return err
}
