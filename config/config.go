package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogDebug bool
	Port     string
	DBUrl    string
	BotToken string
	BotDebug bool
	// BotWorkers is the number of per-user update shards
	BotWorkers int
	// Redis holds sessions; empty URL falls back to in-memory storage
	RedisURL        string
	RedisPassword   string
	SessionTTLHours int
	// Admin surface
	AdminIDs       []int64
	AdminJWTSecret string
	// Rate limiting of the admin API
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Anti-spam
	AntiSpamActionThreshold   int
	AntiSpamTimeWindowSeconds int
	AntiSpamLockMinutes       int
	AntiSpamBufferSize        int
	// Feed
	MotivationEveryNViews int
	CooldownHoursLike     float64
	CooldownHoursDislike  float64
	CooldownHoursQuestion float64
	CooldownHoursReport   float64
	// Re-engagement
	ReengagementSchedule        string
	ReengagementApplicantDays   int
	ReengagementEmployerDays    int
	ReengagementMinIntervalDays int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments pass the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:          getEnv("APP_ENV", "development"),
		LogDebug:        getEnvBool("LOG_DEBUG", false),
		Port:            getEnv("PORT", "8080"),
		DBUrl:           getEnv("DATABASE_URL", ""),
		BotToken:        strings.TrimSpace(getEnv("BOT_TOKEN", "")),
		BotDebug:        getEnvBool("BOT_DEBUG", false),
		BotWorkers:      getEnvInt("BOT_WORKERS", 8),
		RedisURL:        getEnv("REDIS_URL", ""),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		SessionTTLHours: getEnvInt("SESSION_TTL_HOURS", 24),

		AdminIDs:       getEnvInt64List("ADMIN_IDS"),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		AntiSpamActionThreshold:   getEnvInt("ANTISPAM_ACTION_THRESHOLD", 10),
		AntiSpamTimeWindowSeconds: getEnvInt("ANTISPAM_TIME_WINDOW_SECONDS", 10),
		AntiSpamLockMinutes:       getEnvInt("ANTISPAM_LOCK_MINUTES", 5),
		AntiSpamBufferSize:        getEnvInt("ANTISPAM_BUFFER_SIZE", 10),

		MotivationEveryNViews: getEnvInt("MOTIVATION_EVERY_N_VIEWS", 15),
		CooldownHoursLike:     getEnvFloat("COOLDOWN_HOURS_LIKE", 0.1),
		CooldownHoursDislike:  getEnvFloat("COOLDOWN_HOURS_DISLIKE", 0.1),
		CooldownHoursQuestion: getEnvFloat("COOLDOWN_HOURS_QUESTION", 0.1),
		CooldownHoursReport:   getEnvFloat("COOLDOWN_HOURS_REPORT", 0.1),

		ReengagementSchedule:        getEnv("REENGAGEMENT_SCHEDULE", "@every 1m"),
		ReengagementApplicantDays:   getEnvInt("REENGAGEMENT_APPLICANT_DAYS", 2),
		ReengagementEmployerDays:    getEnvInt("REENGAGEMENT_EMPLOYER_DAYS", 4),
		ReengagementMinIntervalDays: getEnvInt("REENGAGEMENT_MIN_INTERVAL_DAYS", 7),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Sessions and rate limiting will use in-memory fallback.")
	}
	if len(cfg.AdminIDs) == 0 {
		log.Println("WARNING: ADMIN_IDS is empty. Complaints will not be forwarded to anyone.")
	}

	return cfg, nil
}

// Validate reports what `serve` cannot run without.
func (c *Config) Validate() error {
	var errs []error
	if c.BotToken == "" {
		errs = append(errs, errors.New("BOT_TOKEN is required"))
	}
	if c.DBUrl == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.AntiSpamActionThreshold < 2 {
		errs = append(errs, errors.New("ANTISPAM_ACTION_THRESHOLD must be at least 2"))
	}
	if c.MotivationEveryNViews < 1 {
		errs = append(errs, errors.New("MOTIVATION_EVERY_N_VIEWS must be positive"))
	}
	if c.SessionTTLHours < 1 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvInt64List parses a comma separated id list, skipping junk entries.
func getEnvInt64List(key string) []int64 {
	var ids []int64
	for _, part := range strings.Split(os.Getenv(key), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			log.Printf("WARNING: %s contains non-numeric entry %q, skipped", key, part)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
