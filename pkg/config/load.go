package config

import (
	"fmt"
	"log/slog"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the first environment file found among envFilePath (searching
// parent directories), falls back to .env, then processes the environment.
// Variables already set in the environment win over file values.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()
	if path, ok := loadEnvFile(logger, envFilePath); ok {
		logger.Info("Environment file loaded", "path", path)
	} else if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using the process environment only")
	}
	return loadFromEnv()
}

// loadEnvFile loads the first of paths that exists and parses.
func loadEnvFile(logger *slog.Logger, paths []string) (string, bool) {
	for _, path := range paths {
		found, err := FindEnvFile(path)
		if err != nil {
			logger.Debug("Environment file not found", "path", path)
			continue
		}
		if err := godotenv.Load(found); err != nil {
			logger.Error("Environment file is unreadable", "path", found, "error", err)
			continue
		}
		return found, true
	}
	return "", false
}

func loadFromEnv() (*App, error) {
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	slog.Default().Info("App config loaded",
		"env", cfg.Env,
		"db", maskURL(cfg.DB.URL),
		"api_base_url", cfg.API.BaseURL,
		"api_timeout", cfg.API.Timeout,
		"api_rps", cfg.API.RequestsPerSecond,
		"sync_workers", cfg.Sync.Workers,
		"sync_queue_size", cfg.Sync.QueueSize,
		"session_store", cfg.Session.Store,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"stripe_publishable_key", maskValue(cfg.PaymentProviders.Stripe.PublishableKey),
	)
	return &cfg, nil
}

func (cfg *App) validate() error {
	if cfg.Sync.Workers < 1 {
		return fmt.Errorf("SYNC_WORKERS must be at least 1, got %d", cfg.Sync.Workers)
	}
	if cfg.Sync.QueueSize < 1 {
		return fmt.Errorf("SYNC_QUEUE_SIZE must be at least 1, got %d", cfg.Sync.QueueSize)
	}
	switch cfg.Session.Store {
	case "memory", "redis":
	default:
		return fmt.Errorf("SESSION_STORE must be memory or redis, got %q", cfg.Session.Store)
	}
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("API_BASE_URL is not set")
	}
	return nil
}

// maskURL hides the credentials of a database URL.
func maskURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.User(u.User.Username())
	return u.String()
}

func maskValue(key string) string {
	if len(key) <= 6 {
		return "****"
	}
	return key[:2] + "****" + key[len(key)-4:]
}
