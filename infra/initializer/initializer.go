// Package initializer builds the application dependencies from configuration.
package initializer

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/amirasaad/crowdfund/infra"
	infracache "github.com/amirasaad/crowdfund/infra/cache"
	"github.com/amirasaad/crowdfund/infra/provider/platform"
	"github.com/amirasaad/crowdfund/infra/provider/stripepayment"
	categorystore "github.com/amirasaad/crowdfund/infra/repository/category"
	commentstore "github.com/amirasaad/crowdfund/infra/repository/comment"
	investmentstore "github.com/amirasaad/crowdfund/infra/repository/investment"
	projectstore "github.com/amirasaad/crowdfund/infra/repository/project"
	userstore "github.com/amirasaad/crowdfund/infra/repository/user"
	"github.com/amirasaad/crowdfund/pkg/app"
	"github.com/amirasaad/crowdfund/pkg/cache"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/writeback"
	"gorm.io/gorm"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	logger := setupLogger(cfg.Log)
	return initialize(cfg, logger)
}

func initialize(cfg *config.App, logger *slog.Logger) (_ *app.Deps, err error) {
	deps := &app.Deps{Logger: logger}
	defer func() {
		if err != nil {
			closeAll(deps.Closers, logger)
		}
	}()

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize local store", "error", err)
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	deps.Closers = append(deps.Closers, sqlDB)
	initStores(deps, db)

	deps.Tokens, err = initTokenStore(cfg, logger, deps)
	if err != nil {
		return nil, err
	}

	deps.Platform = platform.New(cfg.API, &http.Client{}, logger)
	deps.Writes = writeback.New(cfg.Sync.Workers, cfg.Sync.QueueSize, logger)

	if stripeCfg := cfg.PaymentProviders.Stripe; stripeCfg != nil && stripeCfg.PublishableKey != "" {
		deps.Payments = stripepayment.New(stripeCfg, logger)
	} else {
		logger.Info("Stripe is not configured; payment outcomes must be reported by the shell")
	}

	logger.Info("Dependencies initialized",
		"session_store", cfg.Session.Store,
		"sync_workers", cfg.Sync.Workers,
		"api_base_url", cfg.API.BaseURL)
	return deps, nil
}

func initStores(deps *app.Deps, db *gorm.DB) {
	deps.Projects = projectstore.New(db)
	deps.Categories = categorystore.New(db)
	deps.Investments = investmentstore.New(db)
	deps.Comments = commentstore.New(db)
	deps.Users = userstore.New(db)
}

func initTokenStore(cfg *config.App, logger *slog.Logger, deps *app.Deps) (cache.TokenStore, error) {
	if cfg.Session.Store != "redis" {
		return infracache.NewMemoryTokenStore(), nil
	}
	store, err := infracache.NewRedisTokenStore(cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis token store: %w", err)
	}
	deps.Closers = append(deps.Closers, store)
	return store, nil
}

func closeAll(closers []io.Closer, logger *slog.Logger) {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to release resource", "error", err)
		}
	}
}
