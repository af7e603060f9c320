package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/amirasaad/crowdfund/infra/initializer"
	"github.com/amirasaad/crowdfund/pkg/app"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/webapi"
	log "github.com/charmbracelet/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	logger := deps.Logger

	a := app.New(deps, cfg)
	fiberApp := webapi.SetupApp(a)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"platform", cfg.API.BaseURL,
	)

	listenErr := make(chan error, 1)
	go func() {
		listenErr <- fiberApp.Listen(addr)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err = <-listenErr:
	case <-ctx.Done():
		logger.Info("Shutting down")
	}
	return shutdown(a, fiberApp.ShutdownWithContext, cfg.Sync, logger, err)
}

// shutdown stops the listener, then drains pending cache writes.
func shutdown(
	a *app.App,
	stopServer func(context.Context) error,
	cfg *config.Sync,
	logger *slog.Logger,
	cause error,
) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	errs := []error{cause}
	if err := stopServer(ctx); err != nil {
		errs = append(errs, fmt.Errorf("stop server: %w", err))
	}
	if err := a.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
