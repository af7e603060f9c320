package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	infracache "github.com/amirasaad/crowdfund/infra/cache"
	projectstore "github.com/amirasaad/crowdfund/infra/repository/project"
	userstore "github.com/amirasaad/crowdfund/infra/repository/user"
	"github.com/amirasaad/crowdfund/pkg/app"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/testutils"
	"github.com/amirasaad/crowdfund/pkg/writeback"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	h := testutils.NewHarness(t)
	deps := &app.Deps{
		Platform: h.Client,
		Projects: projectstore.New(h.DB),
		Users:    userstore.New(h.DB),
		Tokens:   infracache.NewMemoryTokenStore(),
		Writes:   writeback.New(1, 4, h.Logger),
		Logger:   h.Logger,
	}
	return app.New(deps, &config.App{Session: &config.Session{ExpirySkew: time.Second}})
}

func TestShutdown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Sync{ShutdownTimeout: time.Second}

	t.Run("clean", func(t *testing.T) {
		var stopped bool
		stop := func(ctx context.Context) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok)
			stopped = true
			return nil
		}
		require.NoError(t, shutdown(newTestApp(t), stop, cfg, logger, nil))
		assert.True(t, stopped)
	})

	t.Run("listener failed", func(t *testing.T) {
		listen := errors.New("address in use")
		stop := func(context.Context) error { return errors.New("not running") }
		err := shutdown(newTestApp(t), stop, cfg, logger, listen)
		require.Error(t, err)
		assert.ErrorIs(t, err, listen)
		assert.Contains(t, err.Error(), "stop server")
	})
}
