package testutils

import (
	"context"
	"log/slog"
	"testing"
	"time"

	infracache "github.com/amirasaad/crowdfund/infra/cache"
	"github.com/amirasaad/crowdfund/infra/provider/platform"
	"github.com/amirasaad/crowdfund/pkg/cache"
	"github.com/amirasaad/crowdfund/pkg/service/auth"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/writeback"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Harness wires a fake platform, a local store and a sync layer for service tests.
type Harness struct {
	Fake    *FakePlatform
	Client  *platform.Client
	DB      *gorm.DB
	Queue   *writeback.Queue
	Session *auth.Session
	Sync    *syncer.Syncer
	Logger  *slog.Logger
}

// NewHarness builds a Harness with nobody signed in.
func NewHarness(t testing.TB) *Harness {
	t.Helper()
	logger := NewLogger()
	fake := NewFakePlatform(t)
	client := fake.Client(logger)
	queue := writeback.New(2, 32, logger)
	t.Cleanup(func() { _ = queue.Close(context.Background()) })
	session := auth.NewSession(infracache.NewMemoryTokenStore(), client, 30*time.Second, logger)
	return &Harness{
		Fake:    fake,
		Client:  client,
		DB:      NewTestDB(t),
		Queue:   queue,
		Session: session,
		Sync:    syncer.New(session, queue, logger),
		Logger:  logger,
	}
}

// SignIn registers a user on the fake platform and stores a session for it.
func (h *Harness) SignIn(t testing.TB, id int64, username string) {
	t.Helper()
	h.Fake.AddUser(id, username, username+"@example.com")
	err := h.Session.Save(context.Background(), &cache.Tokens{
		AccessToken:  h.Fake.IssueToken(id, "access", time.Hour),
		RefreshToken: h.Fake.IssueToken(id, "refresh", 24*time.Hour),
		UserID:       id,
	})
	require.NoError(t, err)
}

// Flush waits for queued cache writes.
func (h *Harness) Flush(t testing.TB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, h.Queue.Flush(ctx))
}
