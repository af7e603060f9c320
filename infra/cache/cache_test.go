package cache_test

import (
	"context"
	"testing"
	"time"

	infracache "github.com/amirasaad/crowdfund/infra/cache"
	"github.com/amirasaad/crowdfund/pkg/cache"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/testutils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := infracache.NewMemoryTokenStore()

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	in := &cache.Tokens{AccessToken: "a", RefreshToken: "r", UserID: 5}
	require.NoError(t, store.Save(ctx, in))
	in.AccessToken = "mutated"

	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, &cache.Tokens{AccessToken: "a", RefreshToken: "r", UserID: 5}, got)

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNewRedisTokenStore_BadURL(t *testing.T) {
	_, err := infracache.NewRedisTokenStore(&config.Redis{URL: "://nope"}, testutils.NewLogger())
	require.Error(t, err)
}

func TestRedisTokenStore_Unreachable(t *testing.T) {
	store := infracache.NewRedisTokenStoreWithOptions(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}, "test:", testutils.NewLogger())
	defer store.Close() //nolint:errcheck

	_, err := store.Load(context.Background())
	require.Error(t, err)
	require.Error(t, store.Save(context.Background(), &cache.Tokens{AccessToken: "a"}))
}
