package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/crowdfund/pkg/cache"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/redis/go-redis/v9"
)

const sessionKey = "session"

// RedisTokenStore implements TokenStore using Redis, so that a session
// survives restarts of the gateway.
type RedisTokenStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

// NewRedisTokenStore creates a RedisTokenStore from cfg.
func NewRedisTokenStore(cfg *config.Redis, logger *slog.Logger) (*RedisTokenStore, error) {
	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	if cfg.PoolSize > 0 {
		opt.PoolSize = cfg.PoolSize
	}
	if cfg.DialTimeout > 0 {
		opt.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opt.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opt.WriteTimeout = cfg.WriteTimeout
	}
	return NewRedisTokenStoreWithOptions(opt, cfg.KeyPrefix, logger), nil
}

// NewRedisTokenStoreWithOptions creates a RedisTokenStore from redis.Options.
func NewRedisTokenStoreWithOptions(
	opt *redis.Options,
	prefix string,
	logger *slog.Logger,
) *RedisTokenStore {
	return &RedisTokenStore{
		client: redis.NewClient(opt),
		prefix: prefix,
		logger: logger.With("store", "redis"),
	}
}

func (r *RedisTokenStore) key() string {
	return r.prefix + sessionKey
}

func (r *RedisTokenStore) Load(ctx context.Context) (*cache.Tokens, error) {
	val, err := r.client.Get(ctx, r.key()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Redis token load error", "error", err)
		return nil, err
	}
	var t cache.Tokens
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		r.logger.Error("Redis token unmarshal error", "error", err)
		return nil, err
	}
	return &t, nil
}

func (r *RedisTokenStore) Save(ctx context.Context, t *cache.Tokens) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(), data, 0).Err(); err != nil {
		r.logger.Error("Redis token save error", "error", err)
		return err
	}
	r.logger.Debug("Redis token saved", "user_id", t.UserID)
	return nil
}

func (r *RedisTokenStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key()).Err(); err != nil {
		r.logger.Error("Redis token clear error", "error", err)
		return err
	}
	return nil
}

// Close releases the underlying connection pool.
func (r *RedisTokenStore) Close() error {
	return r.client.Close()
}

var _ cache.TokenStore = (*RedisTokenStore)(nil)
