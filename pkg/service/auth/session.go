package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/crowdfund/pkg/cache"
	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"
)

// Refresher exchanges a refresh token for a new access token.
type Refresher interface {
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
}

type claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// Session is the credential manager of the signed-in user. It hands out the
// current access token and refreshes it shortly before it expires.
type Session struct {
	store     cache.TokenStore
	refresher Refresher
	skew      time.Duration
	now       func() time.Time
	parser    *jwt.Parser
	group     singleflight.Group
	logger    *slog.Logger
}

// NewSession creates a Session. Tokens within skew of their expiry are
// treated as expired.
func NewSession(store cache.TokenStore, refresher Refresher, skew time.Duration, logger *slog.Logger) *Session {
	return &Session{
		store:     store,
		refresher: refresher,
		skew:      skew,
		now:       time.Now,
		parser:    jwt.NewParser(),
		logger:    logger.With("component", "session"),
	}
}

// Save replaces the stored tokens.
func (s *Session) Save(ctx context.Context, t *cache.Tokens) error {
	if err := s.store.Save(ctx, t); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear signs the user out locally.
func (s *Session) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// AccessToken returns a usable access token, refreshing it if needed.
// Concurrent callers share one refresh request.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	t, err := s.load(ctx)
	if err != nil {
		return "", err
	}
	if !s.expired(t.AccessToken) {
		return t.AccessToken, nil
	}
	if t.RefreshToken == "" {
		return "", fmt.Errorf("%w: access token expired", domain.ErrNoCredential)
	}

	v, err, shared := s.group.Do(t.RefreshToken, func() (any, error) {
		return s.refresh(ctx, t)
	})
	if err != nil {
		return "", err
	}
	s.logger.Debug("Access token refreshed", "shared", shared)
	return v.(string), nil
}

// UserID returns the signed-in user's id.
func (s *Session) UserID(ctx context.Context) (int64, error) {
	t, err := s.load(ctx)
	if err != nil {
		return 0, err
	}
	if t.UserID != 0 {
		return t.UserID, nil
	}
	var c claims
	if _, _, err := s.parser.ParseUnverified(t.AccessToken, &c); err != nil || c.UserID == 0 {
		return 0, fmt.Errorf("%w: user id unknown", domain.ErrNoCredential)
	}
	return c.UserID, nil
}

func (s *Session) load(ctx context.Context) (*cache.Tokens, error) {
	t, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if t == nil || t.AccessToken == "" {
		return nil, domain.ErrNoCredential
	}
	return t, nil
}

// expired reports whether token's exp claim is within skew of now. Tokens
// that are not JWTs or carry no exp never expire locally.
func (s *Session) expired(token string) bool {
	var c claims
	if _, _, err := s.parser.ParseUnverified(token, &c); err != nil || c.ExpiresAt == nil {
		return false
	}
	return !s.now().Add(s.skew).Before(c.ExpiresAt.Time)
}

func (s *Session) refresh(ctx context.Context, t *cache.Tokens) (string, error) {
	resp, err := s.refresher.Refresh(ctx, &dto.RefreshRequest{RefreshToken: t.RefreshToken})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			s.logger.Info("Refresh token rejected, signing out")
			if clearErr := s.store.Clear(ctx); clearErr != nil {
				s.logger.Error("Failed to clear session", "error", clearErr)
			}
			return "", fmt.Errorf("%w: %w", domain.ErrNoCredential, err)
		}
		return "", err
	}
	next := &cache.Tokens{AccessToken: resp.AccessToken, RefreshToken: t.RefreshToken, UserID: t.UserID}
	if resp.RefreshToken != "" {
		next.RefreshToken = resp.RefreshToken
	}
	if err := s.store.Save(ctx, next); err != nil {
		return "", fmt.Errorf("save session: %w", err)
	}
	return next.AccessToken, nil
}

var _ syncer.Credentials = (*Session)(nil)
