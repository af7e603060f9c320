// Package auth signs the user in and out and keeps their profile cached.
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/amirasaad/crowdfund/pkg/cache"
	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/domain/user"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	userrepo "github.com/amirasaad/crowdfund/pkg/repository/user"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/validation"
)

const family = "user"

// Service is the sync repository of the signed-in user.
type Service struct {
	api      api.AuthAPI
	session  *Session
	users    userrepo.Repository
	sync     *syncer.Syncer
	validate *validation.Validator
	logger   *slog.Logger
}

// New creates an auth Service. sync must be built with session as its credentials.
func New(
	authAPI api.AuthAPI,
	session *Session,
	users userrepo.Repository,
	sync *syncer.Syncer,
	validate *validation.Validator,
	logger *slog.Logger,
) *Service {
	return &Service{
		api:      authAPI,
		session:  session,
		users:    users,
		sync:     sync,
		validate: validate,
		logger:   logger.With("service", "auth"),
	}
}

// Login signs in with username and password.
func (s *Service) Login(ctx context.Context, req *dto.LoginRequest) (*user.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.logger.Info("Login failed", "username", req.Username, "error", err)
		return nil, err
	}
	return s.start(ctx, resp)
}

// Register creates an account and signs in with it.
func (s *Service) Register(ctx context.Context, req *dto.RegisterRequest) (*user.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.start(ctx, resp)
}

func (s *Service) start(ctx context.Context, resp *dto.AuthResponse) (*user.User, error) {
	tokens := &cache.Tokens{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}
	if resp.User != nil {
		tokens.UserID = resp.User.ID
	}
	if err := s.session.Save(ctx, tokens); err != nil {
		return nil, err
	}
	if resp.User != nil {
		u := resp.User
		s.sync.Mirror(ctx, family, "upsert", func(ctx context.Context) error {
			return s.users.Upsert(ctx, u)
		})
		s.logger.Info("Signed in", "user_id", u.ID)
	}
	return resp.User, nil
}

// Profile returns the signed-in user, from the cache when the platform is
// unreachable.
func (s *Service) Profile(ctx context.Context) (syncer.Result[*user.User], error) {
	return syncer.Read(ctx, s.sync, syncer.Op[*user.User]{
		Family: family,
		Name:   "profile",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*user.User, error) {
			return s.api.GetProfile(ctx, token)
		},
		Local: func(ctx context.Context) (*user.User, error) {
			id, err := s.session.UserID(ctx)
			if err != nil {
				// nobody to look up
				return nil, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
			}
			return s.users.Get(ctx, id)
		},
		Store: s.users.Upsert,
	})
}

// UpdateProfile changes the signed-in user's profile.
func (s *Service) UpdateProfile(ctx context.Context, in *dto.ProfileUpdate) (*user.User, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	return syncer.Write(ctx, s.sync, syncer.Op[*user.User]{
		Family: family,
		Name:   "update profile",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*user.User, error) {
			return s.api.UpdateProfile(ctx, token, in)
		},
		Store: s.users.Upsert,
	})
}

// Logout tells the platform the session ended, then forgets the tokens and
// wipes the cached user data. Cache writes already queued are waited for
// first so none of them lands after the wipe. Only the local part can fail.
func (s *Service) Logout(ctx context.Context) error {
	if token, err := s.session.AccessToken(ctx); err == nil {
		if err := s.api.Logout(ctx, token); err != nil {
			s.logger.Warn("Remote logout failed", "error", err)
		}
	}
	if err := s.session.Clear(ctx); err != nil {
		return err
	}
	if err := s.sync.Flush(ctx); err != nil {
		return fmt.Errorf("wait for queued cache writes: %w", err)
	}
	if err := s.users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear cached user: %w", err)
	}
	s.logger.Info("Signed out")
	return nil
}
