package platform

import (
	"context"
	"net/http"

	"github.com/amirasaad/crowdfund/pkg/domain/user"
	"github.com/amirasaad/crowdfund/pkg/dto"
)

func (c *Client) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/auth/login/",
		path:   "/api/auth/login/",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	var out dto.AuthResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/auth/register/",
		path:   "/api/auth/register/",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	var out dto.TokenResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/auth/refresh/",
		path:   "/api/auth/refresh/",
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/auth/logout/",
		path:   "/api/auth/logout/",
		token:  token,
	}, nil)
}

func (c *Client) GetProfile(ctx context.Context, token string) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/users/profile/",
		path:   "/api/users/profile/",
		token:  token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, in *dto.ProfileUpdate) (*user.User, error) {
	var out user.User
	if err := c.do(ctx, request{
		method: http.MethodPut,
		route:  "/api/users/profile/",
		path:   "/api/users/profile/",
		token:  token,
		body:   in,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
