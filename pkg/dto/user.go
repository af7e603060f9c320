package dto

import (
	"encoding/json"

	"github.com/amirasaad/crowdfund/pkg/domain/user"
)

// LoginRequest is the body of POST /api/auth/login/.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /api/auth/register/.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken  string     `json:"access_token"`
	RefreshToken string     `json:"refresh_token"`
	User         *user.User `json:"user,omitempty"`
}

// RefreshRequest is the body of POST /api/auth/refresh/.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse is returned by the refresh endpoint. The server may rotate
// the refresh token; an empty RefreshToken keeps the current one.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// ProfileUpdate is the body of PUT /api/users/profile/.
type ProfileUpdate struct {
	Email   *string         `json:"email,omitempty" validate:"omitempty,email"`
	Profile json.RawMessage `json:"profile,omitempty"`
}
