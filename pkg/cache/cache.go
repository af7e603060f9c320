package cache

import "context"

// Tokens is the credential pair of the signed-in user.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	// UserID is the id the platform returned at sign-in, 0 if unknown.
	UserID int64 `json:"user_id,omitempty"`
}

// TokenStore keeps the current Tokens between calls and restarts.
type TokenStore interface {
	// Load returns the stored tokens, or nil when nobody is signed in.
	Load(ctx context.Context) (*Tokens, error)
	Save(ctx context.Context, t *Tokens) error
	Clear(ctx context.Context) error
}
