package user

import (
	"encoding/json"
	"time"
)

// User is the signed-in user's profile as cached on this device.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	// PasswordHash is opaque to the client and never serialized.
	PasswordHash string `json:"-"`
	// Profile is free-form profile data kept as raw JSON.
	Profile   json.RawMessage `json:"profile,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
