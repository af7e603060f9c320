package user

import (
	"context"

	"github.com/amirasaad/crowdfund/pkg/domain/user"
)

// Repository defines the local cache of the signed-in user's profile.
type Repository interface {
	// Upsert inserts the user or replaces the cached row with the same ID.
	Upsert(ctx context.Context, u *user.User) error

	// Get retrieves a user by its ID or returns domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*user.User, error)

	// GetByEmail retrieves a user by email or returns domain.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*user.User, error)

	// GetByUsername retrieves a user by username or returns domain.ErrNotFound.
	GetByUsername(ctx context.Context, username string) (*user.User, error)

	// Exists checks if a user with the given ID is cached.
	Exists(ctx context.Context, id int64) (bool, error)

	// Delete removes the user together with their cached investments and comments.
	Delete(ctx context.Context, id int64) error

	// DeleteAll removes every cached user and their investments and comments.
	DeleteAll(ctx context.Context) error
}
