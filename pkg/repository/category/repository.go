package category

import (
	"context"

	"github.com/amirasaad/crowdfund/pkg/domain/category"
)

// Repository defines the local cache of categories.
type Repository interface {
	Upsert(ctx context.Context, c *category.Category) error
	UpsertMany(ctx context.Context, cs []*category.Category) error

	// Get returns the cached category or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*category.Category, error)

	// GetByName returns the cached category with the given name or domain.ErrNotFound.
	GetByName(ctx context.Context, name string) (*category.Category, error)

	// List returns every cached category ordered by name.
	List(ctx context.Context) ([]*category.Category, error)

	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
