package project

import (
	"context"
	"time"

	"github.com/amirasaad/crowdfund/pkg/domain/project"
)

// Filter selects cached projects. Zero values mean "no filter".
type Filter struct {
	CategoryID int64
	Status     project.Status
	// Search matches a case-insensitive substring of the title.
	Search string
}

// Repository defines the local cache of projects.
type Repository interface {
	// Upsert inserts the project or replaces the cached row with the same ID.
	Upsert(ctx context.Context, p *project.Project) error

	// UpsertMany upserts every project in one statement.
	UpsertMany(ctx context.Context, ps []*project.Project) error

	// Get returns the cached project or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*project.Project, error)

	// Exists reports whether the project is cached.
	Exists(ctx context.Context, id int64) (bool, error)

	// List returns every cached project, newest first.
	List(ctx context.Context) ([]*project.Project, error)

	// Find returns the cached projects matching f, newest first.
	Find(ctx context.Context, f Filter) ([]*project.Project, error)

	// ListByCreator returns the projects created by the given user.
	ListByCreator(ctx context.Context, creatorID int64) ([]*project.Project, error)

	// ListActive returns active projects whose end date is after now, ending soonest first.
	ListActive(ctx context.Context, now time.Time) ([]*project.Project, error)

	// ListPopular returns up to limit projects with the most money raised.
	ListPopular(ctx context.Context, limit int) ([]*project.Project, error)

	// CountByStatus counts cached projects in the given status.
	CountByStatus(ctx context.Context, status project.Status) (int64, error)

	// Delete removes the project together with its cached investments and comments.
	Delete(ctx context.Context, id int64) error

	// DeleteAll empties the project cache.
	DeleteAll(ctx context.Context) error
}
