package comment

import (
	"context"

	"github.com/amirasaad/crowdfund/pkg/domain/comment"
)

// Repository defines the local cache of comments.
type Repository interface {
	Upsert(ctx context.Context, c *comment.Comment) error
	UpsertMany(ctx context.Context, cs []*comment.Comment) error

	// Get returns the cached comment or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*comment.Comment, error)

	// ListByProject returns the project's visible comments, newest first.
	ListByProject(ctx context.Context, projectID int64) ([]*comment.Comment, error)

	// ListByUser returns the user's visible comments, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*comment.Comment, error)

	// MarkReported flags a cached comment as reported. A missing row is not an error.
	MarkReported(ctx context.Context, id int64) error

	// MarkDeleted soft-deletes a cached comment. A missing row is not an error.
	MarkDeleted(ctx context.Context, id int64) error

	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
