package investment

import (
	"context"

	"github.com/amirasaad/crowdfund/pkg/domain/investment"
	"github.com/shopspring/decimal"
)

// Repository defines the local cache of investments. Aggregates are computed
// from cached rows only and may lag behind the server.
type Repository interface {
	// Upsert inserts the investment or replaces the cached row with the same ID.
	Upsert(ctx context.Context, inv *investment.Investment) error

	// UpsertMany upserts every investment in one statement.
	UpsertMany(ctx context.Context, invs []*investment.Investment) error

	// Get returns the cached investment or domain.ErrNotFound.
	Get(ctx context.Context, id int64) (*investment.Investment, error)

	// UpdateStatus sets the status of a cached investment. A missing row is not an error.
	UpdateStatus(ctx context.Context, inv *investment.Investment) error

	// ListByUser returns the user's investments, newest first.
	ListByUser(ctx context.Context, userID int64) ([]*investment.Investment, error)

	// ListByProject returns the project's investments, newest first.
	ListByProject(ctx context.Context, projectID int64) ([]*investment.Investment, error)

	// ListByStatus returns investments in the given status, newest first.
	ListByStatus(ctx context.Context, status investment.Status) ([]*investment.Investment, error)

	// ListByUserAndProject returns the user's investments in one project, newest first.
	ListByUserAndProject(ctx context.Context, userID, projectID int64) ([]*investment.Investment, error)

	// RecentByUser returns the user's limit most recent investments.
	RecentByUser(ctx context.Context, userID int64, limit int) ([]*investment.Investment, error)

	// TotalInvestedByUser sums the user's completed investments.
	TotalInvestedByUser(ctx context.Context, userID int64) (decimal.Decimal, error)

	// TotalCollectedForProject sums the project's completed investments.
	TotalCollectedForProject(ctx context.Context, projectID int64) (decimal.Decimal, error)

	// CountByUser counts the user's investments.
	CountByUser(ctx context.Context, userID int64) (int64, error)

	// CountByUserAndStatus counts the user's investments in the given status.
	CountByUserAndStatus(ctx context.Context, userID int64, status investment.Status) (int64, error)

	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
