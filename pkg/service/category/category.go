// Package category serves project categories.
package category

import (
	"context"
	"log/slog"

	"github.com/amirasaad/crowdfund/pkg/domain/category"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	categoryrepo "github.com/amirasaad/crowdfund/pkg/repository/category"
	"github.com/amirasaad/crowdfund/pkg/syncer"
)

const family = "category"

// Service is the sync repository for categories.
type Service struct {
	api        api.ProjectAPI
	categories categoryrepo.Repository
	sync       *syncer.Syncer
	logger     *slog.Logger
}

// New creates a category Service.
func New(projectAPI api.ProjectAPI, categories categoryrepo.Repository, sync *syncer.Syncer, logger *slog.Logger) *Service {
	return &Service{
		api:        projectAPI,
		categories: categories,
		sync:       sync,
		logger:     logger.With("service", family),
	}
}

// List returns every category. Offline the cached ones are returned ordered
// by name; an empty cache counts as a miss.
func (s *Service) List(ctx context.Context) (syncer.Result[[]*category.Category], error) {
	return syncer.Read(ctx, s.sync, syncer.Op[[]*category.Category]{
		Family: family,
		Name:   "list",
		Remote: func(ctx context.Context, _ string) ([]*category.Category, error) {
			return s.api.ListCategories(ctx)
		},
		Local: syncer.NonEmpty(s.categories.List),
		Store: s.categories.UpsertMany,
	})
}

// Get returns a cached category. The platform has no single-category endpoint.
func (s *Service) Get(ctx context.Context, id int64) (*category.Category, error) {
	return s.categories.Get(ctx, id)
}

// ByName returns the cached category with the given name.
func (s *Service) ByName(ctx context.Context, name string) (*category.Category, error) {
	return s.categories.GetByName(ctx, name)
}
