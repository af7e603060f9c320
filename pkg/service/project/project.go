// Package project is the sync repository for projects and favorites.
package project

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	projectrepo "github.com/amirasaad/crowdfund/pkg/repository/project"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/validation"
)

const family = "project"

// Service serves projects remote-first with a local fallback.
type Service struct {
	api      api.ProjectAPI
	projects projectrepo.Repository
	sync     *syncer.Syncer
	validate *validation.Validator
	logger   *slog.Logger
	now      func() time.Time
}

// New creates a project Service.
func New(
	projectAPI api.ProjectAPI,
	projects projectrepo.Repository,
	sync *syncer.Syncer,
	validate *validation.Validator,
	logger *slog.Logger,
) *Service {
	return &Service{
		api:      projectAPI,
		projects: projects,
		sync:     sync,
		validate: validate,
		logger:   logger.With("service", family),
		now:      time.Now,
	}
}

// List returns one page of projects. When the platform is unreachable the
// cached projects matching the same filters are returned as a single page
// without pagination links, flagged Offline.
func (s *Service) List(ctx context.Context, q dto.ProjectQuery) (*dto.ProjectPage, error) {
	res, err := syncer.Read(ctx, s.sync, syncer.Op[*dto.ProjectListResponse]{
		Family: family,
		Name:   "list",
		Remote: func(ctx context.Context, _ string) (*dto.ProjectListResponse, error) {
			return s.api.ListProjects(ctx, q)
		},
		Local: func(ctx context.Context) (*dto.ProjectListResponse, error) {
			rows, err := syncer.NonEmpty(func(ctx context.Context) ([]*project.Project, error) {
				return s.projects.Find(ctx, filterFor(q))
			})(ctx)
			if err != nil {
				return nil, err
			}
			return &dto.ProjectListResponse{Count: len(rows), Results: rows}, nil
		},
		Store: func(ctx context.Context, page *dto.ProjectListResponse) error {
			return s.projects.UpsertMany(ctx, page.Results)
		},
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProjectPage{
		ProjectListResponse: *res.Value,
		Offline:             res.Offline(),
		Cause:               res.Cause,
	}, nil
}

func filterFor(q dto.ProjectQuery) projectrepo.Filter {
	return projectrepo.Filter{
		CategoryID: q.CategoryID,
		Status:     project.Status(q.Status),
		Search:     q.Search,
	}
}

// Get returns one project.
func (s *Service) Get(ctx context.Context, id int64) (syncer.Result[*project.Project], error) {
	return syncer.Read(ctx, s.sync, syncer.Op[*project.Project]{
		Family: family,
		Name:   "get",
		Remote: func(ctx context.Context, _ string) (*project.Project, error) {
			return s.api.GetProject(ctx, id)
		},
		Local: func(ctx context.Context) (*project.Project, error) {
			return s.projects.Get(ctx, id)
		},
		Store: s.projects.Upsert,
	})
}

// Create starts a new project owned by the signed-in user.
func (s *Service) Create(ctx context.Context, in *dto.ProjectInput) (*project.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	return syncer.Write(ctx, s.sync, syncer.Op[*project.Project]{
		Family: family,
		Name:   "create",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*project.Project, error) {
			return s.api.CreateProject(ctx, token, in)
		},
		Store: s.projects.Upsert,
	})
}

// Update replaces the editable fields of a project.
func (s *Service) Update(ctx context.Context, id int64, in *dto.ProjectInput) (*project.Project, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	return syncer.Write(ctx, s.sync, syncer.Op[*project.Project]{
		Family: family,
		Name:   "update",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*project.Project, error) {
			return s.api.UpdateProject(ctx, token, id, in)
		},
		Store: s.projects.Upsert,
	})
}

// Delete removes a project. Its cached investments and comments go with it.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := syncer.Write(ctx, s.sync, syncer.Op[struct{}]{
		Family: family,
		Name:   "delete",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (struct{}, error) {
			return struct{}{}, s.api.DeleteProject(ctx, token, id)
		},
		Store: func(ctx context.Context, _ struct{}) error {
			return s.projects.Delete(ctx, id)
		},
	})
	return err
}

// Favorites returns the signed-in user's favorite projects. Favorite marks
// are not cached, so offline the call fails with domain.ErrNotCached; the
// projects it returns are still cached for other reads.
func (s *Service) Favorites(ctx context.Context) ([]*project.Project, error) {
	res, err := syncer.Read(ctx, s.sync, syncer.Op[[]*project.Project]{
		Family: family,
		Name:   "favorites",
		Auth:   true,
		Remote: s.api.ListFavorites,
		Local: func(context.Context) ([]*project.Project, error) {
			return nil, fmt.Errorf("favorites are not cached: %w", domain.ErrNotFound)
		},
		Store: s.projects.UpsertMany,
	})
	if err != nil {
		return nil, err
	}
	return res.Value, nil
}

// AddFavorite marks a project as a favorite of the signed-in user.
func (s *Service) AddFavorite(ctx context.Context, projectID int64) error {
	return s.favorite(ctx, "add favorite", func(ctx context.Context, token string) error {
		return s.api.AddFavorite(ctx, token, projectID)
	})
}

// RemoveFavorite unmarks a favorite project.
func (s *Service) RemoveFavorite(ctx context.Context, projectID int64) error {
	return s.favorite(ctx, "remove favorite", func(ctx context.Context, token string) error {
		return s.api.RemoveFavorite(ctx, token, projectID)
	})
}

func (s *Service) favorite(ctx context.Context, name string, call func(context.Context, string) error) error {
	_, err := syncer.Write(ctx, s.sync, syncer.Op[struct{}]{
		Family: family,
		Name:   name,
		Auth:   true,
		Remote: func(ctx context.Context, token string) (struct{}, error) {
			return struct{}{}, call(ctx, token)
		},
	})
	return err
}

// Search matches cached project titles only. Use List for a platform search.
func (s *Service) Search(ctx context.Context, text string) ([]*project.Project, error) {
	return s.projects.Find(ctx, projectrepo.Filter{Search: text})
}

// Active returns cached projects that are still collecting, ending soonest first.
func (s *Service) Active(ctx context.Context) ([]*project.Project, error) {
	return s.projects.ListActive(ctx, s.now())
}

// Popular returns up to limit cached projects with the most money raised.
func (s *Service) Popular(ctx context.Context, limit int) ([]*project.Project, error) {
	if limit <= 0 {
		return []*project.Project{}, nil
	}
	return s.projects.ListPopular(ctx, limit)
}

// ByCreator returns the cached projects created by a user.
func (s *Service) ByCreator(ctx context.Context, creatorID int64) ([]*project.Project, error) {
	return s.projects.ListByCreator(ctx, creatorID)
}

// CountByStatus counts cached projects in a status.
func (s *Service) CountByStatus(ctx context.Context, status project.Status) (int64, error) {
	return s.projects.CountByStatus(ctx, status)
}
