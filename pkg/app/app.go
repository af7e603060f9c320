// Package app assembles the sync repositories from their dependencies.
package app

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/amirasaad/crowdfund/pkg/cache"
	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	"github.com/amirasaad/crowdfund/pkg/provider/payment"
	categoryrepo "github.com/amirasaad/crowdfund/pkg/repository/category"
	commentrepo "github.com/amirasaad/crowdfund/pkg/repository/comment"
	investmentrepo "github.com/amirasaad/crowdfund/pkg/repository/investment"
	projectrepo "github.com/amirasaad/crowdfund/pkg/repository/project"
	userrepo "github.com/amirasaad/crowdfund/pkg/repository/user"
	"github.com/amirasaad/crowdfund/pkg/service/auth"
	"github.com/amirasaad/crowdfund/pkg/service/category"
	"github.com/amirasaad/crowdfund/pkg/service/comment"
	"github.com/amirasaad/crowdfund/pkg/service/investment"
	"github.com/amirasaad/crowdfund/pkg/service/project"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/validation"
	"github.com/amirasaad/crowdfund/pkg/writeback"
)

// Deps contains everything the services are built from.
type Deps struct {
	Platform    api.Platform
	Projects    projectrepo.Repository
	Categories  categoryrepo.Repository
	Investments investmentrepo.Repository
	Comments    commentrepo.Repository
	Users       userrepo.Repository
	Tokens      cache.TokenStore
	Writes      *writeback.Queue
	// Payments is optional; without it payment outcomes must be reported explicitly.
	Payments payment.Resolver
	Logger   *slog.Logger
	// Closers are closed by Shutdown after the write queue drained.
	Closers []io.Closer
}

// App holds one sync service per entity family, all sharing the session and
// write-back queue of its Deps.
type App struct {
	Deps        *Deps
	Config      *config.App
	Session     *auth.Session
	Sync        *syncer.Syncer
	Auth        *auth.Service
	Projects    *project.Service
	Categories  *category.Service
	Investments *investment.Service
	Comments    *comment.Service
}

// New builds every service on top of deps.
func New(deps *Deps, cfg *config.App) *App {
	validate := validation.New()
	session := auth.NewSession(deps.Tokens, deps.Platform, cfg.Session.ExpirySkew, deps.Logger)
	sync := syncer.New(session, deps.Writes, deps.Logger)
	return &App{
		Deps:        deps,
		Config:      cfg,
		Session:     session,
		Sync:        sync,
		Auth:        auth.New(deps.Platform, session, deps.Users, sync, validate, deps.Logger),
		Projects:    project.New(deps.Platform, deps.Projects, sync, validate, deps.Logger),
		Categories:  category.New(deps.Platform, deps.Categories, sync, deps.Logger),
		Investments: investment.New(deps.Platform, deps.Investments, sync, validate, deps.Logger),
		Comments:    comment.New(deps.Platform, deps.Comments, sync, validate, deps.Logger),
	}
}

// Shutdown drains pending cache writes, then releases the stores. Writes
// still queued when ctx ends are dropped.
func (a *App) Shutdown(ctx context.Context) error {
	errs := []error{a.Deps.Writes.Close(ctx)}
	for _, c := range a.Deps.Closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
