// Package syncer implements the cache-aside policy shared by every entity
// family: reads go to the platform first and fall back to the local cache,
// writes go to the platform only and are mirrored locally once they succeed.
package syncer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/metrics"
	"github.com/amirasaad/crowdfund/pkg/writeback"
)

// Source tells where a read result came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
)

// Result is the outcome of a read. Cause is the remote error that forced a
// cache read and is nil for remote results.
type Result[T any] struct {
	Value  T
	Source Source
	Cause  error
}

// Offline reports whether the value was served from the local cache.
func (r Result[T]) Offline() bool {
	return r.Source == SourceCache
}

// Credentials supplies the signed-in user's access token.
type Credentials interface {
	// AccessToken returns a usable access token, or domain.ErrNoCredential
	// when nobody is signed in.
	AccessToken(ctx context.Context) (string, error)
	// UserID returns the id of the signed-in user.
	UserID(ctx context.Context) (int64, error)
}

// Submitter accepts background cache writes.
type Submitter interface {
	Submit(ctx context.Context, t writeback.Task) error
	// Flush waits until every write submitted so far has finished.
	Flush(ctx context.Context) error
}

// Op describes one sync operation.
type Op[T any] struct {
	Family string
	Name   string
	// Auth marks operations that need an access token.
	Auth bool
	// Remote performs the platform call. token is empty unless Auth is set.
	Remote func(ctx context.Context, token string) (T, error)
	// Local reads the cached equivalent. A miss is reported as domain.ErrNotFound.
	Local func(ctx context.Context) (T, error)
	// Store mirrors a successful remote value into the cache. Nil skips mirroring.
	Store func(ctx context.Context, v T) error
}

// Syncer holds what every sync operation needs.
type Syncer struct {
	creds  Credentials
	writes Submitter
	logger *slog.Logger
}

// New creates a Syncer.
func New(creds Credentials, writes Submitter, logger *slog.Logger) *Syncer {
	return &Syncer{
		creds:  creds,
		writes: writes,
		logger: logger.With("component", "syncer"),
	}
}

// Credentials returns the credential source the Syncer was built with.
func (s *Syncer) Credentials() Credentials {
	return s.creds
}

// Read runs op remote-first. On success the value is queued for caching and
// returned. On any remote failure the local cache answers instead; when it
// has nothing the returned error matches both domain.ErrNotCached and the
// remote cause. A cancelled ctx is returned as is, without a cache read.
func Read[T any](ctx context.Context, s *Syncer, op Op[T]) (Result[T], error) {
	token, cause := s.token(ctx, op.Family, op.Name, op.Auth)
	if cause == nil {
		v, err := op.Remote(ctx, token)
		if err == nil {
			metrics.RecordRemoteOutcome(op.Family, op.Name, "ok")
			mirror(ctx, s, op, v)
			return Result[T]{Value: v, Source: SourceRemote}, nil
		}
		metrics.RecordRemoteOutcome(op.Family, op.Name, "error")
		cause = err
	}

	if err := ctx.Err(); err != nil {
		return Result[T]{}, err
	}

	s.logger.Debug("Remote read failed, using cache",
		"family", op.Family, "op", op.Name, "kind", domain.KindOf(cause), "error", cause)
	v, err := op.Local(ctx)
	switch {
	case err == nil:
		metrics.RecordFallback(op.Family, op.Name, true)
		return Result[T]{Value: v, Source: SourceCache, Cause: cause}, nil
	case errors.Is(err, domain.ErrNotFound):
		metrics.RecordFallback(op.Family, op.Name, false)
		return Result[T]{}, fmt.Errorf("%s %s: %w: %w", op.Family, op.Name, domain.ErrNotCached, cause)
	default:
		metrics.RecordFallback(op.Family, op.Name, false)
		s.logger.Error("Cache read failed", "family", op.Family, "op", op.Name, "error", err)
		return Result[T]{}, fmt.Errorf("%s %s: %w", op.Family, op.Name, errors.Join(cause, err))
	}
}

// Write runs op against the platform only. The cache is touched only after
// the remote call succeeded.
func Write[T any](ctx context.Context, s *Syncer, op Op[T]) (T, error) {
	var zero T
	token, err := s.token(ctx, op.Family, op.Name, op.Auth)
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", op.Family, op.Name, err)
	}
	v, err := op.Remote(ctx, token)
	if err != nil {
		metrics.RecordRemoteOutcome(op.Family, op.Name, "error")
		return zero, err
	}
	metrics.RecordRemoteOutcome(op.Family, op.Name, "ok")
	mirror(ctx, s, op, v)
	return v, nil
}

// NonEmpty adapts a cache list query so that an empty result counts as a miss.
func NonEmpty[E any](list func(ctx context.Context) ([]E, error)) func(ctx context.Context) ([]E, error) {
	return func(ctx context.Context) ([]E, error) {
		rows, err := list(ctx)
		if err != nil {
			return nil, err
		}
		if len(rows) == 0 {
			return nil, domain.ErrNotFound
		}
		return rows, nil
	}
}

// Mirror queues a cache write that is not tied to an Op. Failing to queue is
// logged, never returned: the remote call it follows has already succeeded.
func (s *Syncer) Mirror(ctx context.Context, family, name string, run func(ctx context.Context) error) {
	if err := s.writes.Submit(ctx, writeback.Task{Family: family, Name: name, Run: run}); err != nil {
		s.logger.Warn("Cache write not queued", "family", family, "task", name, "error", err)
	}
}

// Flush blocks until the cache writes queued so far have been applied.
func (s *Syncer) Flush(ctx context.Context) error {
	return s.writes.Flush(ctx)
}

func (s *Syncer) token(ctx context.Context, family, name string, auth bool) (string, error) {
	if !auth {
		return "", nil
	}
	token, err := s.creds.AccessToken(ctx)
	if err != nil {
		metrics.RecordRemoteOutcome(family, name, "skipped")
		return "", err
	}
	return token, nil
}

func mirror[T any](ctx context.Context, s *Syncer, op Op[T], v T) {
	if op.Store == nil {
		return
	}
	s.Mirror(ctx, op.Family, op.Name, func(ctx context.Context) error {
		return op.Store(ctx, v)
	})
}
