// Package comment is the sync repository for project comments and follows.
package comment

import (
	"context"
	"log/slog"

	"github.com/amirasaad/crowdfund/pkg/domain/comment"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	commentrepo "github.com/amirasaad/crowdfund/pkg/repository/comment"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/validation"
)

const family = "comment"

// Service serves comments remote-first with a local fallback.
type Service struct {
	api      api.SocialAPI
	comments commentrepo.Repository
	sync     *syncer.Syncer
	validate *validation.Validator
	logger   *slog.Logger
}

// New creates a comment Service.
func New(
	socialAPI api.SocialAPI,
	comments commentrepo.Repository,
	sync *syncer.Syncer,
	validate *validation.Validator,
	logger *slog.Logger,
) *Service {
	return &Service{
		api:      socialAPI,
		comments: comments,
		sync:     sync,
		validate: validate,
		logger:   logger.With("service", family),
	}
}

// ListForProject returns a project's visible comments, newest first.
func (s *Service) ListForProject(ctx context.Context, projectID int64) (syncer.Result[[]*comment.Comment], error) {
	return syncer.Read(ctx, s.sync, syncer.Op[[]*comment.Comment]{
		Family: family,
		Name:   "list",
		Remote: func(ctx context.Context, _ string) ([]*comment.Comment, error) {
			return s.api.ListComments(ctx, projectID)
		},
		Local: syncer.NonEmpty(func(ctx context.Context) ([]*comment.Comment, error) {
			return s.comments.ListByProject(ctx, projectID)
		}),
		Store: s.comments.UpsertMany,
	})
}

// ListByUser returns a user's cached comments.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]*comment.Comment, error) {
	return s.comments.ListByUser(ctx, userID)
}

// Post adds a comment to a project.
func (s *Service) Post(ctx context.Context, projectID int64, content string) (*comment.Comment, error) {
	req := &dto.CommentRequest{ProjectID: projectID, Content: content}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	return syncer.Write(ctx, s.sync, syncer.Op[*comment.Comment]{
		Family: family,
		Name:   "post",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*comment.Comment, error) {
			return s.api.PostComment(ctx, token, req)
		},
		Store: s.comments.Upsert,
	})
}

// Report flags a comment for moderation.
func (s *Service) Report(ctx context.Context, id int64, reason string) error {
	req := &dto.ReportRequest{Reason: reason}
	if err := s.validate.Struct(req); err != nil {
		return err
	}
	_, err := syncer.Write(ctx, s.sync, syncer.Op[struct{}]{
		Family: family,
		Name:   "report",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (struct{}, error) {
			return struct{}{}, s.api.ReportComment(ctx, token, id, req)
		},
		Store: func(ctx context.Context, _ struct{}) error {
			return s.comments.MarkReported(ctx, id)
		},
	})
	return err
}

// Delete removes a comment. The cached row is kept and marked deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	_, err := syncer.Write(ctx, s.sync, syncer.Op[struct{}]{
		Family: family,
		Name:   "delete",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (struct{}, error) {
			return struct{}{}, s.api.DeleteComment(ctx, token, id)
		},
		Store: func(ctx context.Context, _ struct{}) error {
			return s.comments.MarkDeleted(ctx, id)
		},
	})
	return err
}

// Follow subscribes the signed-in user to a project and reports the new state.
func (s *Service) Follow(ctx context.Context, projectID int64) (bool, error) {
	return s.follow(ctx, "follow", func(ctx context.Context, token string) (*dto.FollowResponse, error) {
		return s.api.FollowProject(ctx, token, projectID)
	})
}

// Unfollow reverses Follow.
func (s *Service) Unfollow(ctx context.Context, projectID int64) (bool, error) {
	return s.follow(ctx, "unfollow", func(ctx context.Context, token string) (*dto.FollowResponse, error) {
		return s.api.UnfollowProject(ctx, token, projectID)
	})
}

func (s *Service) follow(
	ctx context.Context,
	name string,
	call func(context.Context, string) (*dto.FollowResponse, error),
) (bool, error) {
	resp, err := syncer.Write(ctx, s.sync, syncer.Op[*dto.FollowResponse]{
		Family: "follow",
		Name:   name,
		Auth:   true,
		Remote: call,
	})
	if err != nil {
		return false, err
	}
	return resp.IsFollowing, nil
}
