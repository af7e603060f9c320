package platform

import (
	"context"
	"net/http"

	"github.com/amirasaad/crowdfund/pkg/domain/comment"
	"github.com/amirasaad/crowdfund/pkg/dto"
)

func (c *Client) ListComments(ctx context.Context, projectID int64) ([]*comment.Comment, error) {
	return getList[*comment.Comment](ctx, c, request{
		method: http.MethodGet,
		route:  "/api/projects/{id}/comments/",
		path:   idPath("/api/projects/%d/comments/", projectID),
	})
}

func (c *Client) PostComment(ctx context.Context, token string, req *dto.CommentRequest) (*comment.Comment, error) {
	var out comment.Comment
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/comments/",
		path:   "/api/comments/",
		token:  token,
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ReportComment(ctx context.Context, token string, id int64, req *dto.ReportRequest) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/comments/{id}/report/",
		path:   idPath("/api/comments/%d/report/", id),
		token:  token,
		body:   req,
	}, nil)
}

func (c *Client) DeleteComment(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/comments/{id}/",
		path:   idPath("/api/comments/%d/", id),
		token:  token,
	}, nil)
}

// FollowProject follows a project. An empty success body means following.
func (c *Client) FollowProject(ctx context.Context, token string, projectID int64) (*dto.FollowResponse, error) {
	out := &dto.FollowResponse{IsFollowing: true}
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/projects/{id}/follow/",
		path:   idPath("/api/projects/%d/follow/", projectID),
		token:  token,
	}, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) UnfollowProject(ctx context.Context, token string, projectID int64) (*dto.FollowResponse, error) {
	out := &dto.FollowResponse{}
	if err := c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/projects/{id}/follow/",
		path:   idPath("/api/projects/%d/follow/", projectID),
		token:  token,
	}, out); err != nil {
		return nil, err
	}
	return out, nil
}
