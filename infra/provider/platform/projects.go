package platform

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amirasaad/crowdfund/pkg/domain/category"
	"github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/amirasaad/crowdfund/pkg/dto"
)

func (c *Client) ListProjects(ctx context.Context, q dto.ProjectQuery) (*dto.ProjectListResponse, error) {
	var out dto.ProjectListResponse
	err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/projects/",
		path:   "/api/projects/",
		query:  projectQuery(q),
	}, &out)
	if err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []*project.Project{}
	}
	return &out, nil
}

func (c *Client) GetProject(ctx context.Context, id int64) (*project.Project, error) {
	var out project.Project
	if err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/projects/{id}/",
		path:   idPath("/api/projects/%d/", id),
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateProject(ctx context.Context, token string, in *dto.ProjectInput) (*project.Project, error) {
	var out project.Project
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/projects/",
		path:   "/api/projects/",
		token:  token,
		body:   in,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(
	ctx context.Context,
	token string,
	id int64,
	in *dto.ProjectInput,
) (*project.Project, error) {
	var out project.Project
	if err := c.do(ctx, request{
		method: http.MethodPut,
		route:  "/api/projects/{id}/",
		path:   idPath("/api/projects/%d/", id),
		token:  token,
		body:   in,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/projects/{id}/",
		path:   idPath("/api/projects/%d/", id),
		token:  token,
	}, nil)
}

func (c *Client) ListCategories(ctx context.Context) ([]*category.Category, error) {
	return getList[*category.Category](ctx, c, request{
		method: http.MethodGet,
		route:  "/api/categories/",
		path:   "/api/categories/",
	})
}

func (c *Client) ListFavorites(ctx context.Context, token string) ([]*project.Project, error) {
	return getList[*project.Project](ctx, c, request{
		method: http.MethodGet,
		route:  "/api/projects/favorites/",
		path:   "/api/projects/favorites/",
		token:  token,
	})
}

func (c *Client) AddFavorite(ctx context.Context, token string, projectID int64) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/projects/{id}/favorite/",
		path:   idPath("/api/projects/%d/favorite/", projectID),
		token:  token,
	}, nil)
}

func (c *Client) RemoveFavorite(ctx context.Context, token string, projectID int64) error {
	return c.do(ctx, request{
		method: http.MethodDelete,
		route:  "/api/projects/{id}/favorite/",
		path:   idPath("/api/projects/%d/favorite/", projectID),
		token:  token,
	}, nil)
}

func projectQuery(q dto.ProjectQuery) url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.CategoryID > 0 {
		v.Set("category", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	return v
}
