package dto

import (
	"time"

	"github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/shopspring/decimal"
)

// ProjectQuery selects a page of projects. Zero values mean "no filter".
type ProjectQuery struct {
	Page       int    `query:"page"`
	PageSize   int    `query:"page_size"`
	CategoryID int64  `query:"category"`
	Search     string `query:"search"`
	Status     string `query:"status"`
}

// ProjectListResponse is a page of projects as returned by GET /api/projects/.
type ProjectListResponse struct {
	Count    int                `json:"count"`
	Next     *string            `json:"next"`
	Previous *string            `json:"previous"`
	Results  []*project.Project `json:"results"`
}

// ProjectPage is a ProjectListResponse plus where it came from. Pages served
// from the local cache carry no pagination links.
type ProjectPage struct {
	ProjectListResponse
	Offline bool  `json:"offline"`
	Cause   error `json:"-"`
}

// ProjectInput is the body of project create and update calls.
type ProjectInput struct {
	Title        string          `json:"title" validate:"required,max=200"`
	Description  string          `json:"description" validate:"required"`
	TargetAmount decimal.Decimal `json:"target_amount" validate:"gt=0"`
	CategoryID   int64           `json:"category_id" validate:"required,gt=0"`
	ImageURL     string          `json:"image_url,omitempty" validate:"omitempty,url"`
	EndDate      time.Time       `json:"end_date" validate:"required"`
}
