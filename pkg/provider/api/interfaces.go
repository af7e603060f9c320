// Package api defines the contracts of the crowdfunding platform's REST API
// as consumed by the sync layer. Implementations issue exactly one request per
// call; they never retry and never cache.
package api

import (
	"context"

	"github.com/amirasaad/crowdfund/pkg/domain/category"
	"github.com/amirasaad/crowdfund/pkg/domain/comment"
	"github.com/amirasaad/crowdfund/pkg/domain/investment"
	"github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/amirasaad/crowdfund/pkg/domain/user"
	"github.com/amirasaad/crowdfund/pkg/dto"
)

// ProjectAPI covers projects, categories and favorites.
type ProjectAPI interface {
	ListProjects(ctx context.Context, q dto.ProjectQuery) (*dto.ProjectListResponse, error)
	GetProject(ctx context.Context, id int64) (*project.Project, error)
	CreateProject(ctx context.Context, token string, in *dto.ProjectInput) (*project.Project, error)
	UpdateProject(ctx context.Context, token string, id int64, in *dto.ProjectInput) (*project.Project, error)
	DeleteProject(ctx context.Context, token string, id int64) error
	ListCategories(ctx context.Context) ([]*category.Category, error)
	ListFavorites(ctx context.Context, token string) ([]*project.Project, error)
	AddFavorite(ctx context.Context, token string, projectID int64) error
	RemoveFavorite(ctx context.Context, token string, projectID int64) error
}

// InvestmentAPI covers investments and their payment confirmation.
type InvestmentAPI interface {
	CreateInvestment(ctx context.Context, token string, req *dto.InvestmentRequest) (*investment.Investment, error)
	ListMyInvestments(ctx context.Context, token string) ([]*investment.Investment, error)
	GetInvestment(ctx context.Context, token string, id int64) (*investment.Investment, error)
	ListProjectInvestments(ctx context.Context, projectID int64) ([]*investment.Investment, error)
	ConfirmPayment(
		ctx context.Context,
		token string,
		id int64,
		req *dto.PaymentConfirmationRequest,
	) (*dto.PaymentConfirmationResponse, error)
	CancelInvestment(ctx context.Context, token string, id int64) error
}

// SocialAPI covers comments and project follows.
type SocialAPI interface {
	ListComments(ctx context.Context, projectID int64) ([]*comment.Comment, error)
	PostComment(ctx context.Context, token string, req *dto.CommentRequest) (*comment.Comment, error)
	ReportComment(ctx context.Context, token string, id int64, req *dto.ReportRequest) error
	DeleteComment(ctx context.Context, token string, id int64) error
	FollowProject(ctx context.Context, token string, projectID int64) (*dto.FollowResponse, error)
	UnfollowProject(ctx context.Context, token string, projectID int64) (*dto.FollowResponse, error)
}

// AuthAPI covers the session lifecycle and the signed-in user's profile.
type AuthAPI interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (*user.User, error)
	UpdateProfile(ctx context.Context, token string, in *dto.ProfileUpdate) (*user.User, error)
}

// Platform is the whole remote API.
type Platform interface {
	ProjectAPI
	InvestmentAPI
	SocialAPI
	AuthAPI
}
