package platform

import (
	"context"
	"net/http"

	"github.com/amirasaad/crowdfund/pkg/domain/investment"
	"github.com/amirasaad/crowdfund/pkg/dto"
)

func (c *Client) CreateInvestment(
	ctx context.Context,
	token string,
	req *dto.InvestmentRequest,
) (*investment.Investment, error) {
	var out investment.Investment
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/investments/",
		path:   "/api/investments/",
		token:  token,
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListMyInvestments(ctx context.Context, token string) ([]*investment.Investment, error) {
	return getList[*investment.Investment](ctx, c, request{
		method: http.MethodGet,
		route:  "/api/investments/",
		path:   "/api/investments/",
		token:  token,
	})
}

func (c *Client) GetInvestment(ctx context.Context, token string, id int64) (*investment.Investment, error) {
	var out investment.Investment
	if err := c.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/investments/{id}/",
		path:   idPath("/api/investments/%d/", id),
		token:  token,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListProjectInvestments(ctx context.Context, projectID int64) ([]*investment.Investment, error) {
	return getList[*investment.Investment](ctx, c, request{
		method: http.MethodGet,
		route:  "/api/projects/{id}/investments/",
		path:   idPath("/api/projects/%d/investments/", projectID),
	})
}

func (c *Client) ConfirmPayment(
	ctx context.Context,
	token string,
	id int64,
	req *dto.PaymentConfirmationRequest,
) (*dto.PaymentConfirmationResponse, error) {
	var out dto.PaymentConfirmationResponse
	if err := c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/investments/{id}/confirm-payment/",
		path:   idPath("/api/investments/%d/confirm-payment/", id),
		token:  token,
		body:   req,
	}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CancelInvestment(ctx context.Context, token string, id int64) error {
	return c.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/investments/{id}/cancel/",
		path:   idPath("/api/investments/%d/cancel/", id),
		token:  token,
	}, nil)
}
