// Package investment is the sync repository for investments and their
// payment lifecycle.
package investment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/amirasaad/crowdfund/pkg/domain/investment"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/provider/api"
	"github.com/amirasaad/crowdfund/pkg/provider/payment"
	investmentrepo "github.com/amirasaad/crowdfund/pkg/repository/investment"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/pkg/validation"
	"github.com/shopspring/decimal"
)

const family = "investment"

// DashboardRecent is how many investments the dashboard lists as recent activity.
const DashboardRecent = 5

// Service serves investments remote-first with a local fallback.
type Service struct {
	api         api.InvestmentAPI
	investments investmentrepo.Repository
	sync        *syncer.Syncer
	validate    *validation.Validator
	logger      *slog.Logger
	now         func() time.Time
}

// New creates an investment Service.
func New(
	investmentAPI api.InvestmentAPI,
	investments investmentrepo.Repository,
	sync *syncer.Syncer,
	validate *validation.Validator,
	logger *slog.Logger,
) *Service {
	return &Service{
		api:         investmentAPI,
		investments: investments,
		sync:        sync,
		validate:    validate,
		logger:      logger.With("service", family),
		now:         time.Now,
	}
}

// Create pledges money to a project. The returned investment carries the
// client secret the payment UI needs; the cached copy does not.
func (s *Service) Create(ctx context.Context, req *dto.InvestmentRequest) (*investment.Investment, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	inv, err := syncer.Write(ctx, s.sync, syncer.Op[*investment.Investment]{
		Family: family,
		Name:   "create",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*investment.Investment, error) {
			return s.api.CreateInvestment(ctx, token, req)
		},
		Store: s.investments.Upsert,
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Investment created",
		"investment_id", inv.ID, "project_id", inv.ProjectID, "requires_payment", inv.RequiresPayment())
	return inv, nil
}

// ListMine returns the signed-in user's investments.
func (s *Service) ListMine(ctx context.Context) (syncer.Result[[]*investment.Investment], error) {
	return syncer.Read(ctx, s.sync, syncer.Op[[]*investment.Investment]{
		Family: family,
		Name:   "list mine",
		Auth:   true,
		Remote: s.api.ListMyInvestments,
		Local: syncer.NonEmpty(func(ctx context.Context) ([]*investment.Investment, error) {
			userID, err := s.userID(ctx)
			if err != nil {
				return nil, err
			}
			return s.investments.ListByUser(ctx, userID)
		}),
		Store: s.investments.UpsertMany,
	})
}

// Get returns one of the signed-in user's investments.
func (s *Service) Get(ctx context.Context, id int64) (syncer.Result[*investment.Investment], error) {
	return syncer.Read(ctx, s.sync, syncer.Op[*investment.Investment]{
		Family: family,
		Name:   "get",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*investment.Investment, error) {
			return s.api.GetInvestment(ctx, token, id)
		},
		Local: func(ctx context.Context) (*investment.Investment, error) {
			return s.investments.Get(ctx, id)
		},
		Store: s.investments.Upsert,
	})
}

// ListForProject returns a project's investments.
func (s *Service) ListForProject(ctx context.Context, projectID int64) (syncer.Result[[]*investment.Investment], error) {
	return syncer.Read(ctx, s.sync, syncer.Op[[]*investment.Investment]{
		Family: family,
		Name:   "list for project",
		Remote: func(ctx context.Context, _ string) ([]*investment.Investment, error) {
			return s.api.ListProjectInvestments(ctx, projectID)
		},
		Local: syncer.NonEmpty(func(ctx context.Context) ([]*investment.Investment, error) {
			return s.investments.ListByProject(ctx, projectID)
		}),
		Store: s.investments.UpsertMany,
	})
}

// ConfirmPayment tells the platform the payment went through. The cached
// copy is replaced by the one the platform returns, or marked COMPLETED when
// it returns none.
func (s *Service) ConfirmPayment(
	ctx context.Context,
	id int64,
	req *dto.PaymentConfirmationRequest,
) (*dto.PaymentConfirmationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if err := s.checkTransition(ctx, id, investment.StatusCompleted); err != nil {
		return nil, err
	}
	resp, err := syncer.Write(ctx, s.sync, syncer.Op[*dto.PaymentConfirmationResponse]{
		Family: family,
		Name:   "confirm payment",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (*dto.PaymentConfirmationResponse, error) {
			return s.api.ConfirmPayment(ctx, token, id, req)
		},
		Store: func(ctx context.Context, resp *dto.PaymentConfirmationResponse) error {
			if resp.Investment != nil {
				return s.investments.Upsert(ctx, resp.Investment)
			}
			return s.investments.UpdateStatus(ctx, &investment.Investment{
				ID: id, Status: investment.StatusCompleted, UpdatedAt: s.now().UTC(),
			})
		},
	})
	if err != nil {
		return nil, err
	}
	s.logger.Info("Payment confirmed", "investment_id", id)
	return resp, nil
}

// Cancel abandons a pending investment.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	if err := s.checkTransition(ctx, id, investment.StatusCancelled); err != nil {
		return err
	}
	_, err := syncer.Write(ctx, s.sync, syncer.Op[struct{}]{
		Family: family,
		Name:   "cancel",
		Auth:   true,
		Remote: func(ctx context.Context, token string) (struct{}, error) {
			return struct{}{}, s.api.CancelInvestment(ctx, token, id)
		},
		Store: func(ctx context.Context, _ struct{}) error {
			return s.investments.UpdateStatus(ctx, &investment.Investment{
				ID: id, Status: investment.StatusCancelled, UpdatedAt: s.now().UTC(),
			})
		},
	})
	if err != nil {
		return err
	}
	s.logger.Info("Investment cancelled", "investment_id", id)
	return nil
}

// HandlePaymentOutcome applies what the payment UI reported. A successful
// payment is confirmed and the updated investment returned; a cancelled one
// cancels the investment. A failed payment changes nothing and is returned as
// domain.ErrPaymentFailed.
func (s *Service) HandlePaymentOutcome(
	ctx context.Context,
	id int64,
	outcome *payment.Outcome,
) (*investment.Investment, error) {
	if err := s.validate.Struct(outcome); err != nil {
		return nil, err
	}
	switch outcome.Status {
	case payment.OutcomeSucceeded:
		resp, err := s.ConfirmPayment(ctx, id, &dto.PaymentConfirmationRequest{
			PaymentIntentID: outcome.PaymentIntentID,
			PaymentMethodID: outcome.PaymentMethodID,
		})
		if err != nil {
			return nil, err
		}
		return resp.Investment, nil
	case payment.OutcomeCanceled:
		return nil, s.Cancel(ctx, id)
	default:
		s.logger.Info("Payment failed", "investment_id", id, "message", outcome.Message)
		if outcome.Message != "" {
			return nil, fmt.Errorf("investment %d: %w: %s", id, domain.ErrPaymentFailed, outcome.Message)
		}
		return nil, fmt.Errorf("investment %d: %w", id, domain.ErrPaymentFailed)
	}
}

// checkTransition fails fast when the cached copy already rules the move
// out. An uncached investment is left for the platform to judge; any other
// cache failure stops the move.
func (s *Service) checkTransition(ctx context.Context, id int64, to investment.Status) error {
	local, err := s.investments.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("investment %d: read cached copy: %w", id, err)
	}
	if !local.CanTransition(to) {
		return fmt.Errorf("investment %d: %w: %s -> %s", id, domain.ErrInvalidTransition, local.Status, to)
	}
	return nil
}

// Dashboard summarizes the signed-in user's investments.
func (s *Service) Dashboard(ctx context.Context) (syncer.Result[*investment.Summary], error) {
	res, err := s.ListMine(ctx)
	if err != nil {
		return syncer.Result[*investment.Summary]{}, err
	}
	return syncer.Result[*investment.Summary]{
		Value:  investment.Summarize(res.Value, DashboardRecent),
		Source: res.Source,
		Cause:  res.Cause,
	}, nil
}

// TotalInvestedByUser sums a user's cached completed investments.
func (s *Service) TotalInvestedByUser(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return s.investments.TotalInvestedByUser(ctx, userID)
}

// TotalCollectedForProject sums a project's cached completed investments.
func (s *Service) TotalCollectedForProject(ctx context.Context, projectID int64) (decimal.Decimal, error) {
	return s.investments.TotalCollectedForProject(ctx, projectID)
}

func (s *Service) CountByUser(ctx context.Context, userID int64) (int64, error) {
	return s.investments.CountByUser(ctx, userID)
}

func (s *Service) CountByUserAndStatus(ctx context.Context, userID int64, status investment.Status) (int64, error) {
	return s.investments.CountByUserAndStatus(ctx, userID, status)
}

// RecentByUser returns a user's n most recent cached investments.
func (s *Service) RecentByUser(ctx context.Context, userID int64, n int) ([]*investment.Investment, error) {
	if n <= 0 {
		return []*investment.Investment{}, nil
	}
	return s.investments.RecentByUser(ctx, userID, n)
}

func (s *Service) userID(ctx context.Context) (int64, error) {
	id, err := s.sync.Credentials().UserID(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrNotFound, err)
	}
	return id, nil
}
