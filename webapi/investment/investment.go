// Package investment exposes investments, their payment outcome and the dashboard.
package investment

import (
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/provider/payment"
	"github.com/amirasaad/crowdfund/pkg/service/investment"
	"github.com/amirasaad/crowdfund/webapi/common"
	"github.com/gofiber/fiber/v2"
)

// OutcomeInput is what the payment UI reports. Without a status the outcome
// is resolved from the payment provider using the intent and its client secret.
type OutcomeInput struct {
	Status          payment.OutcomeStatus `json:"status"`
	PaymentIntentID string                `json:"payment_intent_id"`
	PaymentMethodID string                `json:"payment_method_id"`
	ClientSecret    string                `json:"client_secret"`
	Message         string                `json:"message"`
}

func Routes(app *fiber.App, svc *investment.Service, resolver payment.Resolver) {
	app.Post("/investments", Create(svc))
	app.Get("/investments", ListMine(svc))
	app.Get("/investments/dashboard", Dashboard(svc))
	app.Get("/investments/:id", Get(svc))
	app.Post("/investments/:id/confirm-payment", ConfirmPayment(svc))
	app.Post("/investments/:id/cancel", Cancel(svc))
	app.Post("/investments/:id/outcome", Outcome(svc, resolver))
	app.Get("/projects/:id/investments", ListForProject(svc))
	app.Get("/projects/:id/total", TotalForProject(svc))
}

func Create(svc *investment.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindJSON[dto.InvestmentRequest](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		inv, err := svc.Create(c.UserContext(), input)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Investment created", inv)
	}
}

func ListMine(svc *investment.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.ListMine(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Investments", res)
	}
}

func Get(svc *investment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Investment", res)
	})
}

func ListForProject(svc *investment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		res, err := svc.ListForProject(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Project investments", res)
	})
}

func TotalForProject(svc *investment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		total, err := svc.TotalCollectedForProject(c.UserContext(), id)
		return common.LocalJSON(c, "Collected", fiber.Map{"project_id": id, "total": total}, err)
	})
}

func ConfirmPayment(svc *investment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		input, err := common.BindJSON[dto.PaymentConfirmationRequest](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		resp, err := svc.ConfirmPayment(c.UserContext(), id, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, resp.Message, resp)
	})
}

func Cancel(svc *investment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		if err := svc.Cancel(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// Outcome applies a payment outcome. resolver may be nil.
func Outcome(svc *investment.Service, resolver payment.Resolver) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		input, err := common.BindJSON[OutcomeInput](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		outcome := &payment.Outcome{
			Status:          input.Status,
			PaymentIntentID: input.PaymentIntentID,
			PaymentMethodID: input.PaymentMethodID,
			Message:         input.Message,
		}
		if input.Status == "" && resolver != nil && input.PaymentIntentID != "" {
			outcome, err = resolver.ResolveOutcome(c.UserContext(), input.PaymentIntentID, input.ClientSecret)
			if err != nil {
				return common.ProblemDetailsJSON(c, err, fiber.StatusConflict)
			}
		}
		inv, err := svc.HandlePaymentOutcome(c.UserContext(), id, outcome)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		if inv == nil {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Payment confirmed", inv)
	})
}

func Dashboard(svc *investment.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Dashboard(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Dashboard", res)
	}
}
