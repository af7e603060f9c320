// Package webapi is the local HTTP gateway over the sync repositories.
// It is organized into sub-packages per entity family:
// - auth: sign-in, sign-out and profile
// - project: projects, categories and favorites
// - investment: investments, payment outcomes and the dashboard
// - comment: comments and follows
package webapi

import (
	"errors"
	"strings"

	"github.com/amirasaad/crowdfund/pkg/app"
	authweb "github.com/amirasaad/crowdfund/webapi/auth"
	commentweb "github.com/amirasaad/crowdfund/webapi/comment"
	"github.com/amirasaad/crowdfund/webapi/common"
	investmentweb "github.com/amirasaad/crowdfund/webapi/investment"
	projectweb "github.com/amirasaad/crowdfund/webapi/project"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupApp Initialize Fiber with custom configuration
func SetupApp(a *app.App) *fiber.App {
	fiberApp := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, err)
		},
	})

	fiberApp.Use(recover.New())
	fiberApp.Use(limiter.New(limiter.Config{
		Max:        a.Config.RateLimit.MaxRequests,
		Expiration: a.Config.RateLimit.Window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/health" || c.Path() == "/metrics"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				first, _, _ := strings.Cut(forwardedFor, ",")
				return strings.TrimSpace(first)
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
		},
	}))
	if a.Config.Env == "development" {
		fiberApp.Use(logger.New())
	}

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Crowdfund sync gateway is running")
	})
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":         "ok",
			"pending_writes": a.Deps.Writes.Pending(),
		})
	})
	fiberApp.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	authweb.Routes(fiberApp, a.Auth)
	projectweb.Routes(fiberApp, a.Projects, a.Categories)
	investmentweb.Routes(fiberApp, a.Investments, a.Deps.Payments)
	commentweb.Routes(fiberApp, a.Comments)
	return fiberApp
}
