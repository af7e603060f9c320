// Package auth exposes sign-in, sign-out and the profile of the signed-in user.
package auth

import (
	"github.com/amirasaad/crowdfund/pkg/dto"
	authsvc "github.com/amirasaad/crowdfund/pkg/service/auth"
	"github.com/amirasaad/crowdfund/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, authSvc *authsvc.Service) {
	app.Post("/auth/login", Login(authSvc))
	app.Post("/auth/register", Register(authSvc))
	app.Post("/auth/logout", Logout(authSvc))
	app.Get("/auth/profile", Profile(authSvc))
	app.Put("/auth/profile", UpdateProfile(authSvc))
}

// Login signs in with username and password. The tokens stay in the
// gateway's session and are never returned.
func Login(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindJSON[dto.LoginRequest](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		u, err := authSvc.Login(c.UserContext(), input)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Signed in", u)
	}
}

// Register creates an account and signs in with it.
func Register(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindJSON[dto.RegisterRequest](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		u, err := authSvc.Register(c.UserContext(), input)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Registered", u)
	}
}

func Logout(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authSvc.Logout(c.UserContext()); err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func Profile(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := authSvc.Profile(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Profile", res)
	}
}

func UpdateProfile(authSvc *authsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindJSON[dto.ProfileUpdate](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		u, err := authSvc.UpdateProfile(c.UserContext(), input)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Profile updated", u)
	}
}
