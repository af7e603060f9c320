// Package comment exposes project comments and follows.
package comment

import (
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/service/comment"
	"github.com/amirasaad/crowdfund/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, svc *comment.Service) {
	app.Get("/projects/:id/comments", ListForProject(svc))
	app.Post("/projects/:id/follow", Follow(svc, true))
	app.Delete("/projects/:id/follow", Follow(svc, false))
	app.Post("/comments", Post(svc))
	app.Post("/comments/:id/report", Report(svc))
	app.Delete("/comments/:id", Delete(svc))
}

func ListForProject(svc *comment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		res, err := svc.ListForProject(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Comments", res)
	})
}

func Post(svc *comment.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindJSON[dto.CommentRequest](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		cm, err := svc.Post(c.UserContext(), input.ProjectID, input.Content)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Comment posted", cm)
	}
}

func Report(svc *comment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		input, err := common.BindJSON[dto.ReportRequest](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		if err := svc.Report(c.UserContext(), id, input.Reason); err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func Delete(svc *comment.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// Follow subscribes to or unsubscribes from a project.
func Follow(svc *comment.Service, on bool) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		call := svc.Unfollow
		if on {
			call = svc.Follow
		}
		following, err := call(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Follow updated", dto.FollowResponse{IsFollowing: following})
	})
}
