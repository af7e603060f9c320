// Package project exposes projects, categories and favorites.
package project

import (
	projectdomain "github.com/amirasaad/crowdfund/pkg/domain/project"
	"github.com/amirasaad/crowdfund/pkg/dto"
	"github.com/amirasaad/crowdfund/pkg/service/category"
	"github.com/amirasaad/crowdfund/pkg/service/project"
	"github.com/amirasaad/crowdfund/pkg/syncer"
	"github.com/amirasaad/crowdfund/webapi/common"
	"github.com/gofiber/fiber/v2"
)

func Routes(app *fiber.App, projectSvc *project.Service, categorySvc *category.Service) {
	app.Get("/categories", ListCategories(categorySvc))
	app.Get("/categories/name/:name", CategoryByName(categorySvc))
	app.Get("/categories/:id", GetCategory(categorySvc))

	app.Get("/projects", ListProjects(projectSvc))
	app.Post("/projects", CreateProject(projectSvc))
	app.Get("/projects/favorites", Favorites(projectSvc))
	app.Get("/projects/local/active", ActiveProjects(projectSvc))
	app.Get("/projects/local/popular", PopularProjects(projectSvc))
	app.Get("/projects/local/search", SearchProjects(projectSvc))
	app.Get("/projects/local/count", CountProjects(projectSvc))
	app.Get("/projects/local/creator/:id", ProjectsByCreator(projectSvc))
	app.Get("/projects/:id", GetProject(projectSvc))
	app.Put("/projects/:id", UpdateProject(projectSvc))
	app.Delete("/projects/:id", DeleteProject(projectSvc))
	app.Post("/projects/:id/favorite", AddFavorite(projectSvc))
	app.Delete("/projects/:id/favorite", RemoveFavorite(projectSvc))
}

// ListProjects returns a page of projects. Query: page, page_size, category, search, status.
func ListProjects(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q dto.ProjectQuery
		if err := c.QueryParser(&q); err != nil {
			return common.ProblemDetailsJSON(c, err, fiber.StatusBadRequest)
		}
		page, err := svc.List(c.UserContext(), q)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		source := syncer.SourceRemote
		if page.Offline {
			source = syncer.SourceCache
		}
		c.Set(common.HeaderDataSource, string(source))
		return c.JSON(page)
	}
}

func GetProject(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		res, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Project", res)
	}
}

func CreateProject(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindJSON[dto.ProjectInput](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		p, err := svc.Create(c.UserContext(), input)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Project created", p)
	}
}

func UpdateProject(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := common.ParamID(c, "id")
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		input, err := common.BindJSON[dto.ProjectInput](c)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		p, err := svc.Update(c.UserContext(), id, input)
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Project updated", p)
	}
}

func DeleteProject(svc *project.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func Favorites(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		favs, err := svc.Favorites(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		c.Set(common.HeaderDataSource, string(syncer.SourceRemote))
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Favorites", favs)
	}
}

func AddFavorite(svc *project.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		if err := svc.AddFavorite(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

func RemoveFavorite(svc *project.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		if err := svc.RemoveFavorite(c.UserContext(), id); err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// ActiveProjects and the other local routes answer from the cache only.
func ActiveProjects(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := svc.Active(c.UserContext())
		return common.LocalJSON(c, "Active projects", ps, err)
	}
}

func PopularProjects(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := svc.Popular(c.UserContext(), c.QueryInt("limit", 10))
		return common.LocalJSON(c, "Popular projects", ps, err)
	}
}

func SearchProjects(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ps, err := svc.Search(c.UserContext(), c.Query("q"))
		return common.LocalJSON(c, "Search results", ps, err)
	}
}

func CountProjects(svc *project.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := projectdomain.Status(c.Query("status", string(projectdomain.StatusActive)))
		n, err := svc.CountByStatus(c.UserContext(), status)
		return common.LocalJSON(c, "Project count", fiber.Map{"status": status, "count": n}, err)
	}
}

func ProjectsByCreator(svc *project.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		ps, err := svc.ByCreator(c.UserContext(), id)
		return common.LocalJSON(c, "Projects by creator", ps, err)
	})
}

func ListCategories(svc *category.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.List(c.UserContext())
		if err != nil {
			return common.ProblemDetailsJSON(c, err)
		}
		return common.ReadResponseJSON(c, "Categories", res)
	}
}

func GetCategory(svc *category.Service) fiber.Handler {
	return common.WithID(func(c *fiber.Ctx, id int64) error {
		cat, err := svc.Get(c.UserContext(), id)
		return common.LocalJSON(c, "Category", cat, err)
	})
}

func CategoryByName(svc *category.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, err := svc.ByName(c.UserContext(), c.Params("name"))
		return common.LocalJSON(c, "Category", cat, err)
	}
}
