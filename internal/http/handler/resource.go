package handler

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"shelterapi/internal/repository"
	"shelterapi/internal/service"
)

// Generic CRUD handlers. Each constructor binds one verb of one entity's
// resource to its service; RegisterResource wires the full set under a path
// prefix. Handlers stay free of business logic.

// parseID reads the :id route parameter as a numeric primary key.
func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// List handles GET /<entity> with page/limit and free-form equality filters.
func List[T any](svc service.CrudService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid page", nil)
		}
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid limit", nil)
		}

		filters := map[string]any{}
		for k, v := range c.Queries() {
			if k == "page" || k == "limit" {
				continue
			}
			filters[k] = v
		}

		env, err := svc.FindAll(c.UserContext(), filters, repository.PageQuery{Page: page, Limit: limit})
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// GetByID handles GET /<entity>/:id.
func GetByID[T any](svc service.CrudService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "invalid id format", nil)
		}

		env, err := svc.FindOne(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// Create handles POST /<entity>.
func Create[T any](svc service.CrudService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rec := new(T)
		if err := c.BodyParser(rec); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body", nil)
		}

		env, err := svc.Create(c.UserContext(), rec)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// Update handles PUT and PATCH /<entity>/:id with a partial body.
func Update[T any](svc service.CrudService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "invalid id format", nil)
		}

		patch := map[string]any{}
		if err := json.Unmarshal(c.Body(), &patch); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body", nil)
		}

		env, err := svc.Update(c.UserContext(), id, patch)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// Remove handles DELETE /<entity>/:id.
func Remove[T any](svc service.CrudService[T]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "invalid id format", nil)
		}

		env, err := svc.Remove(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// RegisterResource wires the generic CRUD handler set for one entity under
// the given path prefix.
func RegisterResource[T any](router fiber.Router, path string, svc service.CrudService[T]) {
	g := router.Group(path)
	g.Get("/", List(svc))
	g.Post("/", Create(svc))
	g.Get("/:id", GetByID(svc))
	g.Put("/:id", Update(svc))
	g.Patch("/:id", Update(svc))
	g.Delete("/:id", Remove(svc))
}
