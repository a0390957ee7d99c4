package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"shelterapi/internal/model"
	"shelterapi/internal/service"
)

// HealthCheck reports readiness: the database must answer a ping.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "dependency unavailable", nil)
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a plain liveness check.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// AdopterPets handles GET /adopters/:id/pets.
func AdopterPets(pets service.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "invalid id format", nil)
		}

		env, err := pets.ListByAdopter(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// UploadPetPhoto handles POST /pets/:id/photo (multipart/form-data, field
// name: file).
func UploadPetPhoto(pets service.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "invalid id format", nil)
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "file is required", nil)
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "cannot open uploaded file", nil)
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		env, err := pets.UploadPhoto(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// PetPhotoURL handles GET /pets/:id/photo.
func PetPhotoURL(pets service.PetService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "invalid id format", nil)
		}

		env, err := pets.PhotoURL(c.UserContext(), id)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /auth/login for admins.
func Login(admins service.AdminService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req loginRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "invalid request body", nil)
		}
		if req.Email == "" || req.Password == "" {
			return writeError(c, fiber.StatusBadRequest, "email and password are required", nil)
		}

		env, err := admins.Login(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return respondServiceError(c, err)
		}
		return c.Status(env.StatusCode).JSON(env)
	}
}

// Services bundles the per-entity services the HTTP layer exposes.
type Services struct {
	Shelters  service.CrudService[model.Shelter]
	Addresses service.CrudService[model.Address]
	Adopters  service.AdopterService
	Pets      service.PetService
	Admins    service.AdminService
}

// RegisterRoutes attaches every HTTP route to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svcs Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	RegisterResource(app, "/shelters", svcs.Shelters)
	RegisterResource(app, "/addresses", svcs.Addresses)
	RegisterResource[model.Adopter](app, "/adopters", svcs.Adopters)
	RegisterResource[model.Pet](app, "/pets", svcs.Pets)
	RegisterResource[model.Admin](app, "/admins", svcs.Admins)

	app.Get("/adopters/:id/pets", AdopterPets(svcs.Pets))
	app.Post("/pets/:id/photo", UploadPetPhoto(svcs.Pets))
	app.Get("/pets/:id/photo", PetPhotoURL(svcs.Pets))

	app.Post("/auth/login", Login(svcs.Admins))
}
