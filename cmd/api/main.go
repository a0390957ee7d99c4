package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"shelterapi/internal/config"
	"shelterapi/internal/database"
	"shelterapi/internal/database/migration"
	handlers "shelterapi/internal/http/handler"
	"shelterapi/internal/http/middleware"
	"shelterapi/internal/otel"
	"shelterapi/internal/repository/postgres"
	"shelterapi/internal/service"
	"shelterapi/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	loc := time.UTC

	// Initialize OTLP tracing (no-op when OTEL_TRACES_ENABLED is unset)
	shutdown, err := otel.Init(context.Background(), loc)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdown(ctx)
	}()

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	// Create the schema on first boot
	if err := migration.EnsureMigrated(context.Background(), db, loc, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Initialize repositories and services
	shelterRepo := postgres.NewShelterPostgres(db)
	addressRepo := postgres.NewAddressPostgres(db)
	adopterRepo := postgres.NewAdopterPostgres(db)
	petRepo := postgres.NewPetPostgres(db)
	adminRepo := postgres.NewAdminPostgres(db)

	svcs := handlers.Services{
		Shelters:  service.NewShelterService(shelterRepo, cfg.BcryptCost),
		Addresses: service.NewAddressService(addressRepo, cfg.BcryptCost),
		Adopters:  service.NewAdopterService(adopterRepo, petRepo, cfg.BcryptCost),
		Pets:      service.NewPetService(petRepo, objStore, cfg.BcryptCost),
		Admins:    service.NewAdminService(adminRepo, cfg.BcryptCost),
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	promMw, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to initialize prometheus middleware: %v", err)
	}
	app.Use(promMw.Handler())

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, svcs)

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
