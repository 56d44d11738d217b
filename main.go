package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"

	"github.com/rajasunrise/inkwell/internal/config"
	"github.com/rajasunrise/inkwell/internal/database"
	"github.com/rajasunrise/inkwell/internal/handlers"
	"github.com/rajasunrise/inkwell/internal/middleware"
	"github.com/rajasunrise/inkwell/internal/repositories"
	"github.com/rajasunrise/inkwell/internal/services"
	"github.com/rajasunrise/inkwell/pkg/events"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Database ---
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Event publisher (optional) ---
	var publisher *events.Publisher
	if cfg.RabbitMQURL != "" {
		publisher, err = events.NewPublisher(events.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ publisher: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RABBITMQ_URL not set, event publishing disabled")
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	postRepo := repositories.NewGORMPostRepository(db)
	commentRepo := repositories.NewGORMCommentRepository(db)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.SessionSecret, cfg.BcryptCost)
	contentService := services.NewContentService(postRepo, commentRepo, publisher)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	pageHandler := handlers.NewPageHandler(contentService)
	postHandler := handlers.NewPostHandler(contentService)

	// --- Fiber app ---
	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{Views: engine})

	// --- Middleware ---
	app.Use(logger.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.LoadPrincipal(authService, userRepo))

	// --- Routes ---
	pageHandler.RegisterRoutes(app)
	authHandler.RegisterRoutes(app)
	postHandler.RegisterRoutes(app, middleware.AdminOnly())

	// --- Health check ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- Start HTTP server ---
	log.Printf("Starting server on port %s", cfg.AppPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}

	log.Println("Server gracefully stopped")
}
