// Package http содержит компоненты HTTP API сервиса заметок.
package http

import (
	"github.com/gofiber/fiber/v3"

	"elevennote/internal/notes/adapters/http/middleware"
	"elevennote/internal/notes/adapters/http/notes"
	"elevennote/internal/notes/config"
	"elevennote/internal/notes/ports/services"
	"elevennote/pkg/logger"
)

// NewApp создает fiber-приложение с таймаутами из конфигурации.
func NewApp(cfg *config.HTTPConfig) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})
}

// SetupRouter настраивает маршрутизацию HTTP API.
func SetupRouter(
	app *fiber.App,
	cfg *config.HTTPConfig,
	log *logger.Logger,
	identity services.IdentityProvider,
	noteUseCase notes.NoteUseCase,
) {
	notesHandler := notes.NewHandler(noteUseCase)

	app.Use(middleware.NewLoggerMiddleware(log))
	app.Use(middleware.NewRecoveryMiddleware())
	app.Use(middleware.NewRateLimitMiddleware(cfg.RateLimit, cfg.RateBurst))

	app.Get("/healthz", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	apiV1 := app.Group("/api/v1")

	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(middleware.NewAuthMiddleware(identity))
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
