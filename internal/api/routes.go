package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/alexisbeaulieu97/calgrid/internal/logger"
)

// New builds the fiber app with middleware and every route registered.
func New(handler *Handler, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:               "calgrid",
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(log),
	})

	app.Use(recover.New())
	app.Use(RequestLogger(log))
	app.Use(compress.New())

	RegisterRoutes(app, handler)
	return app
}

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Get("/months/:month", handler.Months)
	api.Post("/resolve", handler.Resolve)

	calendars := api.Group("/calendars")
	calendars.Get("/", handler.ListCalendars)
	calendars.Get("/:name", handler.GetCalendar)
	calendars.Delete("/:name", handler.DeleteCalendar)
	calendars.Post("/:name/click", handler.Click)
}
