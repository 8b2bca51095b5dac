package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskdeck/interfaces/api/handlers"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers) {
	SetupHealthRoutes(app)

	// API version group
	api := app.Group("/api/v1")

	SetupAuthRoutes(api, h)
	SetupProjectRoutes(api, h)
	SetupTaskRoutes(api, h)
	SetupSubtaskRoutes(api, h)
	SetupAttachmentRoutes(api, h)

	// WebSocket board feed (needs app, not api group)
	SetupWebSocketRoutes(app, h)
}
