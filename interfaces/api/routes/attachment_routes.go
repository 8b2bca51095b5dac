package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskdeck/interfaces/api/handlers"
	"taskdeck/interfaces/api/middleware"
)

func SetupAttachmentRoutes(api fiber.Router, h *handlers.Handlers) {
	attachments := api.Group("/attachments", middleware.Protected(h.JWTSecret))

	attachments.Get("/:id/download", h.AttachmentHandler.Download)
	attachments.Delete("/:id", h.AttachmentHandler.Delete)
}
