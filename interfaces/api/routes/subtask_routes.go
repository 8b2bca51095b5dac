package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskdeck/interfaces/api/handlers"
	"taskdeck/interfaces/api/middleware"
)

func SetupSubtaskRoutes(api fiber.Router, h *handlers.Handlers) {
	subtasks := api.Group("/subtasks", middleware.Protected(h.JWTSecret))

	subtasks.Patch("/:id", h.SubtaskHandler.Update)
	subtasks.Delete("/:id", h.SubtaskHandler.Delete)
}
