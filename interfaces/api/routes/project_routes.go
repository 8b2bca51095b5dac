package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskdeck/interfaces/api/handlers"
	"taskdeck/interfaces/api/middleware"
)

func SetupProjectRoutes(api fiber.Router, h *handlers.Handlers) {
	projects := api.Group("/projects", middleware.Protected(h.JWTSecret))

	projects.Get("/", h.ProjectHandler.List)                        // ?include_deleted=true รวม trash
	projects.Post("/", h.ProjectHandler.Create)
	projects.Get("/:id", h.ProjectHandler.GetByID)
	projects.Patch("/:id", h.ProjectHandler.Update)
	projects.Delete("/:id", h.ProjectHandler.Delete)                // soft delete + cascade
	projects.Delete("/:id/permanent", h.ProjectHandler.PermanentDelete)
	projects.Patch("/:id/restore", h.ProjectHandler.Restore)
	projects.Get("/:id/export", h.ExportHandler.ExportTasks)        // xlsx ของ active tasks
}
