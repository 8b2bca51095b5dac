package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskdeck/interfaces/api/handlers"
	"taskdeck/interfaces/api/middleware"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers) {
	tasks := api.Group("/tasks", middleware.Protected(h.JWTSecret))

	tasks.Get("/project/:projectId", h.TaskHandler.ListByProject) // ?include_deleted=true รวม trash
	tasks.Post("/", h.TaskHandler.Create)

	tasks.Patch("/:id", h.TaskHandler.Update)          // field whitelist + snapshot ลง history
	tasks.Patch("/:id/status", h.TaskHandler.UpdateStatus)
	tasks.Patch("/:id/assign", h.TaskHandler.Assign)
	tasks.Delete("/:id", h.TaskHandler.Delete)         // soft delete ลง trash
	tasks.Delete("/:id/permanent", h.TaskHandler.PermanentDelete)
	tasks.Patch("/:id/restore", h.TaskHandler.Restore)
	tasks.Post("/:id/duplicate", h.TaskHandler.Duplicate)
	tasks.Post("/:id/undo", h.TaskHandler.Undo)        // ถอย field edit ล่าสุด

	// Subtasks ใต้ task
	tasks.Get("/:id/subtasks", h.SubtaskHandler.ListByTask)
	tasks.Post("/:id/subtasks", h.SubtaskHandler.Create)

	// Dependencies (directed edges)
	tasks.Get("/:id/dependencies", h.DependencyHandler.ListByTask)
	tasks.Post("/:id/dependencies", h.DependencyHandler.Add)
	tasks.Delete("/:id/dependencies/:depId", h.DependencyHandler.Remove)

	// Attachments ใต้ task
	tasks.Get("/:id/attachments", h.AttachmentHandler.ListByTask)
	tasks.Post("/:id/attachments", h.AttachmentHandler.Upload)
}
