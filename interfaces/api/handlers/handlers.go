package handlers

import (
	"taskdeck/domain/services"
	ws "taskdeck/infrastructure/websocket"
)

// Services contains all the services needed for handlers
type Services struct {
	ProjectService    services.ProjectService
	TaskService       services.TaskService
	SubtaskService    services.SubtaskService
	DependencyService services.DependencyService
	AttachmentService services.AttachmentService
	ExportService     services.ExportService
	UserService       services.UserService
	Hub               *ws.Hub
	JWTSecret         string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	ProjectHandler    *ProjectHandler
	TaskHandler       *TaskHandler
	SubtaskHandler    *SubtaskHandler
	DependencyHandler *DependencyHandler
	AttachmentHandler *AttachmentHandler
	ExportHandler     *ExportHandler
	AuthHandler       *AuthHandler
	Hub               *ws.Hub
	JWTSecret         string
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		ProjectHandler:    NewProjectHandler(services.ProjectService),
		TaskHandler:       NewTaskHandler(services.TaskService),
		SubtaskHandler:    NewSubtaskHandler(services.SubtaskService),
		DependencyHandler: NewDependencyHandler(services.DependencyService),
		AttachmentHandler: NewAttachmentHandler(services.AttachmentService),
		ExportHandler:     NewExportHandler(services.ExportService),
		AuthHandler:       NewAuthHandler(services.UserService),
		Hub:               services.Hub,
		JWTSecret:         services.JWTSecret,
	}
}
