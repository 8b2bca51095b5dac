package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"taskdeck/interfaces/api/handlers"
)

// SetupWebSocketRoutes เปิด board feed ที่ /ws/board/:projectId
// client ได้รับ board event แล้วไป re-fetch task list เอง
func SetupWebSocketRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/board/:projectId", websocket.New(func(conn *websocket.Conn) {
		projectID, err := uuid.Parse(conn.Params("projectId"))
		if err != nil {
			conn.Close()
			return
		}

		hub := h.Hub
		hub.Register(projectID, conn)
		defer func() {
			hub.Unregister(projectID, conn)
			conn.Close()
		}()

		// read loop มีไว้จับ disconnect เท่านั้น client ไม่ส่งอะไรขึ้นมา
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
}
