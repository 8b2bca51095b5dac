package websocket

import (
	"encoding/json"
	"sync"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"

	"taskdeck/pkg/logger"
)

// Hub จัดการ websocket connections แยกห้องตาม project
type Hub struct {
	rooms map[uuid.UUID]map[*websocket.Conn]bool
	mu    sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uuid.UUID]map[*websocket.Conn]bool),
	}
}

// Register เพิ่ม connection เข้าห้องของ project
func (h *Hub) Register(projectID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[projectID] == nil {
		h.rooms[projectID] = make(map[*websocket.Conn]bool)
	}
	h.rooms[projectID][conn] = true
	logger.Debug("Board client connected", "project_id", projectID)
}

// Unregister ถอด connection ออกจากห้อง
func (h *Hub) Unregister(projectID uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if clients, ok := h.rooms[projectID]; ok {
		delete(clients, conn)
		if len(clients) == 0 {
			delete(h.rooms, projectID)
		}
	}
	logger.Debug("Board client disconnected", "project_id", projectID)
}

// BroadcastToProject ส่ง payload (JSON) ให้ทุก connection ในห้อง
func (h *Hub) BroadcastToProject(projectID uuid.UUID, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warn("Failed to marshal broadcast payload", "error", err)
		return
	}

	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.rooms[projectID]))
	for conn := range h.rooms[projectID] {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			// connection ตายแล้ว ปล่อยให้ read loop ฝั่ง handler unregister เอง
			logger.Debug("Failed to write to board client", "project_id", projectID, "error", err)
		}
	}
}
