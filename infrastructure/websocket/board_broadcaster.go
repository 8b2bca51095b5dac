package websocket

import (
	"taskdeck/domain/ports"
	natspkg "taskdeck/infrastructure/nats"
	"taskdeck/pkg/logger"
)

// BoardBroadcaster ต่อ NATS board events เข้า websocket rooms
// board ที่เปิดอยู่ได้รับสัญญาณแล้วไป re-fetch list เอง (event ไม่ carry ข้อมูล task)
type BoardBroadcaster struct {
	subscriber *natspkg.Subscriber
	hub        *Hub
}

func NewBoardBroadcaster(subscriber *natspkg.Subscriber, hub *Hub) *BoardBroadcaster {
	return &BoardBroadcaster{
		subscriber: subscriber,
		hub:        hub,
	}
}

// Start ลงทะเบียน handler แล้วเริ่ม subscribe
func (b *BoardBroadcaster) Start() error {
	b.subscriber.OnBoardEvent(func(event *ports.BoardEvent) {
		b.hub.BroadcastToProject(event.ProjectID, event)
	})

	if err := b.subscriber.Start(); err != nil {
		return err
	}

	logger.Info("Board broadcaster started (NATS → WebSocket)")
	return nil
}

// Stop หยุด subscribe
func (b *BoardBroadcaster) Stop() {
	b.subscriber.Stop()
}

// Hub คืน hub สำหรับ websocket route handler
func (b *BoardBroadcaster) Hub() *Hub {
	return b.hub
}
