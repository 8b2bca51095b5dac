package messaging

import (
	"context"

	"taskdeck/domain/ports"
)

// NoopEventPublisher ใช้ตอน NATS ไม่พร้อม - API ทำงานต่อได้ปกติ
// board ที่เปิดอยู่แค่ไม่ได้ live refresh
type NoopEventPublisher struct{}

func NewNoopEventPublisher() ports.EventPublisher {
	return &NoopEventPublisher{}
}

func (p *NoopEventPublisher) PublishBoardEvent(ctx context.Context, event ports.BoardEvent) error {
	return nil
}
