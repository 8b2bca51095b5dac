package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"taskdeck/domain/ports"
	natspkg "taskdeck/infrastructure/nats"
)

// NATSEventPublisher implements ports.EventPublisher บน NATS pub/sub
type NATSEventPublisher struct {
	conn *nats.Conn
}

func NewNATSEventPublisher(conn *nats.Conn) ports.EventPublisher {
	return &NATSEventPublisher{conn: conn}
}

func (p *NATSEventPublisher) PublishBoardEvent(ctx context.Context, event ports.BoardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal board event: %w", err)
	}

	subject := fmt.Sprintf("%s.%s", natspkg.SubjectBoardEvents, event.ProjectID)
	return p.conn.Publish(subject, data)
}
