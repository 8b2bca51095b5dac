package nats

import (
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"taskdeck/domain/ports"
	"taskdeck/pkg/logger"
)

// BoardEventHandler callback เมื่อได้รับ board event
type BoardEventHandler func(event *ports.BoardEvent)

// Subscriber subscribe board events สำหรับ broadcast ต่อไปยัง websocket
type Subscriber struct {
	conn       *nats.Conn
	sub        *nats.Subscription
	handlers   []BoardEventHandler
	handlersMu sync.RWMutex
	running    bool
	runningMu  sync.Mutex
}

func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{
		conn:     conn,
		handlers: make([]BoardEventHandler, 0),
	}
}

// OnBoardEvent ลงทะเบียน handler
func (s *Subscriber) OnBoardEvent(handler BoardEventHandler) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()
	s.handlers = append(s.handlers, handler)
}

// Start เริ่ม subscribe taskdeck.events.> (ทุก project)
func (s *Subscriber) Start() error {
	s.runningMu.Lock()
	if s.running {
		s.runningMu.Unlock()
		return nil
	}
	s.running = true
	s.runningMu.Unlock()

	sub, err := s.conn.Subscribe(SubjectBoardEvents+".>", s.handleMessage)
	if err != nil {
		return err
	}
	s.sub = sub

	logger.Info("NATS subscriber started", "subject", SubjectBoardEvents+".>")
	return nil
}

// Stop หยุด subscribe
func (s *Subscriber) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}
	if s.sub != nil {
		s.sub.Unsubscribe()
		s.sub = nil
	}
	s.running = false
	logger.Info("NATS subscriber stopped")
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	var event ports.BoardEvent
	if err := json.Unmarshal(msg.Data, &event); err != nil {
		logger.Warn("Failed to unmarshal board event", "subject", msg.Subject, "error", err)
		return
	}

	s.handlersMu.RLock()
	handlers := make([]BoardEventHandler, len(s.handlers))
	copy(handlers, s.handlers)
	s.handlersMu.RUnlock()

	for _, handler := range handlers {
		handler(&event)
	}
}
