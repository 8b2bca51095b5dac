package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"taskdeck/pkg/logger"
)

// SubjectBoardEvents คือ subject prefix ของ board events
// รูปแบบเต็ม: taskdeck.events.<projectID>
const SubjectBoardEvents = "taskdeck.events"

// Client wraps NATS connection
type Client struct {
	conn *nats.Conn
}

// ClientConfig configuration สำหรับ NATS Client
type ClientConfig struct {
	URL string // nats://localhost:4222
}

// NewClient สร้าง NATS Client
func NewClient(cfg ClientConfig) (*Client, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.MaxReconnects(-1), // Reconnect forever
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL)
	return &Client{conn: nc}, nil
}

// Conn คืน underlying connection
func (c *Client) Conn() *nats.Conn {
	return c.conn
}

// Close ปิด connection (drain ก่อนเพื่อให้ message ค้างถูกส่ง)
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
		return err
	}
	return nil
}
