package ws

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"chat-relay/internal/broadcast"
	"chat-relay/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second

	// CommandGetStats asks for a unicast of the current snapshot
	CommandGetStats = "get_stats"
)

// SnapshotSource provides the snapshot sent in reply to get_stats
type SnapshotSource interface {
	Snapshot() models.StatsSnapshot
}

// Client is one observer websocket connection.
// Reads happen only on the Serve goroutine; writes are serialized by writeMu.
type Client struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
	logger  *log.Logger
}

// NewClient wraps an upgraded connection
func NewClient(conn *websocket.Conn, logger *log.Logger) *Client {
	return &Client{
		id:     uuid.NewString(),
		conn:   conn,
		logger: logger,
	}
}

// ID returns the observer handle
func (c *Client) ID() string {
	return c.id
}

// Send writes one text frame
func (c *Client) Send(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

func (c *Client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// Serve registers the client, answers get_stats until the connection
// closes or ctx is done, then unregisters and closes the connection.
func (c *Client) Serve(ctx context.Context, registry *broadcast.Registry, stats SnapshotSource) {
	registry.Register(c)

	done := make(chan struct{})
	defer func() {
		close(done)
		registry.Unregister(c.id)
		c.conn.Close()
	}()

	go c.keepAlive(ctx, done)

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		msgType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Printf("Observer %s read error: %v", c.id, err)
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		if strings.TrimSpace(string(message)) == CommandGetStats {
			if err := registry.Unicast(c, stats.Snapshot()); err != nil {
				c.logger.Printf("Observer %s: %v", c.id, err)
				return
			}
		}
	}
}

// keepAlive pings the peer and closes the connection when ctx ends so the
// blocked reader returns.
func (c *Client) keepAlive(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			c.conn.Close()
			return
		case <-ticker.C:
			if err := c.ping(); err != nil {
				c.conn.Close()
				return
			}
		}
	}
}
