package handlers

import (
	"context"
	"log"
	"net/http"

	"chat-relay/internal/broadcast"
	"chat-relay/internal/ws"

	"github.com/gorilla/websocket"
)

// WSHandler upgrades observer connections and hands them to the registry
type WSHandler struct {
	registry *broadcast.Registry
	stats    ws.SnapshotSource
	upgrader websocket.Upgrader
	logger   *log.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewWSHandler creates a new websocket handler
func NewWSHandler(registry *broadcast.Registry, stats ws.SnapshotSource, logger *log.Logger) *WSHandler {
	ctx, cancel := context.WithCancel(context.Background())
	return &WSHandler{
		registry: registry,
		stats:    stats,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Observe godoc
// @Summary Observer channel
// @Description Upgrades to a websocket that receives a stats snapshot after every completed chat and every reset. Sending the text `get_stats` returns the current snapshot to this connection only.
// @Tags stats
// @Success 101 {object} models.StatsSnapshot
// @Router /ws [get]
func (h *WSHandler) Observe(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("Websocket upgrade failed: %v", err)
		return
	}

	ws.NewClient(conn, h.logger).Serve(h.ctx, h.registry, h.stats)
}

// CloseAll disconnects every observer served by this handler
func (h *WSHandler) CloseAll() {
	h.cancel()
}
