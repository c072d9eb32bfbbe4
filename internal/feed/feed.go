// Package feed pushes committed board states to connected socket.io
// clients, so frontends can render generations without polling the HTTP
// API.
package feed

import (
	"log/slog"
	"net/http"

	"github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/lifegrid/internal/board"
)

// Namespace is the socket.io namespace the feed lives under.
const Namespace = "/board"

// EventBoard is the event name carrying a full board payload.
const EventBoard = "board"

// Hub owns the socket.io server and fans every committed board snapshot out
// to all connected clients.
type Hub struct {
	io     *socket.Server
	logger *slog.Logger
}

// NewHub creates the socket.io server and registers connection handling for
// the board namespace.
func NewHub(logger *slog.Logger) *Hub {
	io := socket.NewServer(nil, nil)

	io.Of(Namespace, nil).On("connection", func(clients ...any) {
		client := clients[0].(*socket.Socket)
		logger.Debug("Feed client connected.", "sid", client.Id())
		client.On("disconnect", func(...any) {
			logger.Debug("Feed client disconnected.", "sid", client.Id())
		})
	})

	return &Hub{io: io, logger: logger}
}

// Handler returns the http.Handler to mount at /socket.io/.
func (h *Hub) Handler() http.Handler {
	return h.io.ServeHandler(nil)
}

// Broadcast sends a board snapshot to every client in the namespace. It is
// fire-and-forget: a failed emit is logged, never surfaced to the HTTP
// request that triggered it.
func (h *Hub) Broadcast(snap board.Snapshot) {
	payload := map[string]any{
		"board":   snap.Cells,
		"rows":    snap.Rows,
		"columns": snap.Columns,
		"p_live":  snap.LiveProbability,
	}
	if err := h.io.Of(Namespace, nil).Emit(EventBoard, payload); err != nil {
		h.logger.Warn("Failed to broadcast board state", "error", err)
	}
}

// Close tears down the socket.io server and disconnects all clients.
func (h *Hub) Close() {
	h.io.Close(nil)
}
