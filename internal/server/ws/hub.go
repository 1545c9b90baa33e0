// Package ws streams synthetic benchmark snapshots to WebSocket clients.
// The hub periodically synthesizes a snapshot for every catalog entry and
// broadcasts the batch as one JSON text frame. No per-client state exists
// beyond the connection itself.
package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/energyinsights/backend/internal/catalog"
	"github.com/energyinsights/backend/internal/domain"
	"github.com/energyinsights/backend/internal/synth"
	"github.com/gorilla/websocket"
)

const (
	// writeWait is the maximum time to wait for a write to complete.
	writeWait = 10 * time.Second

	// pongWait is the maximum time to wait for a pong from the client.
	pongWait = 60 * time.Second

	// pingPeriod sends pings at this interval. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize is the maximum size of an incoming message.
	maxMessageSize = 512

	// sendBufferSize is the channel buffer for outgoing frames per client.
	sendBufferSize = 16
)

// upgrader configures the WebSocket upgrade parameters. Origins are not
// restricted, matching the permissive CORS policy of the HTTP surface.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client represents a single WebSocket connection.
type client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// frame is the JSON envelope broadcast to every client.
type frame struct {
	Type      string                   `json:"type"`
	Snapshots []domain.BenchmarkResult `json:"snapshots"`
	SentAt    string                   `json:"sent_at"`
}

// Hub manages the set of connected clients and broadcasts periodic snapshot
// batches to all of them.
type Hub struct {
	clients    map[*client]bool
	register   chan *client
	unregister chan *client
	synth      *synth.Synthesizer
	interval   time.Duration
	mu         sync.RWMutex
	logger     *slog.Logger
}

// NewHub creates a Hub that broadcasts a snapshot batch every interval.
func NewHub(s *synth.Synthesizer, interval time.Duration, logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*client]bool),
		register:   make(chan *client),
		unregister: make(chan *client),
		synth:      s,
		interval:   interval,
		logger:     logger,
	}
}

// Run starts the hub's event loop: client registration, unregistration, and
// the broadcast ticker. It blocks until the context is cancelled.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return ctx.Err()

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
			h.logger.Info("ws: client connected",
				slog.Int("total_clients", h.clientCount()),
			)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
			h.logger.Info("ws: client disconnected",
				slog.Int("total_clients", h.clientCount()),
			)

		case <-ticker.C:
			if h.clientCount() == 0 {
				continue
			}
			h.broadcastSnapshots()
		}
	}
}

// broadcastSnapshots synthesizes the full catalog batch and fans it out.
// Slow clients have the frame dropped rather than blocking the loop.
func (h *Hub) broadcastSnapshots() {
	data, err := h.snapshotFrame()
	if err != nil {
		h.logger.Error("ws: marshal snapshot frame failed",
			slog.String("error", err.Error()),
		)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.logger.Warn("ws: dropping frame for slow client")
		}
	}
}

// snapshotFrame builds the broadcast payload: one fresh snapshot per catalog
// entry, in catalog order.
func (h *Hub) snapshotFrame() ([]byte, error) {
	entries := catalog.All()
	snapshots := make([]domain.BenchmarkResult, 0, len(entries))
	for _, b := range entries {
		snapshots = append(snapshots, domain.BenchmarkResult{
			Benchmark: b,
			Snapshot:  h.synth.Snapshot(b.ID),
		})
	}

	return json.Marshal(frame{
		Type:      "snapshots",
		Snapshots: snapshots,
		SentAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

// HandleWS upgrades an HTTP request to a WebSocket connection and registers
// the client with the hub. The first snapshot batch is sent immediately so
// clients do not wait a full interval for data.
// GET /ws
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("ws: upgrade failed", slog.String("error", err.Error()))
		return
	}

	c := &client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBufferSize),
	}

	if data, err := h.snapshotFrame(); err == nil {
		c.send <- data
	}

	h.register <- c

	go c.writePump()
	go c.readPump()
}

// clientCount returns the number of currently connected clients.
func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// readPump drains the WebSocket connection. Clients send nothing meaningful;
// the pump exists to process control frames and detect disconnects.
func (c *client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("ws: unexpected close error",
					slog.String("error", err.Error()),
				)
			}
			return
		}
	}
}

// writePump pumps frames from the hub to the WebSocket connection and sends
// periodic ping frames for keepalive.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
