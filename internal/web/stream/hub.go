// Package stream fans game events out to connected browsers and clients.
// Transports (SSE, WebSocket) register a Client with the Hub of the game
// they are watching and drain its Messages.
package stream

import (
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/minefield/internal/model"
)

const (
	broadcastBufferSize = 256

	// How long Broadcast waits for room in a full queue
	defaultBroadcastTimeout = 5 * time.Second
)

// Message is one event ready to send, pre-rendered for every transport
type Message struct {
	Name string // Event name, e.g. "tiles_changed"
	JSON []byte // Encoded model.Event
	HTML string // Out of band swap fragment, may be empty
}

// Hub manages the clients watching a single game
type Hub struct {
	gameID  model.GameID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	// Channels for managing clients
	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	done       chan struct{}
	closeOnce  sync.Once

	broadcastTimeout time.Duration
}

// NewHub creates a new Hub for a game
func NewHub(gameID model.GameID, logger *slog.Logger) *Hub {
	return &Hub{
		gameID:     gameID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("game_id", string(gameID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, broadcastBufferSize),
		done:       make(chan struct{}),

		broadcastTimeout: defaultBroadcastTimeout,
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("stream hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("stream client registered",
				slog.String("client_id", client.id),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("stream client unregistered",
					slog.String("client_id", client.id),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.mu.RLock()
			sentCount := 0
			droppedCount := 0
			for client := range h.clients {
				select {
				case client.send <- message:
					sentCount++
				default:
					droppedCount++
					h.logger.Warn("stream message dropped - client buffer full",
						slog.String("client_id", client.id))
				}
			}
			h.mu.RUnlock()
			if droppedCount > 0 {
				h.logger.Warn("stream broadcast partial failure",
					slog.Int("sent", sentCount),
					slog.Int("dropped", droppedCount))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Info("stream hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub. It returns false if the hub is closed.
func (h *Hub) Register(client *Client) bool {
	select {
	case h.register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a message for all clients, in order. When the queue is full it
// waits up to broadcastTimeout for the hub to catch up. It returns false if the
// message was dropped because the hub is closed or stayed full.
func (h *Hub) Broadcast(message Message) bool {
	select {
	case h.broadcast <- message:
		return true
	default:
	}

	timer := time.NewTimer(h.broadcastTimeout)
	defer timer.Stop()

	select {
	case h.broadcast <- message:
		return true
	case <-h.done:
		return false
	case <-timer.C:
		h.logger.Warn("stream broadcast dropped - hub buffer full",
			slog.String("event", message.Name))
		return false
	}
}

// Close shuts down the hub, disconnecting every client
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// GameID returns the game the hub serves
func (h *Hub) GameID() model.GameID {
	return h.gameID
}
