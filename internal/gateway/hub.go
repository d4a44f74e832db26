package gateway

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ktanaka/coderelay-go/internal/model"
)

// envelope is a queued broadcast; exclude suppresses delivery to the
// originator (used for code-updated echoes)
type envelope struct {
	payload []byte
	exclude *Client
}

// Hub fans messages out to every websocket client in a single room
type Hub struct {
	roomID  model.RoomID
	clients map[*Client]bool
	mu      sync.RWMutex
	logger  *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan envelope
	done       chan struct{}
}

// NewHub creates a new Hub for a room
func NewHub(roomID model.RoomID, logger *slog.Logger) *Hub {
	return &Hub{
		roomID:     roomID,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("room", string(roomID))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan envelope, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Info("room hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("hub client registered",
				slog.String("player_id", string(client.id)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("hub client unregistered",
					slog.String("player_id", string(client.id)),
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case env := <-h.broadcast:
			h.mu.RLock()
			dropped := 0
			for client := range h.clients {
				if client == env.exclude {
					continue
				}
				select {
				case client.send <- env.payload:
				default:
					dropped++
					h.logger.Warn("hub message dropped - client buffer full",
						slog.String("player_id", string(client.id)))
				}
			}
			h.mu.RUnlock()
			if dropped > 0 {
				h.logger.Warn("hub broadcast partial failure", slog.Int("dropped", dropped))
			}

		case <-h.done:
			h.mu.Lock()
			clientCount := len(h.clients)
			h.clients = make(map[*Client]bool)
			h.mu.Unlock()
			h.logger.Info("room hub stopped", slog.Int("remaining_clients", clientCount))
			return
		}
	}
}

// Register adds a client to the hub
func (h *Hub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

// Unregister removes a client from the hub
func (h *Hub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Broadcast queues a message for every client except exclude (which may
// be nil)
func (h *Hub) Broadcast(payload []byte, exclude *Client) {
	select {
	case h.broadcast <- envelope{payload: payload, exclude: exclude}:
	default:
		h.logger.Warn("hub broadcast dropped - hub buffer full")
	}
}

// Close shuts down the hub
func (h *Hub) Close() {
	close(h.done)
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// HubManager manages hubs for all rooms
type HubManager struct {
	hubs   map[model.RoomID]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.RoomID]*Hub),
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// GetOrCreateHub returns the hub for a room, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(roomID model.RoomID) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roomID]; ok {
		return hub
	}

	hub := NewHub(roomID, m.logger)
	m.hubs[roomID] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a room, or nil if it doesn't exist
func (m *HubManager) GetHub(roomID model.RoomID) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[roomID]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(roomID model.RoomID) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[roomID]; ok {
		hub.Close()
		delete(m.hubs, roomID)
		m.logger.Info("room hub removed", slog.String("room", string(roomID)))
	}
}

// CloseAll shuts down every hub; used on shutdown
func (m *HubManager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, id)
	}
}
