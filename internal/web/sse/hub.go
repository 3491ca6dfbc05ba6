package sse

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/scoreboard/internal/model"
)

// Format selects the payload a client receives
type Format string

const (
	// FormatJSON streams board-update events carrying the API board JSON
	FormatJSON Format = "json"
	// FormatHTML streams scoreboard-update events carrying the rendered fragment
	FormatHTML Format = "html"
)

// Message is one event rendered in every client format
type Message struct {
	JSON []byte
	HTML []byte
}

func (m Message) forFormat(f Format) []byte {
	if f == FormatHTML {
		return m.HTML
	}
	return m.JSON
}

// Hub manages SSE clients for a single board
type Hub struct {
	boardCode model.BoardCode
	clients   map[*Client]bool
	mu        sync.RWMutex
	logger    *slog.Logger

	register   chan *Client
	unregister chan *Client
	broadcast  chan Message
	done       chan struct{}
	closeOnce  sync.Once
}

// NewHub creates a new Hub for a board
func NewHub(boardCode model.BoardCode, logger *slog.Logger) *Hub {
	return &Hub{
		boardCode:  boardCode,
		clients:    make(map[*Client]bool),
		logger:     logger.With(slog.String("board", string(boardCode))),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan Message, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	h.logger.Debug("sse hub started")
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			clientCount := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("sse client registered",
				slog.String("format", string(client.format)),
				slog.Int("total_clients", clientCount))

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				clientCount := len(h.clients)
				h.mu.Unlock()
				h.logger.Info("sse client unregistered",
					slog.Duration("connection_duration", time.Since(client.connectedAt)),
					slog.Int("total_clients", clientCount))
			} else {
				h.mu.Unlock()
			}

		case message := <-h.broadcast:
			h.deliver(message)

		case <-h.done:
			// Messages queued before Close still go out, so a final
			// board-deleted event reaches clients ahead of the disconnect.
			h.drain()
			h.mu.Lock()
			clientCount := len(h.clients)
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			h.mu.Unlock()
			h.logger.Debug("sse hub stopped", slog.Int("disconnected_clients", clientCount))
			return
		}
	}
}

// deliver hands a message to every client without blocking on slow ones
func (h *Hub) deliver(message Message) {
	h.mu.RLock()
	sentCount := 0
	droppedCount := 0
	for client := range h.clients {
		select {
		case client.send <- message.forFormat(client.format):
			sentCount++
		default:
			droppedCount++
		}
	}
	h.mu.RUnlock()
	if droppedCount > 0 {
		h.logger.Warn("sse broadcast partial failure",
			slog.Int("sent", sentCount),
			slog.Int("dropped", droppedCount))
	}
}

// drain delivers every message already queued for broadcast
func (h *Hub) drain() {
	for {
		select {
		case message := <-h.broadcast:
			h.deliver(message)
		default:
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

// Broadcast sends a message to all clients without blocking
func (h *Hub) Broadcast(message Message) {
	select {
	case h.broadcast <- message:
	default:
		h.logger.Warn("sse broadcast dropped - hub buffer full")
	}
}

// Close shuts down the hub, disconnecting every client once pending
// broadcasts have been delivered
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Done is closed once the hub has been shut down
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// formatSSEMessage formats an SSE message with a fresh id, an event name and data.
// Multi-line data gets a "data: " prefix on each line.
func formatSSEMessage(eventName, data string) []byte {
	return formatSSEMessageWithID(uuid.NewString(), eventName, data)
}

func formatSSEMessageWithID(id, eventName, data string) []byte {
	var b strings.Builder
	if id != "" {
		b.WriteString("id: " + id + "\n")
	}
	b.WriteString("event: " + eventName + "\n")
	for _, line := range splitLines(data) {
		b.WriteString("data: " + line + "\n")
	}
	b.WriteString("\n")
	return []byte(b.String())
}

// splitLines splits a string into lines, handling various line endings
func splitLines(s string) []string {
	var lines []string
	var current strings.Builder
	for _, r := range s {
		if r == '\n' {
			lines = append(lines, current.String())
			current.Reset()
		} else if r != '\r' {
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	if len(lines) == 0 {
		lines = append(lines, "")
	}
	return lines
}

// HubManager manages hubs for all boards
type HubManager struct {
	hubs   map[model.BoardCode]*Hub
	mu     sync.RWMutex
	logger *slog.Logger
}

// NewHubManager creates a new HubManager
func NewHubManager(logger *slog.Logger) *HubManager {
	return &HubManager{
		hubs:   make(map[model.BoardCode]*Hub),
		logger: logger.With(slog.String("component", "sse")),
	}
}

// GetOrCreateHub returns the hub for a board, creating one if it doesn't exist
func (m *HubManager) GetOrCreateHub(boardCode model.BoardCode) *Hub {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[boardCode]; ok {
		return hub
	}

	hub := NewHub(boardCode, m.logger)
	m.hubs[boardCode] = hub
	go hub.Run()
	return hub
}

// GetHub returns the hub for a board, or nil if it doesn't exist
func (m *HubManager) GetHub(boardCode model.BoardCode) *Hub {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hubs[boardCode]
}

// RemoveHub removes and closes a hub
func (m *HubManager) RemoveHub(boardCode model.BoardCode) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if hub, ok := m.hubs[boardCode]; ok {
		hub.Close()
		delete(m.hubs, boardCode)
		m.logger.Info("sse hub removed", slog.String("board", string(boardCode)))
	}
}

// CleanupEmptyHubs removes hubs with no clients
func (m *HubManager) CleanupEmptyHubs() {
	m.mu.Lock()
	defer m.mu.Unlock()

	removedCount := 0
	for code, hub := range m.hubs {
		if hub.ClientCount() == 0 {
			hub.Close()
			delete(m.hubs, code)
			removedCount++
		}
	}
	if removedCount > 0 {
		m.logger.Info("sse empty hubs cleaned up", slog.Int("removed", removedCount))
	}
}

// Close shuts down every hub
func (m *HubManager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for code, hub := range m.hubs {
		hub.Close()
		delete(m.hubs, code)
	}
}
