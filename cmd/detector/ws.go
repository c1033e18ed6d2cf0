// cmd/detector/ws.go
package main

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// wsHub fans analysis events out to connected dashboard pages
type wsHub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.Mutex
	upgrader websocket.Upgrader
}

// wsEvent is the envelope pushed to websocket clients
type wsEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
	Time time.Time   `json:"time"`
}

// newWSHub creates a websocket hub
func newWSHub() *wsHub {
	return &wsHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// handleWebsocket upgrades the connection and keeps it registered until
// the client goes away. Incoming messages are drained and ignored.
func (h *wsHub) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		Logger().Warning("Websocket upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends an event to every connected client
func (h *wsHub) Broadcast(eventType string, data interface{}) {
	event := wsEvent{Type: eventType, Data: data, Time: time.Now()}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// ClientCount returns the number of connected clients
func (h *wsHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
