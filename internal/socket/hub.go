// server/internal/socket/hub.go
package socket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ShipmentEvent is pushed to dashboard clients when a shipment changes.
type ShipmentEvent struct {
	Type           string    `json:"type"` // status_changed, driver_assigned
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status,omitempty"`
	DriverID       string    `json:"driverID,omitempty"`
	At             time.Time `json:"at"`
}

// Hub tracks connected WebSocket clients, keyed by user ID.
type Hub struct {
	clients map[string]*websocket.Conn
	mu      sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[string]*websocket.Conn),
	}
}

// Register adds a client. A second connection for the same user replaces the
// first.
func (h *Hub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[userID] = conn
	log.Printf("WebSocket client registered: %s", userID)
}

// Unregister removes a client.
func (h *Hub) Unregister(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[userID]; ok {
		delete(h.clients, userID)
		log.Printf("WebSocket client unregistered: %s", userID)
	}
}

// Send delivers a message to one client. A missing client is not an error;
// it just means the user is offline.
func (h *Hub) Send(userID string, message []byte) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	conn, ok := h.clients[userID]
	if !ok {
		return nil
	}
	return conn.WriteMessage(websocket.TextMessage, message)
}

// Broadcast sends a shipment event to every connected client. Write failures
// are logged and skipped so one dead connection cannot block the rest.
func (h *Hub) Broadcast(event ShipmentEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal shipment event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for userID, conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Failed to push event to %s: %v", userID, err)
		}
	}
}
