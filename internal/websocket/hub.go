package websocket

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/chowanza/gestion-de-activos-imgc-sub000/internal/models"
)

// InvalidationEvent tells connected frontends which cached view to drop.
// It is broadcast right after a successful mutation instead of having
// clients re-fetch on a timer.
type InvalidationEvent struct {
	Type          string               `json:"type"` // always "invalidate"
	EquipmentKind models.EquipmentKind `json:"equipmentKind"`
	EquipmentID   uint                 `json:"equipmentId"`
}

// Hub maintains the set of subscribed clients and broadcasts invalidation
// events to all of them
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte

	mu sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Printf("🔌 Client subscribed (%d active)", h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Buffer full or client dead; dropped on the next read error
				}
			}
			h.mu.RUnlock()
		}
	}
}

// clientCount returns the number of connected clients
func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// EquipmentChanged implements lifecycle.Notifier: it fans an invalidation
// event out to every subscriber
func (h *Hub) EquipmentChanged(kind models.EquipmentKind, id uint) {
	event := InvalidationEvent{
		Type:          "invalidate",
		EquipmentKind: kind,
		EquipmentID:   id,
	}

	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling invalidation event: %v", err)
		return
	}

	select {
	case h.broadcast <- msg:
	default:
		// Queue full; the frontend keeps its last-known-good view
	}
}
