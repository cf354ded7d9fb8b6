package websocket

import (
	"encoding/json"
	"log"
	"sync"
)

// Event is a board update pushed to connected dashboards: an order
// changed stage, an order was split, or a reconciliation run finished.
type Event struct {
	Type    string      `json:"type"` // ORDER_PROGRESS | ORDER_SPLIT | SYNC_COMPLETE
	Payload interface{} `json:"payload,omitempty"`
}

// Hub maintains the set of connected dashboard clients and fans
// board events out to all of them.
type Hub struct {
	clients map[*Client]bool

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
			log.Printf("🖥️  Dashboard connected (%d active)", h.clientCount())

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Printf("📴 Dashboard disconnected (%d active)", h.clientCount())

		case message := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Slow client, drop the frame rather than block the hub
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) clientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends an event to every connected dashboard.
func (h *Hub) Broadcast(event Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Error marshaling ws event: %v", err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Println("⚠️  WS broadcast queue full, event dropped")
	}
}
