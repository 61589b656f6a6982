package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/playmatatu/spinwheel/internal/game"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // origin is checked by middleware.WebSocketCORSCheck
	},
}

// Client represents a connected WebSocket watcher of one wheel session
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	id    string
	token string
	send  chan []byte
}

// Hub maintains the watchers of every session
type Hub struct {
	clients    map[string]*Client            // clientID -> Client
	rooms      map[string]map[string]*Client // session token -> clientID -> Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run serves register and unregister requests until the process exits
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.id] = client
			if _, exists := h.rooms[client.token]; !exists {
				h.rooms[client.token] = make(map[string]*Client)
			}
			h.rooms[client.token][client.id] = client
			size := len(h.rooms[client.token])
			h.mu.Unlock()
			log.Printf("[WS] Watcher %s joined session %s (room_size=%d)", client.id, client.token, size)

		case client := <-h.unregister:
			h.mu.Lock()
			if cur, ok := h.clients[client.id]; ok && cur == client {
				delete(h.clients, client.id)
				if room, exists := h.rooms[client.token]; exists {
					delete(room, client.id)
					if len(room) == 0 {
						delete(h.rooms, client.token)
					}
				}
				close(client.send)
				log.Printf("[WS] Watcher %s left session %s", client.id, client.token)
			}
			h.mu.Unlock()
		}
	}
}

// RoomSize returns the number of watchers of a session
func (h *Hub) RoomSize(token string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[token])
}

// BroadcastToSession sends a message to all watchers of a session
func (h *Hub) BroadcastToSession(token string, message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("[WS] Error marshaling message: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.rooms[token] {
		select {
		case client.send <- data:
		default:
			// Client's buffer is full
			log.Printf("[WS] Send buffer full for watcher %s in session %s, dropping message", client.id, token)
		}
	}
}

// Frame implements game.FrameSink
func (h *Hub) Frame(token string, f game.Frame) {
	h.BroadcastToSession(token, map[string]interface{}{"type": "frame", "frame": f})
}

// Tick implements game.FrameSink
func (h *Hub) Tick(token string, peg int) {
	h.BroadcastToSession(token, map[string]interface{}{"type": "tick", "peg": peg})
}

// Result implements game.FrameSink
func (h *Hub) Result(token string, r *game.SpinResult) {
	h.BroadcastToSession(token, map[string]interface{}{"type": "result", "result": r})
}

// WSMessage is a message sent by a watcher
type WSMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// writePump writes messages to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Printf("[WS] Write error for watcher %s: %v", c.id, err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Printf("[WS] Ping error for watcher %s: %v", c.id, err)
				return
			}
		}
	}
}

// sendJSON queues a message for this watcher only
func (c *Client) sendJSON(message interface{}) {
	data, err := json.Marshal(message)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
		log.Printf("[WS] Dropped direct message for watcher %s (buffer full)", c.id)
	}
}

// sendError sends an error message to the client
func (c *Client) sendError(message string) {
	c.sendJSON(map[string]interface{}{
		"type":    "error",
		"message": message,
	})
}
