package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/spinwheel/internal/game"
)

// SpinData is the payload of a "spin" message
type SpinData struct {
	Velocity float64 `json:"velocity"`
}

// SessionHub is the single hub for all wheel sessions.
var SessionHub *Hub

func init() {
	SessionHub = NewHub()
	go SessionHub.Run()
}

var clientSeq atomic.Int64

func nextClientID() string {
	return "watcher_" + strconv.FormatInt(clientSeq.Add(1), 10)
}

// HandleWebSocket upgrades a watcher of /wheel/:token/ws.
func HandleWebSocket(c *gin.Context) {
	token := c.Param("token")

	s, err := game.Manager.GetSession(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:   SessionHub,
		conn:  conn,
		id:    nextClientID(),
		token: token,
		send:  make(chan []byte, 256),
	}

	SessionHub.register <- client
	client.sendJSON(map[string]interface{}{"type": "session", "session": s.View()})

	go client.writePump()
	go client.readPump()
}

// readPump reads watcher messages until the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(4096)
	c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] Unexpected close for watcher %s: %v", c.id, err)
			}
			break
		}

		var msg WSMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			c.sendError("invalid message")
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "spin":
		var data SpinData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError("invalid spin data")
			return
		}
		applied, err := game.Manager.SpinLive(context.Background(), c.token, data.Velocity, c.hub)
		if err != nil {
			switch {
			case errors.Is(err, game.ErrSpinInProgress):
				c.sendError("spin in progress")
			case errors.Is(err, game.ErrSessionNotFound):
				c.sendError("session not found")
			default:
				c.sendError("spin failed")
			}
			return
		}
		c.hub.BroadcastToSession(c.token, map[string]interface{}{
			"type":             "spin_started",
			"applied_velocity": applied,
			"by":               c.id,
		})

	case "state":
		s, err := game.Manager.GetSession(c.token)
		if err != nil {
			c.sendError("session not found")
			return
		}
		c.sendJSON(map[string]interface{}{"type": "session", "session": s.View()})

	default:
		c.sendError("unknown message type")
	}
}
