package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/playmatatu/spinwheel/internal/ws"
)

// HandleWheelWebSocket streams frames, ticks and results of a session
func HandleWheelWebSocket() gin.HandlerFunc {
	return ws.HandleWebSocket
}
