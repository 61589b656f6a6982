package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/spinwheel/internal/config"
	"github.com/playmatatu/spinwheel/internal/game"
	"github.com/playmatatu/spinwheel/internal/ws"
)

// CreateWheel starts a session with the default or the posted prize table
func CreateWheel(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Prizes []game.Prize `json:"prizes"`
		}
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
				return
			}
		}

		s, err := game.Manager.CreateSession(req.Prizes)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Header("X-Session-Token", s.Token)
		c.JSON(http.StatusCreated, gin.H{"session": s.View()})
	}
}

// GetWheel returns the session state. Sessions held by another instance
// are answered from the cached last result.
func GetWheel() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")

		if s, err := game.Manager.GetSession(token); err == nil {
			c.JSON(http.StatusOK, gin.H{"session": s.View(), "live": true})
			return
		}

		last, err := game.Manager.LastResult(c.Request.Context(), token)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "last_result": last, "live": false})
	}
}

// SpinWheel spins a session. Live spins are streamed over the session's
// websocket and answered with 202 right away.
func SpinWheel(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Velocity *float64 `json:"velocity"`
			Live     bool     `json:"live"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Velocity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "velocity is required"})
			return
		}

		token := c.Param("token")
		if req.Live {
			applied, err := game.Manager.SpinLive(context.Background(), token, *req.Velocity, ws.SessionHub)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusAccepted, gin.H{"applied_velocity": applied, "live": true})
			return
		}

		result, err := game.Manager.Spin(c.Request.Context(), token, *req.Velocity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"result": result})
	}
}

// GetSpinHistory lists the persisted spins of a session
func GetSpinHistory() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := queryInt(c, "limit", 20, 1, 100)
		spins, err := game.Manager.SpinHistory(c.Param("token"), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"spins": spins})
	}
}

// EndWheel disposes a session
func EndWheel() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := game.Manager.EndSession(c.Param("token")); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// VerifyReceipt checks a receipt issued with a spin result
func VerifyReceipt(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Receipt string `json:"receipt" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "receipt is required"})
			return
		}

		claims, err := game.VerifyReceipt(cfg.ReceiptSecret, req.Receipt)
		if errors.Is(err, game.ErrInvalidReceipt) {
			c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "claims": claims})
	}
}
