package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/spinwheel/internal/admin"
	"github.com/playmatatu/spinwheel/internal/game"
)

// SetPrizes replaces the prize table of a session
func SetPrizes(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Prizes    []game.Prize `json:"prizes" binding:"required"`
			UpdatedBy string       `json:"updated_by"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "prizes are required"})
			return
		}

		token := c.Param("token")
		err := game.Manager.SetPrizes(token, req.Prizes, req.UpdatedBy)
		admin.LogAdminAction(db, c.ClientIP(), c.FullPath(), "set_prizes", map[string]interface{}{
			"token":      token,
			"prizes":     len(req.Prizes),
			"updated_by": req.UpdatedBy,
		}, err == nil)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"prizes": req.Prizes})
	}
}

// GetPrizes returns the prize table of a live or persisted session
func GetPrizes() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Param("token")
		if s, err := game.Manager.GetSession(token); err == nil {
			c.JSON(http.StatusOK, gin.H{"prizes": s.View().Prizes, "live": true})
			return
		}

		table, prizes, err := game.Manager.LoadPrizeTable(token)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"prizes": prizes, "live": false, "updated_at": table.UpdatedAt})
	}
}

// GetAuditLogs lists recent admin actions
func GetAuditLogs(db *sqlx.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database not configured"})
			return
		}
		logs, err := admin.GetAdminAuditLogs(db, queryInt(c, "limit", 50, 1, 200), queryInt(c, "offset", 0, 0, 1<<30))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"logs": logs})
	}
}
