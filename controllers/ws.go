package controllers

import (
	"net/http"
	"strconv"

	"github.com/stakeroom/lobby-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict this in production to your domains
		return true
	},
}

// LobbyEvents subscribes a client to a lobby's event stream over WebSocket
func LobbyEvents(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lobby id"})
		return
	}

	// Reject unknown lobbies before upgrading
	if _, err := services.Ledger.IsCanceled(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "lobby not found"})
		return
	}

	identity := c.Query("identity")
	if identity == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing identity query param"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upgrade"})
		return
	}

	services.EventHub.Subscribe(id, identity, conn)
}
