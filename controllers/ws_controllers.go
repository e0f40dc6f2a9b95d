package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/naratipk/resto-pin-backend/events"
	"github.com/naratipk/resto-pin-backend/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Sesuaikan dengan kebutuhan keamanan
	},
}

type WSController struct {
	Hub *events.Hub
}

func NewWSController(hub *events.Hub) *WSController {
	return &WSController{Hub: hub}
}

// Handle -> endpoint WebSocket untuk live update dashboard
func (wc *WSController) Handle(c *gin.Context) {
	roleInterface, exists := c.Get("role")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	role := roleInterface.(string)

	if role != "staff" && role != "admin" {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	wc.Hub.Register(ws, role)
	utils.InfoLogger.Printf("WebSocket client connected (role=%s)", role)

	// Baca pesan hanya untuk mendeteksi disconnect
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	wc.Hub.Unregister(ws)
	utils.InfoLogger.Printf("WebSocket client disconnected (role=%s)", role)
}
