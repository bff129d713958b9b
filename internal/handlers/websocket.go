package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/nkozi444/CampusGo/internal/services"
)

// WebSocketHandler upgrades the connection and registers the client for
// role-scoped live updates. The subscription lives until the socket
// closes; switching users means a new socket with new claims.
func WebSocketHandler(hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		role := c.GetString("role")

		// Convert Gin's ResponseWriter to http.ResponseWriter
		services.HandleWebSocket(hub, c.Writer, c.Request, userID, role)
	}
}
