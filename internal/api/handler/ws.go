package handler

import (
	"net/http"
	"strings"

	"quickchat/backend/internal/chathub"
	"quickchat/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The browser client is served from a different origin in development.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket authenticates the handshake and promotes the transport to a
// live connection. Every failure path ends here; a socket with a missing,
// invalid or banned credential is never upgraded and never reaches the hub.
func (h *Handler) ServeWebSocket(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
		return
	}

	claims, err := h.Tokens.Verify(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
		return
	}

	banned, err := h.Storage.IsUserBanned(claims.Nickname)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to check ban status"})
		return
	}
	if banned {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "This nickname is banned"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written its own error response.
		return
	}

	user := models.UserDTO{ID: claims.UserID, Nickname: claims.Nickname}
	client := chathub.NewWebSocketClient(h.Hub, user, conn)

	h.Hub.RegisterCh <- client
	client.Run()
}

// bearerToken pulls the credential from the Authorization header, falling
// back to the token query parameter for browser websocket clients that
// cannot set headers on the upgrade request.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}
