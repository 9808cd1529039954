package handler

import (
	"errors"
	"net/http"

	"quickchat/backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// loginRequest carries the nickname a client wants to chat under.
// 3-20 characters, letters and digits only.
type loginRequest struct {
	Nickname string `json:"nickname" binding:"required,alphanum,min=3,max=20"`
}

// Login creates an identity for an unused nickname and returns a time-boxed
// bearer token for the websocket handshake.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"message": "Invalid nickname. It must be 3-20 characters, letters and digits only.",
		})
		return
	}

	existing, err := h.Storage.FindUserByNickname(req.Nickname)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "A server error occurred."})
		return
	}
	if existing != nil {
		c.JSON(http.StatusConflict, gin.H{"message": "This nickname is already taken. Pick another one."})
		return
	}

	user, err := h.Storage.CreateUser(req.Nickname)
	if err != nil {
		// The unique index can still fire between the lookup and the insert.
		if errors.Is(err, storage.ErrNicknameTaken) {
			c.JSON(http.StatusConflict, gin.H{"message": "This nickname is already taken. Pick another one."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "A server error occurred."})
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Nickname)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"userId":   user.ID,
		"nickname": user.Nickname,
		"token":    token,
	})
}
