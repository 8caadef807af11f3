package delivery

import (
	"net/http"

	authdelivery "minwon-backend/internal/auth/delivery"
	"minwon-backend/internal/user/repository"

	"github.com/gin-gonic/gin"
)

// TokenHandler handles device token registration HTTP requests.
type TokenHandler struct {
	tokens repository.TokenStore
}

// NewTokenHandler creates a new TokenHandler.
func NewTokenHandler(tokens repository.TokenStore) *TokenHandler {
	return &TokenHandler{
		tokens: tokens,
	}
}

// RegisterTokenRequest carries the device token to register.
type RegisterTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// Register adds a device token to the caller's set
// POST /api/fcm/register
func (h *TokenHandler) Register(c *gin.Context) {
	caller := authdelivery.IdentityFrom(c)

	var req RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.tokens.Register(c.Request.Context(), caller.UID, req.Token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Unregister removes a device token from the caller's set
// DELETE /api/fcm/:token
func (h *TokenHandler) Unregister(c *gin.Context) {
	caller := authdelivery.IdentityFrom(c)
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	if err := h.tokens.Unregister(c.Request.Context(), caller.UID, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unregister token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
