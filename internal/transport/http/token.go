package http

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/pkg/auth"
)

// TokenHandler issues API tokens to callers holding the admin key.
type TokenHandler struct {
	Secret   string
	AdminKey string
	TTL      time.Duration
}

func NewTokenHandler(secret, adminKey string, ttl time.Duration) *TokenHandler {
	return &TokenHandler{Secret: secret, AdminKey: adminKey, TTL: ttl}
}

func (h *TokenHandler) Issue(c *gin.Context) {
	var req struct {
		ClientID string `json:"clientId"`
		AdminKey string `json:"adminKey"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	req.ClientID = strings.TrimSpace(req.ClientID)
	if req.ClientID == "" || len(req.ClientID) > 64 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "clientId must be between 1 and 64 characters"})
		return
	}

	if h.Secret == "" || h.AdminKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Token issuing is disabled"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.AdminKey), []byte(h.AdminKey)) != 1 {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid admin key"})
		return
	}

	token, err := auth.GenerateAPIToken(h.Secret, req.ClientID, h.TTL)
	if err != nil {
		log.Error().Err(err).Str("component", "auth").Msg("failed to sign API token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": time.Now().Add(h.TTL).UTC(),
	})
}
