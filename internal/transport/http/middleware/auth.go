package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/minimax/pkg/auth"
	"github.com/iamasit07/4-in-a-row/minimax/pkg/httputil"
)

const ClientIDKey = "client_id"

// AuthMiddleware requires a valid API token when secret is set. With an
// empty secret the API is open and every request passes.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		tokenString, err := httputil.GetTokenFromRequest(c.Request)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		claims, err := auth.ValidateAPIToken(secret, tokenString)
		if err != nil {
			log.Debug().Err(err).Str("component", "auth").Msg("rejected API token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(ClientIDKey, claims.ClientID)
		c.Next()
	}
}
