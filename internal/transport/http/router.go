package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamasit07/4-in-a-row/minimax/internal/config"
	"github.com/iamasit07/4-in-a-row/minimax/internal/service/analysis"
	"github.com/iamasit07/4-in-a-row/minimax/internal/transport/http/middleware"
	"github.com/iamasit07/4-in-a-row/minimax/internal/transport/websocket"
)

// NewRouter wires every route of the analysis API onto a fresh gin engine.
func NewRouter(cfg *config.Config, svc *analysis.Service) *gin.Engine {
	analysisHandler := NewAnalysisHandler(svc)
	tokenHandler := NewTokenHandler(cfg.JWTSecret, cfg.AdminKey, cfg.APITokenTTL)
	wsHandler := websocket.NewHandler(svc, cfg.AllowedOrigins)

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	authMW := middleware.AuthMiddleware(cfg.JWTSecret)

	// Public
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/api/strategies", analysisHandler.Strategies)
	router.POST("/api/token", tokenHandler.Issue)

	// Protected when JWT_SECRET is set
	protected := router.Group("/")
	protected.Use(authMW)
	{
		protected.POST("/api/move", analysisHandler.Move)
		protected.GET("/ws/analyze", wsHandler.HandleWebSocket)
	}

	return router
}
