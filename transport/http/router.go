package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hannesgao/docgate/service"
)

// SetupRouter sets up the Gin router for the access gate.
func SetupRouter(gate *service.AccessGate, log *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	handlers := NewGateHandlers(gate, log)

	auth := router.Group("/auth")
	{
		auth.POST("/challenge", handlers.Challenge)
		auth.POST("/login", handlers.Login)
	}

	// Protected content. The document ID is the remaining path, so nested
	// IDs like guides/getting-started work.
	router.GET("/docs/*id", handlers.FetchDocument)

	router.GET("/healthz", handlers.Healthz)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return router
}
