package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nexauth/digestgate/service"
)

// SetupRouter sets up the Gin router
func SetupRouter(verifier *service.VerifierService, challenger *service.ChallengeService) *gin.Engine {
	router := gin.Default()

	handlers := NewHandlers()

	router.GET("/healthz", handlers.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Protected API routes
	api := router.Group("/api")
	api.Use(DigestAuthMiddleware(verifier, challenger))
	api.Use(RequireIdentity(challenger))
	{
		api.GET("/me", handlers.Me)
		api.GET("/authorize", handlers.Authorize)
	}

	return router
}
