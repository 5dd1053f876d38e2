package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/kindredapp/kindred-backend/internal/handlers"
	"github.com/kindredapp/kindred-backend/internal/middleware"
)

type RouterConfig struct {
	VectorizationHandler *handlers.VectorizationHandler
	ServiceAuth          *middleware.ServiceAuthMiddleware
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("kindred-vectorization"))

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)

	// Internal (service-to-service): vectorization triggers and the
	// similarity read used by match ranking.
	internal := router.Group("/internal")
	internal.Use(cfg.ServiceAuth.RequireServiceToken())
	internal.POST("/vectorize/batch", cfg.VectorizationHandler.VectorizeBatch)
	internal.POST("/vectorize/:userID", cfg.VectorizationHandler.Vectorize)
	internal.GET("/similarity/:userA/:userB", cfg.VectorizationHandler.Similarity)

	return router
}
