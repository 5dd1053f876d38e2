package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kindredapp/kindred-backend/internal/logger"
)

// ServiceAuthMiddleware guards the internal vectorization routes with a
// static shared secret. These routes are called service-to-service by the
// product backend, not by end users.
type ServiceAuthMiddleware struct {
	log   *logger.Logger
	token string
}

func NewServiceAuthMiddleware(log *logger.Logger, token string) *ServiceAuthMiddleware {
	middlewareLog := log.With("middleware", "ServiceAuthMiddleware")
	return &ServiceAuthMiddleware{log: middlewareLog, token: token}
}

func (am *ServiceAuthMiddleware) RequireServiceToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if am.token == "" {
			am.log.Warn("SERVICE_TOKEN not set, rejecting internal request")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "service auth not configured"})
			return
		}
		provided := extractBearer(c)
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(am.token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ""
}
