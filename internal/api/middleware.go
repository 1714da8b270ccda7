package api

import (
	"time"

	"blog_analyzer/src/logger"

	"github.com/gin-gonic/gin"
)

// requestLogger logs one line per request through zerolog
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		log := logger.With("http")
		event := log.Info()
		if c.Writer.Status() >= 500 {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("HTTP request")
	}
}

// recovery turns panics into a 500 response
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log := logger.With("http")
		log.Error().Interface("panic", recovered).Str("path", c.Request.URL.Path).Msg("❌ Panic recovered")
		c.AbortWithStatusJSON(500, gin.H{"detail": "Internal server error"})
	})
}
