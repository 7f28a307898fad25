package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/travel-story-api/pkg/metrics"
)

// Metrics records request count, latency and in-flight requests per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		done := metrics.BeginRequest(c.Request.Method, c.FullPath())
		c.Next()
		done(strconv.Itoa(c.Writer.Status()))
	}
}
