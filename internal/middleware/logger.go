package middleware

import (
	"time"

	"fanout-srv/pkg/log"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per completed request. Streaming upgrades log
// their own lifecycle; this covers the plain HTTP surface.
func RequestLogger(logger log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Infof(c.Request.Context(), "%s %s -> %d (%s)",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}
