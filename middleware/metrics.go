package middleware

import (
	"strconv"
	"time"

	"innkeep/utils"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latencies per route template.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		utils.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		utils.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
