package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIP identifies the caller for rate limiting and request logs. Proxy headers are
// trusted in order (X-Forwarded-For, then X-Real-IP); values that do not parse as an IP
// are ignored.
func clientIP(c *gin.Context) string {
	for _, candidate := range strings.Split(c.GetHeader("X-Forwarded-For"), ",") {
		if ip := parseIP(candidate); ip != "" {
			return ip
		}
	}
	if ip := parseIP(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}

// parseIP returns the canonical form of raw, or "" when raw is not an IP address.
func parseIP(raw string) string {
	ip := net.ParseIP(strings.TrimSpace(raw))
	if ip == nil {
		return ""
	}
	return ip.String()
}
