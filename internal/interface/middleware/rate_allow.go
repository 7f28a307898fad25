package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowPrivateIP bypasses the limit for loopback and private (10/8, 172.16/12,
// 192.168/16, fc00::/7) client addresses.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}

// BypassPrivate returns AllowPrivateIP when enabled and nil otherwise.
func BypassPrivate(enabled bool) AllowFunc {
	if !enabled {
		return nil
	}
	return AllowPrivateIP()
}
