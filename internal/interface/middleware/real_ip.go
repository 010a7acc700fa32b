package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the caller address used for rate-limit keys.
const CtxRealIPKey = "real_ip"

// proxyHeaders are consulted in order; X-Forwarded-For contributes its
// left-most entry.
var proxyHeaders = []string{"CF-Connecting-IP", "X-Forwarded-For"}

// RealIP stores the caller address under CtxRealIPKey. Headers that do not
// parse as an IP are ignored and gin's ClientIP is used instead.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	for _, h := range proxyHeaders {
		v, _, _ := strings.Cut(c.GetHeader(h), ",")
		if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
