package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/placebook/internal/interface/middleware"
	"github.com/oksasatya/placebook/pkg/helpers"
)

// Guard bundles the auth and rate limit middleware shared by modules.
// A nil Redis client makes the limiters fall back to in-process buckets.
type Guard struct {
	JWT       *helpers.JWTManager
	Redis     *redis.Client
	RateLimit bool
	Allow     middleware.AllowFunc
}

func (g Guard) Auth() gin.HandlerFunc {
	return middleware.Auth(g.JWT)
}

// Limit returns a limiter of limit requests per window, or a pass-through
// handler when rate limiting is disabled.
func (g Guard) Limit(limit int, window time.Duration, keyFn middleware.KeyFunc) gin.HandlerFunc {
	if !g.RateLimit {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(g.Redis, limit, window, keyFn, g.Allow)
}
