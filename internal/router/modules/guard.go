package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/travel-story-api/internal/interface/middleware"
)

// Guard carries what the modules share: bearer auth and the Redis limiter.
type Guard struct {
	Auth  gin.HandlerFunc
	RDB   *redis.Client
	Allow middleware.AllowFunc
}

// Limit returns a per-minute limiter keyed by keyFn.
func (g *Guard) Limit(perMinute int, keyFn middleware.KeyFunc) gin.HandlerFunc {
	return middleware.RateLimit(g.RDB, perMinute, time.Minute, keyFn, g.Allow)
}

// Protected returns a group behind bearer auth with the per-user limit applied.
func (g *Guard) Protected(rg *gin.RouterGroup) *gin.RouterGroup {
	auth := rg.Group("/")
	auth.Use(g.Auth, g.Limit(120, middleware.KeyByUserID()))
	return auth
}
