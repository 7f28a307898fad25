package router

import (
	"context"

	"github.com/oksasatya/travel-story-api/internal/container"
	pginfra "github.com/oksasatya/travel-story-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/travel-story-api/internal/interface/http"
	"github.com/oksasatya/travel-story-api/internal/interface/middleware"
	"github.com/oksasatya/travel-story-api/internal/router/modules"
)

// InitModules builds the handlers from c and registers every module.
// Call it once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	guard := &modules.Guard{
		Auth:  middleware.Auth(c.Auth),
		RDB:   c.Redis,
		Allow: middleware.BypassPrivate(c.Config.RateLimitBypassPrivate),
	}

	checks := map[string]handlers.Check{
		"postgres": func(ctx context.Context) error { return pginfra.Ping(ctx, c.DB) },
	}
	if c.Redis != nil {
		checks["redis"] = func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() }
	}

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(c.Auth, c.Logger), guard))
	r.Add(modules.NewStoryModule(handlers.NewStoryHandler(c.Stories, c.Logger), guard))
	r.Add(modules.NewAnalyticsModule(handlers.NewAnalyticsHandler(c.Analytics, c.Logger), guard))
	r.Add(modules.NewAssistantModule(handlers.NewAssistantHandler(c.Assistant, c.Logger), guard))
	r.Add(modules.NewDebugModule(handlers.NewHealthHandler(checks), c.Config.MetricsEnabled, c.UploadsDir))
}
