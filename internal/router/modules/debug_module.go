package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/travel-story-api/internal/infrastructure/storage"
	handlers "github.com/oksasatya/travel-story-api/internal/interface/http"
	"github.com/oksasatya/travel-story-api/pkg/metrics"
)

// DebugModule serves operational endpoints and locally stored uploads.
type DebugModule struct {
	Health     *handlers.HealthHandler
	Metrics    bool
	UploadsDir string
}

func NewDebugModule(h *handlers.HealthHandler, metricsEnabled bool, uploadsDir string) *DebugModule {
	return &DebugModule{Health: h, Metrics: metricsEnabled, UploadsDir: uploadsDir}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/healthz", m.Health.Health)
	if m.Metrics {
		rg.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	if m.UploadsDir != "" {
		rg.Static(storage.UploadsRoute, m.UploadsDir)
	}
}
