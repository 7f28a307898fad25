package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/travel-story-api/internal/interface/http"
)

type AnalyticsModule struct {
	Handler *handlers.AnalyticsHandler
	Guard   *Guard
}

func NewAnalyticsModule(h *handlers.AnalyticsHandler, g *Guard) *AnalyticsModule {
	return &AnalyticsModule{Handler: h, Guard: g}
}

func (m *AnalyticsModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg)
	auth.GET("/analytics/stats", m.Handler.Stats)
	auth.GET("/analytics/spending", m.Handler.Spending)
}
