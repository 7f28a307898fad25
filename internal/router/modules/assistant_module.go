package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/travel-story-api/internal/interface/http"
	"github.com/oksasatya/travel-story-api/internal/interface/middleware"
)

// AssistantModule wires the generative routes with a tighter per-user limit.
type AssistantModule struct {
	Handler *handlers.AssistantHandler
	Guard   *Guard
}

func NewAssistantModule(h *handlers.AssistantHandler, g *Guard) *AssistantModule {
	return &AssistantModule{Handler: h, Guard: g}
}

func (m *AssistantModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg)
	auth.Use(m.Guard.Limit(20, middleware.KeyByUserAndPath()))
	{
		auth.POST("/travel-assistant", m.Handler.Ask)
		auth.POST("/enhance-story", m.Handler.EnhanceStory)
		auth.POST("/generate-titles", m.Handler.GenerateTitles)
	}
}
