package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/travel-story-api/internal/interface/http"
)

// StoryModule wires the story and image routes, all behind bearer auth.
type StoryModule struct {
	Handler *handlers.StoryHandler
	Guard   *Guard
}

func NewStoryModule(h *handlers.StoryHandler, g *Guard) *StoryModule {
	return &StoryModule{Handler: h, Guard: g}
}

func (m *StoryModule) Register(rg *gin.RouterGroup) {
	auth := m.Guard.Protected(rg)
	{
		auth.POST("/add-travel-story", m.Handler.AddStory)
		auth.GET("/get-all-stories", m.Handler.GetAllStories)
		auth.PUT("/edit-story/:id", m.Handler.EditStory)
		auth.PUT("/update-is-favourite/:id", m.Handler.UpdateFavourite)
		auth.DELETE("/delete-story/:id", m.Handler.DeleteStory)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/travel-stories/filter", m.Handler.FilterByDate)
		auth.POST("/image-upload", m.Handler.UploadImage)
		auth.DELETE("/delete-image", m.Handler.DeleteImage)
	}
}
