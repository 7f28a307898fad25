package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/internal/application"
	"github.com/oksasatya/travel-story-api/pkg/response"
)

type AssistantHandler struct {
	Svc    *application.AssistantService
	Logger *logrus.Logger
}

func NewAssistantHandler(svc *application.AssistantService, logger *logrus.Logger) *AssistantHandler {
	return &AssistantHandler{Svc: svc, Logger: logger}
}

type askRequest struct {
	Question string `json:"question" binding:"required"`
}

type enhanceRequest struct {
	Story string `json:"story" binding:"required"`
}

type titlesRequest struct {
	Story     string   `json:"story" binding:"required"`
	Locations []string `json:"locations"`
}

// Ask POST /travel-assistant {question}
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req askRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	answer, err := h.Svc.Ask(c.Request.Context(), c.GetString("userID"), req.Question)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"answer": answer})
}

// EnhanceStory POST /enhance-story {story}
func (h *AssistantHandler) EnhanceStory(c *gin.Context) {
	var req enhanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	out, err := h.Svc.EnhanceStory(c.Request.Context(), req.Story)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"enhancedStory": out})
}

// GenerateTitles POST /generate-titles {story, locations}
func (h *AssistantHandler) GenerateTitles(c *gin.Context) {
	var req titlesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	titles, err := h.Svc.GenerateTitles(c.Request.Context(), req.Story, req.Locations)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"titles": titles})
}
