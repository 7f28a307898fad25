package handlers

import (
	"bufio"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/internal/application"
	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/internal/infrastructure/storage"
	"github.com/oksasatya/travel-story-api/pkg/response"
)

type StoryHandler struct {
	Svc    *application.StoryService
	Logger *logrus.Logger
}

func NewStoryHandler(svc *application.StoryService, logger *logrus.Logger) *StoryHandler {
	return &StoryHandler{Svc: svc, Logger: logger}
}

type storyRequest struct {
	Title            string       `json:"title" binding:"required"`
	Story            string       `json:"story" binding:"required"`
	VisitedLocation  []string     `json:"visitedLocation"`
	ImageURL         string       `json:"imageUrl"`
	VisitedDate      *EpochMillis `json:"visitedDate" binding:"required"`
	Spending         *float64     `json:"spending" binding:"omitempty,gte=0"`
	SpendingCategory string       `json:"spendingCategory" binding:"omitempty,category"`
	TripDuration     *int         `json:"tripDuration" binding:"omitempty,gte=1"`
}

func (r storyRequest) input() application.StoryInput {
	var visited time.Time
	if r.VisitedDate != nil {
		visited = r.VisitedDate.Time()
	}
	return application.StoryInput{
		Title:            r.Title,
		Story:            r.Story,
		VisitedLocation:  r.VisitedLocation,
		ImageURL:         r.ImageURL,
		VisitedDate:      visited,
		Spending:         r.Spending,
		SpendingCategory: entity.SpendingCategory(r.SpendingCategory),
		TripDuration:     r.TripDuration,
	}
}

type favouriteRequest struct {
	IsFavourite *bool `json:"isFavourite" binding:"required"`
}

// AddStory POST /add-travel-story
func (h *StoryHandler) AddStory(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), req.input())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "Added Successfully", gin.H{"story": st})
}

// GetAllStories GET /get-all-stories
func (h *StoryHandler) GetAllStories(c *gin.Context) {
	stories, err := h.Svc.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"stories": stories})
}

// EditStory PUT /edit-story/:id
func (h *StoryHandler) EditStory(c *gin.Context) {
	var req storyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.Svc.Update(c.Request.Context(), c.GetString("userID"), c.Param("id"), req.input())
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Update Successful", gin.H{"story": st})
}

// UpdateFavourite PUT /update-is-favourite/:id
func (h *StoryHandler) UpdateFavourite(c *gin.Context) {
	var req favouriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	st, err := h.Svc.SetFavourite(c.Request.Context(), c.GetString("userID"), c.Param("id"), *req.IsFavourite)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Update Successful", gin.H{"story": st})
}

// DeleteStory DELETE /delete-story/:id
func (h *StoryHandler) DeleteStory(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Travel story deleted successfully", nil)
}

// Search GET /search?query=
func (h *StoryHandler) Search(c *gin.Context) {
	stories, err := h.Svc.Search(c.Request.Context(), c.GetString("userID"), c.Query("query"))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"stories": stories})
}

// FilterByDate GET /travel-stories/filter?startDate=&endDate= (epoch milliseconds)
func (h *StoryHandler) FilterByDate(c *gin.Context) {
	start, err := parseEpochParam(c.Query("startDate"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "startDate must be epoch milliseconds", nil)
		return
	}
	end, err := parseEpochParam(c.Query("endDate"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "endDate must be epoch milliseconds", nil)
		return
	}
	stories, err := h.Svc.FilterByDate(c.Request.Context(), c.GetString("userID"), start, end)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"stories": stories})
}

// UploadImage POST /image-upload (multipart field "image")
func (h *StoryHandler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, storage.MaxImageBytes+(1<<20))
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "No image uploaded", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	defer f.Close()

	// sniff when the client did not say what it sends
	br := bufio.NewReaderSize(f, 512)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || strings.HasPrefix(contentType, "application/octet-stream") {
		head, _ := br.Peek(512)
		contentType = http.DetectContentType(head)
	}

	url, err := h.Svc.UploadImage(c.Request.Context(), c.GetString("userID"), fh.Filename, contentType, br)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"imageUrl": url})
}

// DeleteImage DELETE /delete-image?imageUrl=
func (h *StoryHandler) DeleteImage(c *gin.Context) {
	url := c.Query("imageUrl")
	if url == "" {
		response.Error(c, http.StatusBadRequest, "imageUrl parameter is required", nil)
		return
	}
	if err := h.Svc.DeleteImage(c.Request.Context(), c.GetString("userID"), url); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Image deleted successfully", nil)
}
