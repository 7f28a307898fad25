package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/internal/application"
	"github.com/oksasatya/travel-story-api/internal/infrastructure/storage"
	"github.com/oksasatya/travel-story-api/pkg/response"
	"github.com/oksasatya/travel-story-api/pkg/validation"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorTable maps application errors to HTTP statuses. The first match wins.
var errorTable = []errorMapping{
	{application.ErrEmailTaken, http.StatusConflict, "User already exists"},
	{application.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{application.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid Credentials"},
	{application.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{application.ErrInvalidToken, http.StatusBadRequest, "Invalid or expired token"},
	{application.ErrExpiredToken, http.StatusBadRequest, "Token has expired"},
	{application.ErrGoogleDisabled, http.StatusServiceUnavailable, "Google sign-in is not configured"},
	{application.ErrStoryNotFound, http.StatusNotFound, "Travel story not found"},
	{application.ErrImageNotFound, http.StatusNotFound, "Image not found"},
	{application.ErrUpstream, http.StatusBadGateway, "The assistant is unavailable right now"},
	{storage.ErrUnsupportedImage, http.StatusBadRequest, storage.ErrUnsupportedImage.Error()},
	{storage.ErrImageTooLarge, http.StatusRequestEntityTooLarge, storage.ErrImageTooLarge.Error()},
}

// writeError turns err into an error response. Validation errors carry their
// own message; anything unknown is logged and reported as a bare 500.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	if errors.Is(err, application.ErrValidation) {
		response.Error(c, http.StatusBadRequest, validationMessage(err), nil)
		return
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			response.Error(c, m.status, m.message, nil)
			return
		}
	}
	if logger != nil {
		logger.WithError(err).WithFields(logrus.Fields{
			"request_id": c.GetString("request_id"),
			"route":      c.FullPath(),
		}).Error("request failed")
	}
	response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
}

// validationMessage strips the sentinel prefix from a wrapped ErrValidation.
func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), application.ErrValidation.Error()+": ")
	if msg == "" || msg == application.ErrValidation.Error() {
		return "Invalid request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func badRequest(c *gin.Context, err error) {
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
