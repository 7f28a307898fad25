package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/travel-story-api/pkg/helpers"
	"github.com/oksasatya/travel-story-api/pkg/response"
)

// Authenticator resolves a bearer token to the id of the user it was issued for.
type Authenticator interface {
	Authenticate(token string) (string, error)
}

// Auth requires "Authorization: Bearer <token>" and sets userID in the Gin context.
func Auth(a Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := helpers.BearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "missing access token", nil)
			return
		}
		uid, err := a.Authenticate(token)
		if err != nil || uid == "" {
			response.Abort(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		c.Set("userID", uid)
		c.Next()
	}
}
