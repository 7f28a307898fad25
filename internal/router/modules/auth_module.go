package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/travel-story-api/internal/interface/http"
	"github.com/oksasatya/travel-story-api/internal/interface/middleware"
)

// AuthModule wires account routes.
// Public: POST /create-account, /login, /google-login, /verify-email, /forgot-password, /reset-password
// Protected: GET /get-user
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   *Guard
}

func NewAuthModule(h *handlers.AuthHandler, g *Guard) *AuthModule {
	return &AuthModule{Handler: h, Guard: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	loginLimiter := m.Guard.Limit(10, middleware.KeyByIP())
	signupLimiter := m.Guard.Limit(5, middleware.KeyByIPAndPath())
	confirmLimiter := m.Guard.Limit(30, middleware.KeyByIPAndPath())

	rg.POST("/create-account", signupLimiter, m.Handler.CreateAccount)
	rg.POST("/forgot-password", signupLimiter, m.Handler.ForgotPassword)
	rg.POST("/verify-email", confirmLimiter, m.Handler.VerifyEmail)
	rg.POST("/reset-password", confirmLimiter, m.Handler.ResetPassword)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/google-login", loginLimiter, m.Handler.GoogleLogin)

	auth := m.Guard.Protected(rg)
	auth.GET("/get-user", m.Handler.GetUser)
}
