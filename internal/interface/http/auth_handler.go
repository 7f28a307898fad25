package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/internal/application"
	"github.com/oksasatya/travel-story-api/internal/domain/entity"
	"github.com/oksasatya/travel-story-api/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type createAccountRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

type tokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required,pwd"`
}

// userView is the public shape of an account. Hashes and tokens never leave the server.
func userView(u *entity.User) gin.H {
	return gin.H{
		"_id":             u.ID,
		"fullName":        u.FullName,
		"email":           u.Email,
		"isEmailVerified": u.IsEmailVerified,
		"createdOn":       u.CreatedAt,
	}
}

// CreateAccount POST /create-account
func (h *AuthHandler) CreateAccount(c *gin.Context) {
	var req createAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if res.MailDelivered {
		response.Success(c, http.StatusCreated, "Registration successful! Please check your email to verify your account.", nil)
		return
	}
	payload := gin.H{}
	if res.VerificationToken != "" {
		payload["verificationToken"] = res.VerificationToken
	}
	response.Success(c, http.StatusCreated, "Registration successful! However, verification email could not be sent. Please contact support.", payload)
}

// VerifyEmail POST /verify-email {token}
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Verification token is required", nil)
		return
	}
	if err := h.Svc.VerifyEmail(c.Request.Context(), req.Token); err != nil {
		if errors.Is(err, application.ErrInvalidToken) {
			response.Error(c, http.StatusBadRequest, "Invalid or expired verification token", nil)
			return
		}
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "Email verified successfully! You can now login.", nil)
}

// ForgotPassword POST /forgot-password {email}
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Svc.RequestPasswordReset(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	if res.MailDelivered {
		response.Success(c, http.StatusOK, "Password reset link sent to your email!", nil)
		return
	}
	payload := gin.H{}
	if res.ResetToken != "" {
		payload["resetToken"] = res.ResetToken
	}
	response.Success(c, http.StatusOK, "Password reset link generated but email could not be sent. Please contact support.", payload)
}

// ResetPassword POST /reset-password {token, password}
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	err := h.Svc.ConsumePasswordReset(c.Request.Context(), req.Token, req.Password)
	switch {
	case err == nil:
		response.Success(c, http.StatusOK, "Password reset successful", nil)
	case errors.Is(err, application.ErrExpiredToken):
		response.Error(c, http.StatusBadRequest, "Reset token has expired. Please request a new password reset link.", nil)
	case errors.Is(err, application.ErrInvalidToken):
		response.Error(c, http.StatusBadRequest, "Invalid or expired reset token. Please request a new password reset link.", nil)
	default:
		writeError(c, h.Logger, err)
	}
}

func (h *AuthHandler) loggedIn(c *gin.Context, res *application.LoginResult) {
	response.Success(c, http.StatusOK, "Login Successful", gin.H{
		"user":        gin.H{"fullName": res.User.FullName, "email": res.User.Email},
		"accessToken": res.AccessToken,
		"expiresAt":   res.ExpiresAt,
	})
}

// Login POST /login {email, password}
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Email and Password are required", nil)
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.loggedIn(c, res)
}

// GoogleLogin POST /google-login {credential}
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	res, err := h.Svc.GoogleLogin(c.Request.Context(), req.Credential)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	h.loggedIn(c, res)
}

// GetUser GET /get-user
func (h *AuthHandler) GetUser(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if errors.Is(err, application.ErrUserNotFound) {
		response.Error(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "", gin.H{"user": userView(u)})
}
